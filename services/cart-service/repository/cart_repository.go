package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webshoplabs/webshop-backend/services/cart-service/models"
)

var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrCartExists    = errors.New("cart already exists for user")
	ErrInvalidCartID = errors.New("cart id cannot be empty")
)

// CartRepository is the storage contract for carts. All operations are single
// document writes; multi-step sequences are composed above this layer.
type CartRepository interface {
	CreateCart(ctx context.Context, userID string) (*models.Cart, error)
	GetCartByID(ctx context.Context, cartID string) (*models.Cart, error)
	GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error)
	ReplaceCart(ctx context.Context, cartID string, cart *models.Cart) (bool, error)
	DeleteCart(ctx context.Context, cartID string) error
	AppendItem(ctx context.Context, cartID string, item models.CartItem) error
	PullItem(ctx context.Context, cartID, itemID string) error
	SetItems(ctx context.Context, cartID string, items []models.CartItem) error
	SetAmount(ctx context.Context, cartID string, amount float64) error
}

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("cart"),
	}
}

// EnsureIndexes creates the unique owner index so a second create for the same
// user fails instead of producing a colliding cart.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("cart").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}

func (r *mongoCartRepository) CreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	amount := 0.0
	cart := &models.Cart{
		ID:     userID,
		UserID: userID,
		Items:  []models.CartItem{},
		Amount: &amount,
	}

	if _, err := r.collection.InsertOne(ctx, cart); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrCartExists
		}
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

func (r *mongoCartRepository) GetCartByID(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"_id": cartID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

func (r *mongoCartRepository) GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart by user: %w", err)
	}
	return &cart, nil
}

func (r *mongoCartRepository) ReplaceCart(ctx context.Context, cartID string, cart *models.Cart) (bool, error) {
	if cartID == "" {
		return false, ErrInvalidCartID
	}

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cartID}, cart)
	if err != nil {
		return false, fmt.Errorf("failed to replace cart: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// DeleteCart is idempotent; deleting an absent cart is not an error.
func (r *mongoCartRepository) DeleteCart(ctx context.Context, cartID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": cartID}); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (r *mongoCartRepository) AppendItem(ctx context.Context, cartID string, item models.CartItem) error {
	update := bson.M{"$push": bson.M{"items": item}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": cartID}, update); err != nil {
		return fmt.Errorf("failed to append item: %w", err)
	}
	return nil
}

// PullItem removes matching items by id. Pulling an absent item is a no-op.
func (r *mongoCartRepository) PullItem(ctx context.Context, cartID, itemID string) error {
	update := bson.M{"$pull": bson.M{"items": bson.M{"id": itemID}}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": cartID}, update); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

func (r *mongoCartRepository) SetItems(ctx context.Context, cartID string, items []models.CartItem) error {
	update := bson.M{"$set": bson.M{"items": items}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": cartID}, update); err != nil {
		return fmt.Errorf("failed to set items: %w", err)
	}
	return nil
}

func (r *mongoCartRepository) SetAmount(ctx context.Context, cartID string, amount float64) error {
	update := bson.M{"$set": bson.M{"amount": amount}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": cartID}, update); err != nil {
		return fmt.Errorf("failed to set amount: %w", err)
	}
	return nil
}
