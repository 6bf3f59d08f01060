package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webshoplabs/webshop-backend/services/inventory-service/models"
)

var (
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrItemExists        = errors.New("inventory item already exists")
	ErrInvalidItemID     = errors.New("invalid inventory item id")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type InventoryRepository interface {
	ListItems(ctx context.Context) ([]models.Inventory, error)
	GetItemByID(ctx context.Context, itemID string) (*models.Inventory, error)
	AddItem(ctx context.Context, item *models.Inventory) error
	ReplaceItem(ctx context.Context, itemID string, item *models.Inventory) (bool, error)
	DeleteItem(ctx context.Context, itemID string) error
	AddQuantity(ctx context.Context, itemID string, amount int) error
	SubtractQuantity(ctx context.Context, itemID string, amount int) error
	ChangePrice(ctx context.Context, itemID string, price float64) error
	GetComments(ctx context.Context, itemID string) ([]models.Comment, error)
	GetRatings(ctx context.Context, itemID string) ([]models.Rating, error)
}

type mongoInventoryRepository struct {
	collection *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) InventoryRepository {
	return &mongoInventoryRepository{collection: db.Collection("inventory")}
}

func (r *mongoInventoryRepository) ListItems(ctx context.Context) ([]models.Inventory, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Inventory
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoInventoryRepository) GetItemByID(ctx context.Context, itemID string) (*models.Inventory, error) {
	var item models.Inventory
	err := r.collection.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *mongoInventoryRepository) AddItem(ctx context.Context, item *models.Inventory) error {
	if item.ID == "" {
		return ErrInvalidItemID
	}
	_, err := r.collection.InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		return ErrItemExists
	}
	return err
}

func (r *mongoInventoryRepository) ReplaceItem(ctx context.Context, itemID string, item *models.Inventory) (bool, error) {
	if itemID == "" {
		return false, ErrInvalidItemID
	}
	item.ID = itemID
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": itemID}, item)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoInventoryRepository) DeleteItem(ctx context.Context, itemID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": itemID})
	return err
}

func (r *mongoInventoryRepository) AddQuantity(ctx context.Context, itemID string, amount int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": itemID},
		bson.M{"$inc": bson.M{"quantity": amount}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

// SubtractQuantity decrements stock atomically. The filter guards the
// quantity so a concurrent subtract can never drive it negative.
func (r *mongoInventoryRepository) SubtractQuantity(ctx context.Context, itemID string, amount int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": itemID, "quantity": bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{"quantity": -amount}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetItemByID(ctx, itemID); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *mongoInventoryRepository) ChangePrice(ctx context.Context, itemID string, price float64) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": itemID},
		bson.M{"$set": bson.M{"price": price}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *mongoInventoryRepository) GetComments(ctx context.Context, itemID string) ([]models.Comment, error) {
	item, err := r.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return item.Comments, nil
}

func (r *mongoInventoryRepository) GetRatings(ctx context.Context, itemID string) ([]models.Rating, error) {
	item, err := r.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return item.Ratings, nil
}
