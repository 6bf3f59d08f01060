package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webshoplabs/webshop-backend/services/cart-service/models"
)

var ErrInvalidPayment = errors.New("payment must contain items and a non-zero amount")

// PaymentRepository owns the append-only payment collection. Payments are
// never updated after insert.
type PaymentRepository interface {
	InsertPayment(ctx context.Context, payment *models.Payment) error
	GetPaymentsByUserID(ctx context.Context, userID string) ([]models.Payment, error)
	GetAllPayments(ctx context.Context) ([]models.Payment, error)
	DeletePayment(ctx context.Context, paymentID string) error
}

type mongoPaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &mongoPaymentRepository{
		collection: db.Collection("payment"),
	}
}

func (r *mongoPaymentRepository) InsertPayment(ctx context.Context, payment *models.Payment) error {
	if payment == nil || len(payment.Items) == 0 || payment.Amount == 0 {
		return ErrInvalidPayment
	}

	if _, err := r.collection.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (r *mongoPaymentRepository) GetPaymentsByUserID(ctx context.Context, userID string) ([]models.Payment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get payments by user: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

func (r *mongoPaymentRepository) GetAllPayments(ctx context.Context) ([]models.Payment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

// DeletePayment is idempotent; deleting an absent payment is not an error.
func (r *mongoPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": paymentID}); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}
