package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webshoplabs/webshop-backend/services/delivery-service/models"
)

var ErrDeliveryNotFound = errors.New("delivery not found")

type DeliveryRepository interface {
	CreateDelivery(ctx context.Context, delivery *models.Delivery) error
	GetDeliveryByID(ctx context.Context, deliveryID string) (*models.Delivery, error)
	GetDeliveriesByUserID(ctx context.Context, userID string) ([]models.Delivery, error)
	ListDeliveries(ctx context.Context) ([]models.Delivery, error)
	ReplaceDelivery(ctx context.Context, deliveryID string, delivery *models.Delivery) (bool, error)
	DeleteDelivery(ctx context.Context, deliveryID string) error
}

type mongoDeliveryRepository struct {
	collection *mongo.Collection
}

func NewDeliveryRepository(db *mongo.Database) DeliveryRepository {
	return &mongoDeliveryRepository{collection: db.Collection("delivery")}
}

func (r *mongoDeliveryRepository) CreateDelivery(ctx context.Context, delivery *models.Delivery) error {
	_, err := r.collection.InsertOne(ctx, delivery)
	return err
}

func (r *mongoDeliveryRepository) GetDeliveryByID(ctx context.Context, deliveryID string) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.collection.FindOne(ctx, bson.M{"_id": deliveryID}).Decode(&delivery)
	if err == mongo.ErrNoDocuments {
		return nil, ErrDeliveryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *mongoDeliveryRepository) GetDeliveriesByUserID(ctx context.Context, userID string) ([]models.Delivery, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *mongoDeliveryRepository) ListDeliveries(ctx context.Context) ([]models.Delivery, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoDeliveryRepository) find(ctx context.Context, filter bson.M) ([]models.Delivery, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var deliveries []models.Delivery
	if err := cursor.All(ctx, &deliveries); err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *mongoDeliveryRepository) ReplaceDelivery(ctx context.Context, deliveryID string, delivery *models.Delivery) (bool, error) {
	delivery.ID = deliveryID
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": deliveryID}, delivery)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoDeliveryRepository) DeleteDelivery(ctx context.Context, deliveryID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": deliveryID})
	return err
}
