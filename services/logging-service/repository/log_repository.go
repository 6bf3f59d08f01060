package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webshoplabs/webshop-backend/services/logging-service/models"
)

type LogRepository interface {
	InsertLog(ctx context.Context, entry *models.LoggingEntry) error
	GetLogsInRange(ctx context.Context, from, to time.Time) ([]models.LoggingEntry, error)
	DeleteAllLogs(ctx context.Context) (int64, error)
}

type mongoLogRepository struct {
	collection *mongo.Collection
}

func NewLogRepository(db *mongo.Database) LogRepository {
	return &mongoLogRepository{collection: db.Collection("logs")}
}

func (r *mongoLogRepository) InsertLog(ctx context.Context, entry *models.LoggingEntry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *mongoLogRepository) GetLogsInRange(ctx context.Context, from, to time.Time) ([]models.LoggingEntry, error) {
	filter := bson.M{"timestamp": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.LoggingEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mongoLogRepository) DeleteAllLogs(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
