package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webshoplabs/webshop-backend/services/stats-service/models"
)

var ErrNoStats = errors.New("no stats recorded")

type StatRepository interface {
	RecordCall(ctx context.Context, endpoint string, at time.Time) error
	GetAllStats(ctx context.Context) ([]models.ApiCallStat, error)
	GetMostCalled(ctx context.Context) (*models.ApiCallStat, error)
	GetLastCalled(ctx context.Context) (*models.ApiCallStat, error)
}

type mongoStatRepository struct {
	collection *mongo.Collection
}

func NewStatRepository(db *mongo.Database) StatRepository {
	return &mongoStatRepository{collection: db.Collection("apicallstats")}
}

// RecordCall upserts the per-endpoint counter in a single atomic write.
func (r *mongoStatRepository) RecordCall(ctx context.Context, endpoint string, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": endpoint},
		bson.M{
			"$inc": bson.M{"count": 1},
			"$set": bson.M{"last_called": at},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *mongoStatRepository) GetAllStats(ctx context.Context) ([]models.ApiCallStat, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []models.ApiCallStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *mongoStatRepository) GetMostCalled(ctx context.Context) (*models.ApiCallStat, error) {
	return r.findOneSorted(ctx, bson.D{{Key: "count", Value: -1}})
}

func (r *mongoStatRepository) GetLastCalled(ctx context.Context) (*models.ApiCallStat, error) {
	return r.findOneSorted(ctx, bson.D{{Key: "last_called", Value: -1}})
}

func (r *mongoStatRepository) findOneSorted(ctx context.Context, sort bson.D) (*models.ApiCallStat, error) {
	var stat models.ApiCallStat
	err := r.collection.FindOne(ctx, bson.M{}, options.FindOne().SetSort(sort)).Decode(&stat)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoStats
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}
