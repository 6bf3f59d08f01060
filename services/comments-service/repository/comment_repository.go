package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webshoplabs/webshop-backend/services/comments-service/models"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrDuplicateComment = errors.New("user has already commented on this item")
	ErrDuplicateRating  = errors.New("user has already rated this item")
)

type CommentRepository interface {
	AddComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItemID(ctx context.Context, itemID string) ([]models.Comment, error)
	GetCommentsByUserID(ctx context.Context, userID string) ([]models.Comment, error)
	UpdateCommentText(ctx context.Context, commentID, text string) error
	DeleteComment(ctx context.Context, commentID string) error
}

type RatingRepository interface {
	AddRating(ctx context.Context, rating *models.Rating) error
	GetRatingsByItemID(ctx context.Context, itemID string) ([]models.Rating, error)
	DeleteRating(ctx context.Context, ratingID string) error
}

type mongoCommentRepository struct {
	collection *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &mongoCommentRepository{collection: db.Collection("comments")}
}

// AddComment rejects a second comment by the same user on the same item.
func (r *mongoCommentRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"item_id": comment.ItemID,
		"user_id": comment.UserID,
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateComment
	}

	_, err = r.collection.InsertOne(ctx, comment)
	return err
}

func (r *mongoCommentRepository) GetCommentsByItemID(ctx context.Context, itemID string) ([]models.Comment, error) {
	return r.find(ctx, bson.M{"item_id": itemID})
}

func (r *mongoCommentRepository) GetCommentsByUserID(ctx context.Context, userID string) ([]models.Comment, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *mongoCommentRepository) find(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *mongoCommentRepository) UpdateCommentText(ctx context.Context, commentID, text string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": commentID},
		bson.M{"$set": bson.M{"text": text}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *mongoCommentRepository) DeleteComment(ctx context.Context, commentID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": commentID})
	return err
}

type mongoRatingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) RatingRepository {
	return &mongoRatingRepository{collection: db.Collection("ratings")}
}

// AddRating rejects a second rating by the same user for the same item.
func (r *mongoRatingRepository) AddRating(ctx context.Context, rating *models.Rating) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"item_id": rating.ItemID,
		"user_id": rating.UserID,
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateRating
	}

	_, err = r.collection.InsertOne(ctx, rating)
	return err
}

func (r *mongoRatingRepository) GetRatingsByItemID(ctx context.Context, itemID string) ([]models.Rating, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"item_id": itemID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *mongoRatingRepository) DeleteRating(ctx context.Context, ratingID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": ratingID})
	return err
}
