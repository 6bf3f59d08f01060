package models

import (
	"errors"
	"time"
)

var (
	ErrMissingItemID = errors.New("comment requires an item id")
	ErrMissingUserID = errors.New("comment requires a user id")
	ErrEmptyText     = errors.New("comment text must not be empty")
	ErrStarsOutOfRange = errors.New("rating must be between 1 and 5 stars")
)

type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	ItemID    string    `bson:"item_id" json:"item_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (c *Comment) Validate() error {
	if c.ItemID == "" {
		return ErrMissingItemID
	}
	if c.UserID == "" {
		return ErrMissingUserID
	}
	if c.Text == "" {
		return ErrEmptyText
	}
	return nil
}

type Rating struct {
	ID     string `bson:"_id" json:"id"`
	ItemID string `bson:"item_id" json:"item_id"`
	UserID string `bson:"user_id" json:"user_id"`
	Stars  int    `bson:"stars" json:"stars"`
}

func (r *Rating) Validate() error {
	if r.ItemID == "" {
		return ErrMissingItemID
	}
	if r.UserID == "" {
		return ErrMissingUserID
	}
	if r.Stars < 1 || r.Stars > 5 {
		return ErrStarsOutOfRange
	}
	return nil
}
