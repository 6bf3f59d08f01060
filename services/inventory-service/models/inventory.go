package models

import "time"

// Comment is a user comment embedded on an inventory item. The
// comments service owns the authoritative copies; this projection is
// what gets served alongside the item.
type Comment struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Rating is a 1-5 star rating embedded on an inventory item.
type Rating struct {
	UserID string `bson:"user_id" json:"user_id"`
	Stars  int    `bson:"stars" json:"stars"`
}

type Inventory struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Image       []byte    `bson:"image,omitempty" json:"image,omitempty"`
	Price       float64   `bson:"price" json:"price"`
	Quantity    int       `bson:"quantity" json:"quantity"`
	Comments    []Comment `bson:"comments,omitempty" json:"comments,omitempty"`
	Ratings     []Rating  `bson:"ratings,omitempty" json:"ratings,omitempty"`
}

// AverageRating returns the mean star value, or 0 when unrated.
func (i *Inventory) AverageRating() float64 {
	if len(i.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range i.Ratings {
		sum += r.Stars
	}
	return float64(sum) / float64(len(i.Ratings))
}
