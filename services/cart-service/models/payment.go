package models

import "time"

// Payment is the immutable settlement record produced from a cart. Items and
// amount are by-value snapshots; mutating the source cart afterwards does not
// change them.
type Payment struct {
	ID          string     `bson:"_id" json:"id"`
	CartID      string     `bson:"cart_id" json:"cart_id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	Amount      float64    `bson:"amount" json:"amount"`
	Items       []CartItem `bson:"items" json:"items"`
	PaymentDate time.Time  `bson:"payment_date" json:"payment_date"`
}
