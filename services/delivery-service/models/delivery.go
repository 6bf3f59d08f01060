package models

import "time"

type Delivery struct {
	ID           string    `bson:"_id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	PaymentID    string    `bson:"payment_id" json:"payment_id"`
	Address      string    `bson:"address" json:"address"`
	DeliveryTime time.Time `bson:"delivery_time" json:"delivery_time"`
	GeoX         float64   `bson:"geo_x" json:"geo_x"`
	GeoY         float64   `bson:"geo_y" json:"geo_y"`
}

// CreateDeliveryRequest is the inbound payload; the id is assigned
// server side.
type CreateDeliveryRequest struct {
	UserID       string    `json:"user_id" binding:"required"`
	PaymentID    string    `json:"payment_id" binding:"required"`
	Address      string    `json:"address" binding:"required"`
	DeliveryTime time.Time `json:"delivery_time"`
	GeoX         float64   `json:"geo_x"`
	GeoY         float64   `json:"geo_y"`
}

type UpdateDeliveryRequest struct {
	Address      *string    `json:"address"`
	DeliveryTime *time.Time `json:"delivery_time"`
	GeoX         *float64   `json:"geo_x"`
	GeoY         *float64   `json:"geo_y"`
}
