package models

// CartItem is an immutable snapshot of a catalog item taken at the moment it
// was added to a cart. Later price or stock changes in the inventory never
// touch it.
type CartItem struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Color       string  `bson:"color" json:"color"`
	Size        string  `bson:"size" json:"size"`
	Description *string `bson:"description,omitempty" json:"description,omitempty"`
	Image       []byte  `bson:"image,omitempty" json:"image,omitempty"`
	Price       float64 `bson:"price" json:"price"`
	Quantity    *int    `bson:"quantity,omitempty" json:"quantity,omitempty"`
}

// UnitCount returns the item quantity, defaulting to 1 when unset.
func (i CartItem) UnitCount() int {
	if i.Quantity == nil {
		return 1
	}
	return *i.Quantity
}

// Cart holds a user's selected items and the stored running total. The cart id
// equals the owning user's id; there is one cart per user.
type Cart struct {
	ID     string     `bson:"_id" json:"id"`
	UserID string     `bson:"user_id" json:"user_id"`
	Items  []CartItem `bson:"items" json:"items"`
	Amount *float64   `bson:"amount" json:"amount"`
}

// Total computes the sum of price times quantity over the current items.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.UnitCount())
	}
	return total
}
