package model

type Cart struct {
	BaseModel
	UserID string     `db:"user_id" json:"user_id"`
	Items  []CartItem `db:"-" json:"items"`
}

type CartItem struct {
	CartID    string `db:"cart_id" json:"-"`
	ProductID string `db:"product_id" json:"product_id"`
	Quantity  int    `db:"quantity" json:"quantity"`

	ProductName *string  `db:"product_name" json:"product_name,omitempty"` // Joined data
	UnitPrice   *float64 `db:"unit_price" json:"unit_price,omitempty"`     // Joined data
}
