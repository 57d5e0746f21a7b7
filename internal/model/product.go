package model

import "github.com/lib/pq"

type Product struct {
	BaseModel
	Name        string         `db:"name" json:"name"`
	Description *string        `db:"description" json:"description"`
	Price       float64        `db:"price" json:"price"`
	Stock       int            `db:"stock" json:"stock"`
	Sold        int            `db:"sold" json:"sold"`
	CategoryID  string         `db:"category_id" json:"category_id"`
	Status      bool           `db:"status" json:"status"`
	Images      pq.StringArray `db:"images" json:"images"` // most-recent-first

	CategoryName *string `db:"category_name" json:"category_name,omitempty"` // Joined data
}
