package dto

type CreateProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
}

// UpdateProductInput is a partial update, nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	CategoryID  *string  `json:"category_id" binding:"omitempty,uuid"`
	Status      *bool    `json:"status"`
}
