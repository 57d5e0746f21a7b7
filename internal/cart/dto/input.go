package dto

type CartItemInput struct {
	ProductID string `json:"product" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}
