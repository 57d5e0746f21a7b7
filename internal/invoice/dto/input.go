package dto

type InvoiceItemInput struct {
	ProductID string `json:"product" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type CreateInvoiceInput struct {
	UserID string             `json:"user" binding:"required,uuid"`
	Items  []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceInput carries a status change and, optionally, a full
// replacement of the invoice lines.
type UpdateInvoiceInput struct {
	Status *string            `json:"status" binding:"omitempty,oneof=Pendiente Pagada Cancelada"`
	Items  []InvoiceItemInput `json:"items" binding:"omitempty,min=1,dive"`
}
