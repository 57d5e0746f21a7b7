package model

const (
	InvoiceStatusPending   = "Pendiente"
	InvoiceStatusPaid      = "Pagada"
	InvoiceStatusCancelled = "Cancelada"
)

func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

type Invoice struct {
	BaseModel
	UserID string        `db:"user_id" json:"user_id"`
	Total  float64       `db:"total" json:"total"`
	Status string        `db:"status" json:"status"`
	Items  []InvoiceItem `db:"-" json:"items"`

	UserName  *string `db:"user_name" json:"user_name,omitempty"`   // Joined data
	UserEmail *string `db:"user_email" json:"user_email,omitempty"` // Joined data
}

type InvoiceItem struct {
	InvoiceID string  `db:"invoice_id" json:"-"`
	ProductID string  `db:"product_id" json:"product_id"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     float64 `db:"price" json:"price"` // unit price at purchase time

	ProductName *string `db:"product_name" json:"product_name,omitempty"` // Joined data, nil if product vanished
}
