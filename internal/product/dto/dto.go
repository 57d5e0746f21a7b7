package dto

type ProductFilters struct {
	Name       string `json:"name"`        // case-insensitive substring match
	CategoryID string `json:"category_id"` // exact match
}
