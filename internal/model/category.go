package model

type Category struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	CreatedBy   *string `db:"created_by" json:"created_by"` // Nullable, seeded categories have no owner
	Status      bool    `db:"status" json:"status"`
}
