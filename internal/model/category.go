package model

type Category struct {
	BaseModel
	ParentID  *string `db:"parent_id" json:"parent_id"` // Nullable, nil for roots
	Name      string  `db:"name" json:"name"`
	ImageURL  *string `db:"image_url" json:"image_url"`
	SortOrder int     `db:"sort_order" json:"sort_order"`
}
