package dto

type CreateCategoryInput struct {
	ParentID  *string
	Name      string
	ImageURL  string
	SortOrder int
}

type UpdateCategoryInput struct {
	ID        string
	ParentID  *string // nil moves the category to the root
	Name      string
	ImageURL  string
	SortOrder int
}
