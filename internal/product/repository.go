package product

import (
	"context"

	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	// FindAll returns the raw snapshot the catalog resolver works on; ordering is not significant.
	FindAll(ctx context.Context, filter *dto.SnapshotFilter) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateStatus(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	SearchNames(ctx context.Context, query string, limit int) ([]dto.Suggestion, error)
	CountByStatus(ctx context.Context) (map[model.ProductStatus]int, error)
}
