package product

import (
	"context"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/product/dto"
	"github.com/fekuna/metalmarket-service/pkg/search"
)

type UseCase interface {
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	GetProduct(ctx context.Context, id string, viewer auth.Principal) (*model.Product, error)
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	UpdateProductStatus(ctx context.Context, id string, status model.ProductStatus) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string, viewer auth.Principal) error

	RecordView(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error

	Suggest(ctx context.Context, query string, limit int) ([]dto.Suggestion, error)
	SellerStats(ctx context.Context, sellerID string) (*dto.SellerStats, error)
}

// SearchIndex is the subset of the Elasticsearch client the product usecase relies on.
type SearchIndex interface {
	Index(ctx context.Context, index, id string, doc interface{}) error
	Delete(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}
