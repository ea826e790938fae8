package seller

import (
	"context"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/seller/dto"
)

type UseCase interface {
	ListSellers(ctx context.Context, filters *dto.SellerFilters) ([]model.Seller, int, error)
	GetSeller(ctx context.Context, id string, viewer auth.Principal) (*model.Seller, error)
	UpdateSellerStatus(ctx context.Context, input *dto.UpdateSellerStatusInput) (*model.Seller, error)
	AdminStats(ctx context.Context) (*dto.AdminStats, error)
}

// ProductCounter is satisfied by the product repository.
type ProductCounter interface {
	CountByStatus(ctx context.Context) (map[model.ProductStatus]int, error)
}
