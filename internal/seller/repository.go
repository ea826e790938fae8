package seller

import (
	"context"

	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/seller/dto"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Seller, error)
	FindAll(ctx context.Context, filters *dto.SellerFilters) ([]model.Seller, int, error)
	UpdateStatus(ctx context.Context, seller *model.Seller) error
	CountByStatus(ctx context.Context) (map[model.VerificationStatus]int, error)
}
