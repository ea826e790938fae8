package lead

import (
	"context"

	"github.com/fekuna/metalmarket-service/internal/lead/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, lead *model.Lead) error
	FindByID(ctx context.Context, id string) (*model.Lead, error)
	// FindAll returns the seller's leads, newest first.
	FindAll(ctx context.Context, filters *dto.LeadFilters) ([]model.Lead, error)
	UpdateStatus(ctx context.Context, lead *model.Lead) error
}
