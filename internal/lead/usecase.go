package lead

import (
	"context"

	"github.com/fekuna/metalmarket-service/internal/lead/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
)

type UseCase interface {
	CreateLead(ctx context.Context, input *dto.CreateLeadInput) (*model.Lead, error)
	ListLeads(ctx context.Context, filters *dto.LeadFilters) ([]model.Lead, error)
	UpdateLeadStatus(ctx context.Context, input *dto.UpdateLeadStatusInput) (*model.Lead, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}
