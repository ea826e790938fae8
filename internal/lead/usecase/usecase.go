package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/metalmarket-service/internal/lead"
	"github.com/fekuna/metalmarket-service/internal/lead/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/product"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// transitions lists the statuses a lead may move to from each status.
var transitions = map[model.LeadStatus][]model.LeadStatus{
	model.LeadStatusNew:        {model.LeadStatusInProgress, model.LeadStatusRejected},
	model.LeadStatusInProgress: {model.LeadStatusDone, model.LeadStatusRejected},
}

func canTransition(from, to model.LeadStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type leadUseCase struct {
	repo     lead.Repository
	products product.Repository
	events   lead.EventPublisher
	logger   logger.ZapLogger
	now      func() time.Time
}

// NewLeadUseCase wires the lead workflow. events may be nil when no broker is configured.
func NewLeadUseCase(repo lead.Repository, products product.Repository, events lead.EventPublisher, log logger.ZapLogger) lead.UseCase {
	return &leadUseCase{
		repo:     repo,
		products: products,
		events:   events,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *leadUseCase) CreateLead(ctx context.Context, input *dto.CreateLeadInput) (*model.Lead, error) {
	name := strings.TrimSpace(input.BuyerName)
	phone := strings.TrimSpace(input.BuyerPhone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: buyer name and phone are required", model.ErrInvalidInput)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", model.ErrInvalidInput)
	}

	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != model.ProductStatusActive {
		return nil, fmt.Errorf("%w: product %s", model.ErrNotFound, input.ProductID)
	}

	now := uc.now()
	l := &model.Lead{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:   p.ID,
		ProductName: p.Name,
		SellerID:    p.SellerID,
		BuyerName:   name,
		BuyerPhone:  phone,
		Amount:      input.Amount,
		TotalPrice:  p.Price.Mul(input.Amount),
		Status:      model.LeadStatusNew,
	}

	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	uc.logger.Info("lead created",
		zap.String("lead_id", l.ID),
		zap.String("product_id", l.ProductID),
		zap.String("seller_id", l.SellerID),
	)

	uc.publishCreated(ctx, l)
	return l, nil
}

// publishCreated is best effort; the lead is already stored.
func (uc *leadUseCase) publishCreated(ctx context.Context, l *model.Lead) {
	if uc.events == nil {
		return
	}
	data, err := json.Marshal(lead.CreatedEvent{
		EventID:   uuid.New().String(),
		EventType: lead.EventLeadCreated,
		Payload: lead.CreatedPayload{
			ID:         l.ID,
			ProductID:  l.ProductID,
			SellerID:   l.SellerID,
			BuyerName:  l.BuyerName,
			BuyerPhone: l.BuyerPhone,
			Amount:     l.Amount.String(),
			TotalPrice: l.TotalPrice.String(),
		},
		Timestamp: l.CreatedAt,
	})
	if err == nil {
		err = uc.events.Publish(ctx, l.SellerID, data)
	}
	if err != nil {
		uc.logger.Error("failed to publish lead event", zap.String("lead_id", l.ID), zap.Error(err))
	}
}

func (uc *leadUseCase) ListLeads(ctx context.Context, filters *dto.LeadFilters) ([]model.Lead, error) {
	if filters.SellerID == "" {
		return nil, fmt.Errorf("%w: seller is required", model.ErrInvalidInput)
	}
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown lead status %q", model.ErrInvalidInput, filters.Status)
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *leadUseCase) UpdateLeadStatus(ctx context.Context, input *dto.UpdateLeadStatusInput) (*model.Lead, error) {
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown lead status %q", model.ErrInvalidInput, input.Status)
	}

	l, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%w: lead %s", model.ErrNotFound, input.ID)
	}
	if l.SellerID != input.SellerID {
		return nil, fmt.Errorf("%w: lead %s belongs to another seller", model.ErrForbidden, input.ID)
	}
	if !canTransition(l.Status, input.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, l.Status, input.Status)
	}

	l.Status = input.Status
	l.UpdatedAt = uc.now()
	if err := uc.repo.UpdateStatus(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
