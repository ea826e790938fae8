package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fekuna/metalmarket-service/internal/lead"
	"github.com/fekuna/metalmarket-service/internal/lead/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/product"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeads struct {
	items map[string]model.Lead
}

func (r *fakeLeads) Create(_ context.Context, l *model.Lead) error {
	r.items[l.ID] = *l
	return nil
}

func (r *fakeLeads) FindByID(_ context.Context, id string) (*model.Lead, error) {
	l, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *fakeLeads) FindAll(_ context.Context, f *dto.LeadFilters) ([]model.Lead, error) {
	out := []model.Lead{}
	for _, l := range r.items {
		if l.SellerID == f.SellerID && (f.Status == "" || l.Status == f.Status) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLeads) UpdateStatus(_ context.Context, l *model.Lead) error {
	r.items[l.ID] = *l
	return nil
}

// fakeProducts only answers FindByID.
type fakeProducts struct {
	product.Repository
	items map[string]model.Product
}

func (r *fakeProducts) FindByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type fakePublisher struct {
	keys   []string
	values [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, key string, value []byte) error {
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return nil
}

func setup(leads ...model.Lead) (*leadUseCase, *fakeLeads, *fakePublisher) {
	repo := &fakeLeads{items: map[string]model.Lead{}}
	for _, l := range leads {
		repo.items[l.ID] = l
	}
	products := &fakeProducts{items: map[string]model.Product{
		"p1": {
			BaseModel: model.BaseModel{ID: "p1"},
			SellerID:  "s1",
			Name:      "Armatura A500C 12mm",
			Price:     decimal.RequireFromString("54000.50"),
			Status:    model.ProductStatusActive,
		},
		"p2": {
			BaseModel: model.BaseModel{ID: "p2"},
			SellerID:  "s1",
			Name:      "Draft sheet",
			Status:    model.ProductStatusDraft,
		},
	}}
	pub := &fakePublisher{}
	uc := NewLeadUseCase(repo, products, pub, logger.NewNop()).(*leadUseCase)
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return uc, repo, pub
}

func TestCreateLead(t *testing.T) {
	uc, repo, pub := setup()

	l, err := uc.CreateLead(context.Background(), &dto.CreateLeadInput{
		ProductID:  "p1",
		BuyerName:  " Ivan ",
		BuyerPhone: "+7 900 000 00 00",
		Amount:     decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	assert.Equal(t, model.LeadStatusNew, l.Status)
	assert.Equal(t, "s1", l.SellerID)
	assert.Equal(t, "Ivan", l.BuyerName)
	assert.Equal(t, "Armatura A500C 12mm", l.ProductName)
	assert.True(t, decimal.NewFromInt(108001).Equal(l.TotalPrice))
	assert.Contains(t, repo.items, l.ID)

	require.Len(t, pub.values, 1)
	assert.Equal(t, "s1", pub.keys[0])
	var event lead.CreatedEvent
	require.NoError(t, json.Unmarshal(pub.values[0], &event))
	assert.Equal(t, lead.EventLeadCreated, event.EventType)
	assert.Equal(t, l.ID, event.Payload.ID)
	assert.Equal(t, "108001", event.Payload.TotalPrice)
}

func TestCreateLeadRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   dto.CreateLeadInput
		wantErr error
	}{
		{"inactive product", dto.CreateLeadInput{ProductID: "p2", BuyerName: "a", BuyerPhone: "1", Amount: decimal.NewFromInt(1)}, model.ErrNotFound},
		{"unknown product", dto.CreateLeadInput{ProductID: "p9", BuyerName: "a", BuyerPhone: "1", Amount: decimal.NewFromInt(1)}, model.ErrNotFound},
		{"zero amount", dto.CreateLeadInput{ProductID: "p1", BuyerName: "a", BuyerPhone: "1"}, model.ErrInvalidInput},
		{"no phone", dto.CreateLeadInput{ProductID: "p1", BuyerName: "a", Amount: decimal.NewFromInt(1)}, model.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, pub := setup()
			_, err := uc.CreateLead(context.Background(), &tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.items)
			assert.Empty(t, pub.values)
		})
	}
}

func TestListLeads(t *testing.T) {
	uc, _, _ := setup(
		model.Lead{BaseModel: model.BaseModel{ID: "l1"}, SellerID: "s1", Status: model.LeadStatusNew},
		model.Lead{BaseModel: model.BaseModel{ID: "l2"}, SellerID: "s1", Status: model.LeadStatusDone},
		model.Lead{BaseModel: model.BaseModel{ID: "l3"}, SellerID: "s2", Status: model.LeadStatusNew},
	)
	ctx := context.Background()

	all, err := uc.ListLeads(ctx, &dto.LeadFilters{SellerID: "s1"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	done, err := uc.ListLeads(ctx, &dto.LeadFilters{SellerID: "s1", Status: model.LeadStatusDone})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "l2", done[0].ID)

	_, err = uc.ListLeads(ctx, &dto.LeadFilters{SellerID: "s1", Status: "LOST"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = uc.ListLeads(ctx, &dto.LeadFilters{})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestUpdateLeadStatusTransitions(t *testing.T) {
	tests := []struct {
		from    model.LeadStatus
		to      model.LeadStatus
		allowed bool
	}{
		{model.LeadStatusNew, model.LeadStatusInProgress, true},
		{model.LeadStatusNew, model.LeadStatusRejected, true},
		{model.LeadStatusNew, model.LeadStatusDone, false},
		{model.LeadStatusInProgress, model.LeadStatusDone, true},
		{model.LeadStatusInProgress, model.LeadStatusRejected, true},
		{model.LeadStatusInProgress, model.LeadStatusNew, false},
		{model.LeadStatusDone, model.LeadStatusRejected, false},
		{model.LeadStatusRejected, model.LeadStatusInProgress, false},
		{model.LeadStatusNew, model.LeadStatusNew, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			uc, repo, _ := setup(model.Lead{BaseModel: model.BaseModel{ID: "l1"}, SellerID: "s1", Status: tt.from})

			l, err := uc.UpdateLeadStatus(context.Background(), &dto.UpdateLeadStatusInput{ID: "l1", SellerID: "s1", Status: tt.to})
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, l.Status)
				assert.Equal(t, tt.to, repo.items["l1"].Status)
			} else {
				assert.ErrorIs(t, err, model.ErrInvalidTransition)
				assert.Equal(t, tt.from, repo.items["l1"].Status)
			}
		})
	}
}

func TestUpdateLeadStatusGuards(t *testing.T) {
	uc, _, _ := setup(model.Lead{BaseModel: model.BaseModel{ID: "l1"}, SellerID: "s1", Status: model.LeadStatusNew})
	ctx := context.Background()

	_, err := uc.UpdateLeadStatus(ctx, &dto.UpdateLeadStatusInput{ID: "l1", SellerID: "s2", Status: model.LeadStatusInProgress})
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = uc.UpdateLeadStatus(ctx, &dto.UpdateLeadStatusInput{ID: "l9", SellerID: "s1", Status: model.LeadStatusInProgress})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = uc.UpdateLeadStatus(ctx, &dto.UpdateLeadStatusInput{ID: "l1", SellerID: "s1", Status: "CLOSED"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
