package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/seller/dto"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items   map[string]model.Seller
	filters *dto.SellerFilters
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.Seller, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeRepo) FindAll(_ context.Context, f *dto.SellerFilters) ([]model.Seller, int, error) {
	r.filters = f
	out := []model.Seller{}
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, s *model.Seller) error {
	r.items[s.ID] = *s
	return nil
}

func (r *fakeRepo) CountByStatus(context.Context) (map[model.VerificationStatus]int, error) {
	counts := map[model.VerificationStatus]int{}
	for _, s := range r.items {
		counts[s.VerificationStatus]++
	}
	return counts, nil
}

type productCounts map[model.ProductStatus]int

func (c productCounts) CountByStatus(context.Context) (map[model.ProductStatus]int, error) {
	return c, nil
}

func newRepo() *fakeRepo {
	return &fakeRepo{items: map[string]model.Seller{
		"s1": {BaseModel: model.BaseModel{ID: "s1"}, CompanyName: "Stal LLC", VerificationStatus: model.VerificationPending},
		"s2": {BaseModel: model.BaseModel{ID: "s2"}, CompanyName: "Truby", VerificationStatus: model.VerificationBlocked, IsBlocked: true},
	}}
}

func boolPtr(b bool) *bool { return &b }

func TestListSellers(t *testing.T) {
	repo := newRepo()
	uc := NewSellerUseCase(repo, productCounts{}, logger.NewNop())

	_, total, err := uc.ListSellers(context.Background(), &dto.SellerFilters{PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 20, repo.filters.PageSize)
	assert.Equal(t, 1, repo.filters.Page)

	_, _, err = uc.ListSellers(context.Background(), &dto.SellerFilters{Status: "GOLD"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestGetSellerHidesBlocked(t *testing.T) {
	uc := NewSellerUseCase(newRepo(), productCounts{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.GetSeller(ctx, "s1", auth.Principal{})
	assert.NoError(t, err)

	_, err = uc.GetSeller(ctx, "s2", auth.Principal{Role: auth.RoleBuyer})
	assert.ErrorIs(t, err, model.ErrNotFound)

	s, err := uc.GetSeller(ctx, "s2", auth.Principal{UserID: "a1", Role: auth.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, s.IsBlocked)

	_, err = uc.GetSeller(ctx, "s404", auth.Principal{UserID: "a1", Role: auth.RoleAdmin})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateSellerStatus(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		status      model.VerificationStatus
		isBlocked   *bool
		wantBlocked bool
	}{
		{"verify keeps flag", "s1", model.VerificationVerified, nil, false},
		{"blocked forces flag", "s1", model.VerificationBlocked, boolPtr(false), true},
		{"explicit unblock", "s2", model.VerificationVerified, boolPtr(false), false},
		{"keeps existing block", "s2", model.VerificationRejected, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo()
			uc := NewSellerUseCase(repo, productCounts{}, logger.NewNop())

			s, err := uc.UpdateSellerStatus(context.Background(), &dto.UpdateSellerStatusInput{
				ID:        tt.id,
				Status:    tt.status,
				IsBlocked: tt.isBlocked,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.status, s.VerificationStatus)
			assert.Equal(t, tt.wantBlocked, s.IsBlocked)
			assert.Equal(t, tt.wantBlocked, repo.items[tt.id].IsBlocked)
			assert.False(t, s.UpdatedAt.IsZero())
		})
	}
}

func TestUpdateSellerStatusErrors(t *testing.T) {
	uc := NewSellerUseCase(newRepo(), productCounts{}, logger.NewNop())

	_, err := uc.UpdateSellerStatus(context.Background(), &dto.UpdateSellerStatusInput{ID: "s1", Status: "GOLD"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = uc.UpdateSellerStatus(context.Background(), &dto.UpdateSellerStatusInput{ID: "nope", Status: model.VerificationVerified})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAdminStats(t *testing.T) {
	repo := newRepo()
	repo.items["s3"] = model.Seller{BaseModel: model.BaseModel{ID: "s3"}, VerificationStatus: model.VerificationPending}
	products := productCounts{
		model.ProductStatusActive:     5,
		model.ProductStatusModeration: 2,
		model.ProductStatusDraft:      1,
	}
	uc := NewSellerUseCase(repo, products, logger.NewNop())

	stats, err := uc.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &dto.AdminStats{
		SellersCount:            3,
		ProductsCount:           8,
		ProductsOnModeration:    2,
		CompaniesOnVerification: 2,
	}, stats)

	empty, err := NewSellerUseCase(&fakeRepo{items: map[string]model.Seller{}}, productCounts{}, logger.NewNop()).
		AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &dto.AdminStats{}, empty)
}
