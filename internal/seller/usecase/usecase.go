package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/seller"
	"github.com/fekuna/metalmarket-service/internal/seller/dto"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"go.uber.org/zap"
)

type sellerUseCase struct {
	repo     seller.Repository
	products seller.ProductCounter
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewSellerUseCase(repo seller.Repository, products seller.ProductCounter, log logger.ZapLogger) seller.UseCase {
	return &sellerUseCase{
		repo:     repo,
		products: products,
		logger:   log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *sellerUseCase) ListSellers(ctx context.Context, filters *dto.SellerFilters) ([]model.Seller, int, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown verification status %q", model.ErrInvalidInput, filters.Status)
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	return uc.repo.FindAll(ctx, filters)
}

// GetSeller hides blocked sellers from everyone but admins.
func (uc *sellerUseCase) GetSeller(ctx context.Context, id string, viewer auth.Principal) (*model.Seller, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || (s.IsBlocked && !viewer.IsAdmin()) {
		return nil, fmt.Errorf("%w: seller %s", model.ErrNotFound, id)
	}
	return s, nil
}

func (uc *sellerUseCase) UpdateSellerStatus(ctx context.Context, input *dto.UpdateSellerStatusInput) (*model.Seller, error) {
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown verification status %q", model.ErrInvalidInput, input.Status)
	}

	s, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: seller %s", model.ErrNotFound, input.ID)
	}

	s.VerificationStatus = input.Status
	if input.IsBlocked != nil {
		s.IsBlocked = *input.IsBlocked
	}
	if input.Status == model.VerificationBlocked {
		s.IsBlocked = true
	}
	s.UpdatedAt = uc.now()

	if err := uc.repo.UpdateStatus(ctx, s); err != nil {
		return nil, err
	}

	uc.logger.Info("seller verification changed",
		zap.String("seller_id", s.ID),
		zap.String("status", string(s.VerificationStatus)),
		zap.Bool("is_blocked", s.IsBlocked),
	)
	return s, nil
}

func (uc *sellerUseCase) AdminStats(ctx context.Context) (*dto.AdminStats, error) {
	sellers, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.AdminStats{
		ProductsOnModeration:    products[model.ProductStatusModeration],
		CompaniesOnVerification: sellers[model.VerificationPending],
	}
	for _, n := range sellers {
		stats.SellersCount += n
	}
	for _, n := range products {
		stats.ProductsCount += n
	}
	return stats, nil
}
