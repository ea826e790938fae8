package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/metalmarket-service/internal/catalog"
	"github.com/fekuna/metalmarket-service/internal/category"
	"github.com/fekuna/metalmarket-service/internal/category/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", model.ErrInvalidInput)
	}

	parentID := normalizeParent(input.ParentID)
	if parentID != nil {
		parent, err := uc.repo.FindByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: parent category %s does not exist", model.ErrInvalidInput, *parentID)
		}
	}

	now := time.Now().UTC()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ParentID:  parentID,
		Name:      name,
		ImageURL:  optional(input.ImageURL),
		SortOrder: input.SortOrder,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	uc.logger.Info("category created", zap.String("category_id", cat.ID), zap.String("name", cat.Name))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: category %s", model.ErrNotFound, id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) GetTree(ctx context.Context) ([]*catalog.Node, error) {
	categories, _, err := uc.repo.FindAll(ctx, &dto.CategoryFilters{})
	if err != nil {
		return nil, err
	}
	return catalog.BuildTree(categories), nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", model.ErrInvalidInput)
	}

	parentID := normalizeParent(input.ParentID)
	if parentID != nil {
		if *parentID == cat.ID {
			return nil, fmt.Errorf("%w: category cannot be its own parent", model.ErrInvalidInput)
		}
		all, _, err := uc.repo.FindAll(ctx, &dto.CategoryFilters{})
		if err != nil {
			return nil, err
		}
		if !exists(all, *parentID) {
			return nil, fmt.Errorf("%w: parent category %s does not exist", model.ErrInvalidInput, *parentID)
		}
		if catalog.IsDescendant(all, cat.ID, *parentID) {
			return nil, fmt.Errorf("%w: parent %s is nested under %s", model.ErrInvalidInput, *parentID, cat.ID)
		}
	}

	cat.Name = name
	cat.ImageURL = optional(input.ImageURL)
	cat.SortOrder = input.SortOrder
	cat.ParentID = parentID
	cat.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.GetCategory(ctx, id); err != nil {
		return err
	}
	children, err := uc.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("%w: category %s still has %d subcategories", model.ErrInvalidInput, id, children)
	}
	products, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return fmt.Errorf("%w: category %s still has %d products", model.ErrInvalidInput, id, products)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}

func normalizeParent(parentID *string) *string {
	if parentID == nil {
		return nil
	}
	id := strings.TrimSpace(*parentID)
	if id == "" {
		return nil
	}
	return &id
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func exists(categories []model.Category, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
