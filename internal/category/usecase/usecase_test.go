package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/metalmarket-service/internal/category/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items    map[string]*model.Category
	order    []string
	products map[string]int
}

func newFakeRepo(categories ...model.Category) *fakeRepo {
	r := &fakeRepo{items: map[string]*model.Category{}}
	for i := range categories {
		c := categories[i]
		r.items[c.ID] = &c
		r.order = append(r.order, c.ID)
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, c *model.Category) error {
	cp := *c
	r.items[c.ID] = &cp
	r.order = append(r.order, c.ID)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) FindAll(_ context.Context, _ *dto.CategoryFilters) ([]model.Category, int, error) {
	out := []model.Category{}
	for _, id := range r.order {
		if c, ok := r.items[id]; ok {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, c *model.Category) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) CountChildren(_ context.Context, id string) (int, error) {
	n := 0
	for _, c := range r.items {
		if c.ParentID != nil && *c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CountProducts(_ context.Context, id string) (int, error) {
	return r.products[id], nil
}

func strPtr(s string) *string { return &s }

func newCategory(id, parent string) model.Category {
	c := model.Category{BaseModel: model.BaseModel{ID: id}, Name: id}
	if parent != "" {
		c.ParentID = strPtr(parent)
	}
	return c
}

func TestCreateCategory(t *testing.T) {
	repo := newFakeRepo(newCategory("c1", ""))
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	created, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: " Арматура ", ParentID: strPtr("c1")})
	require.NoError(t, err)
	assert.Equal(t, "Арматура", created.Name)
	assert.Equal(t, "c1", *created.ParentID)
	assert.Nil(t, created.ImageURL)
	assert.NotEmpty(t, created.ID)

	root, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Трубы", ParentID: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, root.ParentID)

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "x", ParentID: strPtr("missing")})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "  "})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestGetCategoryNotFound(t *testing.T) {
	uc := NewCategoryUseCase(newFakeRepo(), logger.NewNop())
	_, err := uc.GetCategory(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateCategoryRejectsCycles(t *testing.T) {
	repo := newFakeRepo(newCategory("c1", ""), newCategory("c1-1", "c1"), newCategory("c1-1-1", "c1-1"), newCategory("c2", ""))
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	_, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: "c1", Name: "c1", ParentID: strPtr("c1")})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: "c1", Name: "c1", ParentID: strPtr("c1-1-1")})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: "c1", Name: "c1", ParentID: strPtr("ghost")})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	moved, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: "c1-1", Name: "moved", ParentID: strPtr("c2")})
	require.NoError(t, err)
	assert.Equal(t, "c2", *moved.ParentID)
	assert.Equal(t, "moved", repo.items["c1-1"].Name)

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: "ghost", Name: "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteCategory(t *testing.T) {
	repo := newFakeRepo(newCategory("c1", ""), newCategory("c1-1", "c1"))
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	assert.ErrorIs(t, uc.DeleteCategory(ctx, "c1"), model.ErrInvalidInput)
	require.NoError(t, uc.DeleteCategory(ctx, "c1-1"))
	require.NoError(t, uc.DeleteCategory(ctx, "c1"))
	assert.Empty(t, repo.items)
	assert.ErrorIs(t, uc.DeleteCategory(ctx, "c1"), model.ErrNotFound)
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	repo := newFakeRepo(newCategory("c1", ""))
	repo.products = map[string]int{"c1": 2}
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	assert.ErrorIs(t, uc.DeleteCategory(ctx, "c1"), model.ErrInvalidInput)
	assert.Contains(t, repo.items, "c1")

	repo.products["c1"] = 0
	require.NoError(t, uc.DeleteCategory(ctx, "c1"))
	assert.Empty(t, repo.items)
}

func TestGetTree(t *testing.T) {
	repo := newFakeRepo(newCategory("c1", ""), newCategory("c1-1", "c1"), newCategory("c2", ""))
	uc := NewCategoryUseCase(repo, logger.NewNop())

	tree, err := uc.GetTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "c1", tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "c1-1", tree[0].Children[0].ID)
}
