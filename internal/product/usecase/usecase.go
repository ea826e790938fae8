package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/internal/catalog"
	"github.com/fekuna/metalmarket-service/internal/category"
	catDTO "github.com/fekuna/metalmarket-service/internal/category/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/product"
	"github.com/fekuna/metalmarket-service/internal/product/dto"
	"github.com/fekuna/metalmarket-service/pkg/cache"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	listCachePrefix = "products:list:"
)

// IndexMapping is the Elasticsearch mapping for the products index.
const IndexMapping = `{
	"mappings": {
		"properties": {
			"seller_id": { "type": "keyword" },
			"category_id": { "type": "keyword" },
			"status": { "type": "keyword" },
			"name": { "type": "text" },
			"description": { "type": "text" },
			"region": { "type": "keyword" },
			"tags": { "type": "keyword" },
			"price": { "type": "double" },
			"created_at": { "type": "date" }
		}
	}
}`

// Deps bundles the collaborators of the product usecase. Cache, Search and
// Views are optional; a nil value disables that feature.
type Deps struct {
	Repo       product.Repository
	Categories category.Repository
	Cache      *cache.RedisClient
	ListTTL    time.Duration
	Search     product.SearchIndex
	Index      string
	Views      product.EventPublisher
	Logger     logger.ZapLogger
}

type productUseCase struct {
	repo       product.Repository
	categories category.Repository
	cache      *cache.RedisClient
	listTTL    time.Duration
	es         product.SearchIndex
	index      string
	views      product.EventPublisher
	logger     logger.ZapLogger
	now        func() time.Time
}

func NewProductUseCase(deps Deps) product.UseCase {
	ttl := deps.ListTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	index := deps.Index
	if index == "" {
		index = "products"
	}
	return &productUseCase{
		repo:       deps.Repo,
		categories: deps.Categories,
		cache:      deps.Cache,
		listTTL:    ttl,
		es:         deps.Search,
		index:      index,
		views:      deps.Views,
		logger:     deps.Logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type listResult struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	normalizePaging(filters)

	view := catalog.ViewFor(filters.SellerID, filters.Status)
	if v, ok := view.(catalog.StatusView); ok && !v.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown product status %q", model.ErrInvalidInput, filters.Status)
	}

	cacheKey := uc.cacheKey(filters)
	if uc.cache != nil && cacheKey != "" {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached listResult
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	snapshot, err := uc.repo.FindAll(ctx, snapshotFor(view))
	if err != nil {
		return nil, 0, fmt.Errorf("load products: %w", err)
	}
	categories, _, err := uc.categories.FindAll(ctx, &catDTO.CategoryFilters{})
	if err != nil {
		return nil, 0, fmt.Errorf("load categories: %w", err)
	}

	resolved := catalog.Resolve(snapshot, categories, catalog.Filter{
		CategoryID: filters.CategoryID,
		Search:     filters.Search,
		View:       view,
	}, catalog.ParseSort(filters.Sort))

	total := len(resolved)
	page := paginate(resolved, filters.Page, filters.PageSize)

	if uc.cache != nil && cacheKey != "" {
		if data, err := json.Marshal(listResult{Products: page, Count: total}); err == nil {
			if err := uc.cache.Client.Set(ctx, cacheKey, data, uc.listTTL).Err(); err != nil {
				uc.logger.Warn("failed to cache product list", zap.Error(err))
			}
		}
	}

	return page, total, nil
}

// snapshotFor pushes the visibility rule down to the repository so it loads less.
// The resolver still applies the rule itself.
func snapshotFor(view catalog.View) *dto.SnapshotFilter {
	switch v := view.(type) {
	case catalog.SellerView:
		return &dto.SnapshotFilter{SellerID: v.SellerID}
	case catalog.StatusView:
		return &dto.SnapshotFilter{Status: v.Status}
	default:
		return &dto.SnapshotFilter{Status: model.ProductStatusActive}
	}
}

func normalizePaging(f *dto.ProductFilters) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

func paginate(products []model.Product, page, size int) []model.Product {
	start := (page - 1) * size
	if start >= len(products) {
		return []model.Product{}
	}
	end := start + size
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

func (uc *productUseCase) cacheKey(filters *dto.ProductFilters) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s%x", listCachePrefix, md5.Sum(data))
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, listCachePrefix+"*"); err != nil {
		uc.logger.Warn("failed to invalidate product list cache", zap.Error(err))
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string, viewer auth.Principal) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !canSee(p, viewer) {
		return nil, fmt.Errorf("%w: product %s", model.ErrNotFound, id)
	}
	return p, nil
}

func canSee(p *model.Product, viewer auth.Principal) bool {
	if p.Status == model.ProductStatusActive || viewer.IsAdmin() {
		return true
	}
	return viewer.UserID != "" && viewer.UserID == p.SellerID
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if strings.TrimSpace(input.SellerID) == "" {
		return nil, fmt.Errorf("%w: seller is required", model.ErrInvalidInput)
	}

	now := uc.now()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		SellerID:  input.SellerID,
		Status:    model.ProductStatusModeration,
	}
	applyFields(p, input.CategoryID, input.Name, input.Description, input.ImageURL, input.Region,
		input.Specifications, input.Tags)
	p.Price = input.Price
	p.Stock = input.Stock

	if err := uc.validate(ctx, p); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("seller_id", p.SellerID),
		zap.String("category_id", p.CategoryID),
	)

	uc.invalidateListCache(ctx)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", model.ErrNotFound, input.ID)
	}
	if p.SellerID != input.SellerID {
		return nil, fmt.Errorf("%w: product %s belongs to another seller", model.ErrForbidden, input.ID)
	}

	applyFields(p, input.CategoryID, input.Name, input.Description, input.ImageURL, input.Region,
		input.Specifications, input.Tags)
	p.Price = input.Price
	p.Stock = input.Stock
	p.UpdatedAt = uc.now()

	if err := uc.validate(ctx, p); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

// UpdateProductStatus is the admin moderation action. Any valid status may follow any other.
func (uc *productUseCase) UpdateProductStatus(ctx context.Context, id string, status model.ProductStatus) (*model.Product, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown product status %q", model.ErrInvalidInput, status)
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", model.ErrNotFound, id)
	}

	previous := p.Status
	p.Status = status
	p.UpdatedAt = uc.now()
	if err := uc.repo.UpdateStatus(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("product status changed",
		zap.String("product_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	uc.invalidateListCache(ctx)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string, viewer auth.Principal) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: product %s", model.ErrNotFound, id)
	}
	if !viewer.IsAdmin() && p.SellerID != viewer.UserID {
		return fmt.Errorf("%w: product %s belongs to another seller", model.ErrForbidden, id)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateListCache(ctx)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), uc.index, id); err != nil {
				uc.logger.Error("failed to delete product from search index", zap.String("product_id", id), zap.Error(err))
			}
		}()
	}
	return nil
}

// RecordView publishes a view event, or counts the view inline when no broker is configured.
func (uc *productUseCase) RecordView(ctx context.Context, id string) error {
	if uc.views == nil {
		return uc.IncrementViews(ctx, id)
	}

	event := product.ViewedEvent{
		EventID:   uuid.New().String(),
		EventType: product.EventProductViewed,
		ProductID: id,
		Timestamp: uc.now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return uc.views.Publish(ctx, id, data)
}

func (uc *productUseCase) IncrementViews(ctx context.Context, id string) error {
	return uc.repo.IncrementViews(ctx, id)
}

func (uc *productUseCase) Suggest(ctx context.Context, query string, limit int) ([]dto.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []dto.Suggestion{}, nil
	}
	if limit < 1 || limit > 20 {
		limit = 10
	}

	if uc.es != nil {
		res, err := uc.es.Search(ctx, uc.index, map[string]interface{}{
			"size":    limit,
			"_source": []string{"name"},
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": []map[string]interface{}{
						{"match_phrase_prefix": map[string]interface{}{"name": query}},
					},
					"filter": []map[string]interface{}{
						{"term": map[string]interface{}{"status": string(model.ProductStatusActive)}},
					},
				},
			},
		})
		if err == nil {
			out := make([]dto.Suggestion, 0, len(res.Hits.Hits))
			for _, hit := range res.Hits.Hits {
				var doc struct {
					Name string `json:"name"`
				}
				if err := json.Unmarshal(hit.Source, &doc); err == nil {
					out = append(out, dto.Suggestion{ID: hit.ID, Name: doc.Name})
				}
			}
			return out, nil
		}
		uc.logger.Error("search suggestions failed, falling back to DB", zap.Error(err))
	}

	return uc.repo.SearchNames(ctx, query, limit)
}

func (uc *productUseCase) SellerStats(ctx context.Context, sellerID string) (*dto.SellerStats, error) {
	products, err := uc.repo.FindAll(ctx, &dto.SnapshotFilter{SellerID: sellerID})
	if err != nil {
		return nil, err
	}

	stats := &dto.SellerStats{
		TotalProducts: len(products),
		ByStatus:      map[model.ProductStatus]int{},
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Views != products[j].Views {
			return products[i].Views > products[j].Views
		}
		return products[i].ID < products[j].ID
	})
	for _, p := range products {
		stats.TotalViews += p.Views
		stats.ByStatus[p.Status]++
	}
	if len(products) > 0 {
		top := products[0]
		stats.TopProduct = &top
	}
	return stats, nil
}

func (uc *productUseCase) validate(ctx context.Context, p *model.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", model.ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", model.ErrInvalidInput)
	}
	if p.Stock.IsNegative() {
		return fmt.Errorf("%w: stock must not be negative", model.ErrInvalidInput)
	}
	if p.CategoryID == "" {
		return fmt.Errorf("%w: category is required", model.ErrInvalidInput)
	}
	cat, err := uc.categories.FindByID(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: category %s does not exist", model.ErrInvalidInput, p.CategoryID)
	}
	return nil
}

func applyFields(p *model.Product, categoryID, name, description, imageURL, region string, specs map[string]string, tags []string) {
	p.CategoryID = strings.TrimSpace(categoryID)
	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.Region = strings.TrimSpace(region)
	p.ImageURL = nil
	if imageURL = strings.TrimSpace(imageURL); imageURL != "" {
		p.ImageURL = &imageURL
	}

	p.Specifications = model.Specifications{}
	for k, v := range specs {
		if k = strings.TrimSpace(k); k != "" {
			p.Specifications[k] = strings.TrimSpace(v)
		}
	}

	p.Tags = normalizeTags(tags)
}

// normalizeTags trims, lowercases and de-duplicates tags, keeping first-seen order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	if err := uc.es.Index(ctx, uc.index, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}
