package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/product"
	"github.com/fekuna/metalmarket-service/internal/product/dto"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type productRequest struct {
	CategoryID     string            `json:"category_id" binding:"required"`
	Name           string            `json:"name" binding:"required,max=300"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	Stock          decimal.Decimal   `json:"stock"`
	ImageURL       string            `json:"image_url" binding:"omitempty,url"`
	Specifications map[string]string `json:"specifications"`
	Tags           []string          `json:"tags"`
	Region         string            `json:"region"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RegisterPublic mounts the buyer catalog.
func (h *ProductHandler) RegisterPublic(r gin.IRouter) {
	r.GET("/products", h.ListProducts)
	r.GET("/products/suggest", h.Suggest)
	r.GET("/products/:id", h.GetProduct)
}

// RegisterSeller mounts the seller cabinet; the group must be restricted to sellers.
func (h *ProductHandler) RegisterSeller(r gin.IRouter) {
	r.GET("/products", h.ListOwnProducts)
	r.POST("/products", h.CreateProduct)
	r.PATCH("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)
	r.GET("/stats", h.Stats)
}

// RegisterAdmin mounts moderation routes; the group must be restricted to admins.
func (h *ProductHandler) RegisterAdmin(r gin.IRouter) {
	r.GET("/products", h.ModerationQueue)
	r.PATCH("/products/:id/status", h.UpdateStatus)
	r.DELETE("/products/:id", h.DeleteProduct)
}

func listFilters(c *gin.Context) *dto.ProductFilters {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("limit"))
	return &dto.ProductFilters{
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
		Sort:       c.Query("sort"),
		Page:       page,
		PageSize:   size,
	}
}

func (h *ProductHandler) list(c *gin.Context, filters *dto.ProductFilters) {
	products, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      products,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	h.list(c, listFilters(c))
}

func (h *ProductHandler) ListOwnProducts(c *gin.Context) {
	filters := listFilters(c)
	filters.SellerID = auth.FromContext(c.Request.Context()).UserID
	h.list(c, filters)
}

func (h *ProductHandler) ModerationQueue(c *gin.Context) {
	filters := listFilters(c)
	filters.Status = strings.TrimSpace(c.Query("status"))
	if filters.Status == "" {
		filters.Status = string(model.ProductStatusModeration)
	}
	h.list(c, filters)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	p, err := h.uc.GetProduct(ctx, id, auth.FromContext(ctx))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if p.Status == model.ProductStatusActive {
		if err := h.uc.RecordView(ctx, id); err != nil {
			h.logger.Warn("failed to record product view", zap.String("product_id", id), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *ProductHandler) Suggest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.uc.Suggest(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		SellerID:       auth.FromContext(c.Request.Context()).UserID,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Stock:          req.Stock,
		ImageURL:       req.ImageURL,
		Specifications: req.Specifications,
		Tags:           req.Tags,
		Region:         req.Region,
	})
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": p})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:             c.Param("id"),
		SellerID:       auth.FromContext(c.Request.Context()).UserID,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Stock:          req.Stock,
		ImageURL:       req.ImageURL,
		Specifications: req.Specifications,
		Tags:           req.Tags,
		Region:         req.Region,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *ProductHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	p, err := h.uc.UpdateProductStatus(c.Request.Context(), c.Param("id"), model.ProductStatus(req.Status))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.uc.DeleteProduct(ctx, c.Param("id"), auth.FromContext(ctx)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) Stats(c *gin.Context) {
	stats, err := h.uc.SellerStats(c.Request.Context(), auth.FromContext(c.Request.Context()).UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
