package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/seller"
	"github.com/fekuna/metalmarket-service/internal/seller/dto"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type SellerHandler struct {
	uc     seller.UseCase
	logger logger.ZapLogger
}

func NewSellerHandler(uc seller.UseCase, log logger.ZapLogger) *SellerHandler {
	return &SellerHandler{
		uc:     uc,
		logger: log,
	}
}

type statusRequest struct {
	Status    string `json:"status" binding:"required"`
	IsBlocked *bool  `json:"is_blocked"`
}

func (h *SellerHandler) RegisterPublic(r gin.IRouter) {
	r.GET("/sellers/:id", h.GetSeller)
}

// RegisterAdmin mounts seller verification; the group must be restricted to admins.
func (h *SellerHandler) RegisterAdmin(r gin.IRouter) {
	r.GET("/sellers", h.ListSellers)
	r.GET("/sellers/:id", h.GetSeller)
	r.PATCH("/sellers/:id/status", h.UpdateStatus)
	r.GET("/stats", h.Stats)
}

func (h *SellerHandler) ListSellers(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("limit"))
	filters := &dto.SellerFilters{
		Search:   c.Query("search"),
		Status:   model.VerificationStatus(strings.ToUpper(c.Query("status"))),
		Page:     page,
		PageSize: size,
	}

	sellers, total, err := h.uc.ListSellers(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      sellers,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

func (h *SellerHandler) GetSeller(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := h.uc.GetSeller(ctx, c.Param("id"), auth.FromContext(ctx))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s})
}

func (h *SellerHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	s, err := h.uc.UpdateSellerStatus(c.Request.Context(), &dto.UpdateSellerStatusInput{
		ID:        c.Param("id"),
		Status:    model.VerificationStatus(strings.ToUpper(req.Status)),
		IsBlocked: req.IsBlocked,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s})
}

func (h *SellerHandler) Stats(c *gin.Context) {
	stats, err := h.uc.AdminStats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
