package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/internal/lead"
	"github.com/fekuna/metalmarket-service/internal/lead/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type LeadHandler struct {
	uc     lead.UseCase
	logger logger.ZapLogger
}

func NewLeadHandler(uc lead.UseCase, log logger.ZapLogger) *LeadHandler {
	return &LeadHandler{
		uc:     uc,
		logger: log,
	}
}

type createLeadRequest struct {
	ProductID  string          `json:"product_id" binding:"required"`
	BuyerName  string          `json:"buyer_name" binding:"required,max=200"`
	BuyerPhone string          `json:"buyer_phone" binding:"required,max=32"`
	Amount     decimal.Decimal `json:"amount"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RegisterPublic mounts lead submission. Anonymous buyers may submit.
func (h *LeadHandler) RegisterPublic(r gin.IRouter) {
	r.POST("/leads", h.CreateLead)
}

// RegisterSeller mounts the seller inbox; the group must be restricted to sellers.
func (h *LeadHandler) RegisterSeller(r gin.IRouter) {
	r.GET("/leads", h.ListLeads)
	r.PATCH("/leads/:id/status", h.UpdateStatus)
}

func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	l, err := h.uc.CreateLead(c.Request.Context(), &dto.CreateLeadInput{
		ProductID:  req.ProductID,
		BuyerName:  req.BuyerName,
		BuyerPhone: req.BuyerPhone,
		Amount:     req.Amount,
	})
	if err != nil {
		h.logger.Error("failed to create lead", zap.String("product_id", req.ProductID), zap.Error(err))
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": l})
}

func (h *LeadHandler) ListLeads(c *gin.Context) {
	leads, err := h.uc.ListLeads(c.Request.Context(), &dto.LeadFilters{
		SellerID: auth.FromContext(c.Request.Context()).UserID,
		Status:   model.LeadStatus(strings.ToUpper(c.Query("status"))),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": leads, "total": len(leads)})
}

func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	l, err := h.uc.UpdateLeadStatus(c.Request.Context(), &dto.UpdateLeadStatusInput{
		ID:       c.Param("id"),
		SellerID: auth.FromContext(c.Request.Context()).UserID,
		Status:   model.LeadStatus(strings.ToUpper(req.Status)),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": l})
}
