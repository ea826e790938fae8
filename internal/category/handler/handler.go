package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fekuna/metalmarket-service/internal/category"
	"github.com/fekuna/metalmarket-service/internal/category/dto"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

type categoryRequest struct {
	ParentID  *string `json:"parent_id"`
	Name      string  `json:"name" binding:"required,max=200"`
	ImageURL  string  `json:"image_url" binding:"omitempty,url"`
	SortOrder int     `json:"sort_order"`
}

// RegisterPublic mounts the read-only catalog sidebar routes.
func (h *CategoryHandler) RegisterPublic(r gin.IRouter) {
	r.GET("/categories", h.ListCategories)
	r.GET("/categories/:id", h.GetCategory)
}

// RegisterAdmin mounts category management; the group must already be restricted to admins.
func (h *CategoryHandler) RegisterAdmin(r gin.IRouter) {
	r.POST("/categories", h.CreateCategory)
	r.PATCH("/categories/:id", h.UpdateCategory)
	r.DELETE("/categories/:id", h.DeleteCategory)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	if tree, _ := strconv.ParseBool(c.Query("tree")); tree {
		nodes, err := h.uc.GetTree(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": nodes})
		return
	}

	filters := &dto.CategoryFilters{}
	if parent, ok := c.GetQuery("parent_id"); ok {
		filters.ParentID = &parent
	}

	cats, count, err := h.uc.ListCategories(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cats, "total": count})
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	cat, err := h.uc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cat})
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &dto.CreateCategoryInput{
		ParentID:  req.ParentID,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": cat})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &dto.UpdateCategoryInput{
		ID:        c.Param("id"),
		ParentID:  req.ParentID,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cat})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
