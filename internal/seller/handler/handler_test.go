package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/metalmarket-service/internal/auth"
	"github.com/fekuna/metalmarket-service/internal/model"
	"github.com/fekuna/metalmarket-service/internal/seller/dto"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	filters *dto.SellerFilters
	viewer  auth.Principal
	update  *dto.UpdateSellerStatusInput
}

func (f *fakeUseCase) ListSellers(_ context.Context, filters *dto.SellerFilters) ([]model.Seller, int, error) {
	f.filters = filters
	return []model.Seller{}, 0, nil
}

func (f *fakeUseCase) GetSeller(_ context.Context, id string, viewer auth.Principal) (*model.Seller, error) {
	f.viewer = viewer
	return &model.Seller{BaseModel: model.BaseModel{ID: id}}, nil
}

func (f *fakeUseCase) UpdateSellerStatus(_ context.Context, input *dto.UpdateSellerStatusInput) (*model.Seller, error) {
	f.update = input
	return &model.Seller{BaseModel: model.BaseModel{ID: input.ID}, VerificationStatus: input.Status}, nil
}

func (f *fakeUseCase) AdminStats(context.Context) (*dto.AdminStats, error) {
	return &dto.AdminStats{SellersCount: 4, ProductsCount: 10, ProductsOnModeration: 3, CompaniesOnVerification: 1}, nil
}

func newRouter(uc *fakeUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(auth.Middleware())
	h := NewSellerHandler(uc, logger.NewNop())
	h.RegisterPublic(r.Group("/api/v1"))
	h.RegisterAdmin(r.Group("/api/v1/admin"))
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.HeaderUserID, "a1")
	req.Header.Set(auth.HeaderRole, "ADMIN")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListSellersQuery(t *testing.T) {
	uc := &fakeUseCase{}
	w := serve(newRouter(uc), http.MethodGet, "/api/v1/admin/sellers?search=stal&status=pending&page=3&limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &dto.SellerFilters{Search: "stal", Status: model.VerificationPending, Page: 3, PageSize: 5}, uc.filters)
}

func TestGetSellerPassesViewer(t *testing.T) {
	uc := &fakeUseCase{}
	w := serve(newRouter(uc), http.MethodGet, "/api/v1/sellers/s1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, uc.viewer.IsAdmin())
	assert.Contains(t, w.Body.String(), `"id":"s1"`)
}

func TestUpdateSellerStatus(t *testing.T) {
	uc := &fakeUseCase{}
	w := serve(newRouter(uc), http.MethodPatch, "/api/v1/admin/sellers/s1/status", `{"status":"blocked","is_blocked":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.update)
	assert.Equal(t, model.VerificationBlocked, uc.update.Status)
	require.NotNil(t, uc.update.IsBlocked)
	assert.True(t, *uc.update.IsBlocked)
}

func TestAdminStats(t *testing.T) {
	w := serve(newRouter(&fakeUseCase{}), http.MethodGet, "/api/v1/admin/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{
		"sellers_count":4,
		"products_count":10,
		"products_on_moderation":3,
		"companies_on_verification":1
	}}`, w.Body.String())
}
