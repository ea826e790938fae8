package server

import (
	"net/http"
	"time"

	"github.com/fekuna/metalmarket-service/internal/auth"
	catH "github.com/fekuna/metalmarket-service/internal/category/handler"
	leadH "github.com/fekuna/metalmarket-service/internal/lead/handler"
	prodH "github.com/fekuna/metalmarket-service/internal/product/handler"
	sellerH "github.com/fekuna/metalmarket-service/internal/seller/handler"
	"github.com/fekuna/metalmarket-service/pkg/i18n"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Category *catH.CategoryHandler
	Product  *prodH.ProductHandler
	Lead     *leadH.LeadHandler
	Seller   *sellerH.SellerHandler
}

type RouterConfig struct {
	AllowedOrigins []string
	Translator     *i18n.Translator
	Logger         logger.ZapLogger
}

func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false

	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = true
	}
	// A wildcard origin never gets credentialed responses.
	wildcard := allowed["*"]
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return wildcard || allowed[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept-Language", auth.HeaderUserID, auth.HeaderRole},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !wildcard,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Logger))
	r.Use(auth.Middleware())
	r.Use(ErrorHandler(cfg.Translator, cfg.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		h.Category.RegisterPublic(api)
		h.Product.RegisterPublic(api)
		h.Lead.RegisterPublic(api)
		h.Seller.RegisterPublic(api)
	}

	seller := api.Group("/seller", RequireRole(auth.RoleSeller))
	{
		h.Product.RegisterSeller(seller)
		h.Lead.RegisterSeller(seller)
	}

	admin := api.Group("/admin", RequireRole(auth.RoleAdmin))
	{
		h.Category.RegisterAdmin(admin)
		h.Product.RegisterAdmin(admin)
		h.Seller.RegisterAdmin(admin)
	}

	return r
}
