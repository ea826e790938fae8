package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/metalmarket-service/config"
	"github.com/fekuna/metalmarket-service/internal/lead"
	"github.com/fekuna/metalmarket-service/internal/product"
	"github.com/fekuna/metalmarket-service/internal/server"
	"github.com/fekuna/metalmarket-service/pkg/broker"
	"github.com/fekuna/metalmarket-service/pkg/cache"
	"github.com/fekuna/metalmarket-service/pkg/i18n"
	"github.com/fekuna/metalmarket-service/pkg/logger"
	"github.com/fekuna/metalmarket-service/pkg/postgres"
	"github.com/fekuna/metalmarket-service/pkg/search"

	catH "github.com/fekuna/metalmarket-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/metalmarket-service/internal/category/repository"
	catUCPkg "github.com/fekuna/metalmarket-service/internal/category/usecase"

	prodH "github.com/fekuna/metalmarket-service/internal/product/handler"
	prodListenerPkg "github.com/fekuna/metalmarket-service/internal/product/listener"
	prodRepoPkg "github.com/fekuna/metalmarket-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/metalmarket-service/internal/product/usecase"

	leadH "github.com/fekuna/metalmarket-service/internal/lead/handler"
	leadRepoPkg "github.com/fekuna/metalmarket-service/internal/lead/repository"
	leadUCPkg "github.com/fekuna/metalmarket-service/internal/lead/usecase"

	sellerH "github.com/fekuna/metalmarket-service/internal/seller/handler"
	sellerRepoPkg "github.com/fekuna/metalmarket-service/internal/seller/repository"
	sellerUCPkg "github.com/fekuna/metalmarket-service/internal/seller/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	translator, err := i18n.New()
	if err != nil {
		appLogger.Fatal("Could not load locales", zap.Error(err))
	}

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	leadRepo := leadRepoPkg.NewPGRepository(db)
	sellerRepo := sellerRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis. The catalog works uncached when Redis is down.
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, list cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 6. Initialize Elasticsearch
	var searchIndex product.SearchIndex
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (suggestions fall back to SQL)", zap.Error(err))
	} else {
		initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
		if err := esClient.CreateIndex(initCtx, cfg.Elastic.Index, prodUCPkg.IndexMapping); err != nil {
			appLogger.Warn("Could not ensure search index", zap.String("index", cfg.Elastic.Index), zap.Error(err))
		}
		cancelInit()
		searchIndex = esClient
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 7. Initialize Kafka
	var (
		viewEvents   product.EventPublisher
		leadEvents   lead.EventPublisher
		viewConsumer *broker.KafkaConsumer
	)
	if cfg.Kafka.Enabled {
		viewsProducer := broker.NewProducer(&broker.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.ViewsTopic})
		defer viewsProducer.Close()
		leadsProducer := broker.NewProducer(&broker.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.LeadsTopic})
		defer leadsProducer.Close()
		viewConsumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.ViewsTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer viewConsumer.Close()

		viewEvents = viewsProducer
		leadEvents = leadsProducer
		appLogger.Info("Kafka enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("views_topic", cfg.Kafka.ViewsTopic),
			zap.String("leads_topic", cfg.Kafka.LeadsTopic),
		)
	} else {
		appLogger.Info("Kafka disabled, product views are counted inline")
	}

	// 8. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodUCPkg.Deps{
		Repo:       prodRepo,
		Categories: catRepo,
		Cache:      redisClient,
		ListTTL:    cfg.Redis.ListTTL,
		Search:     searchIndex,
		Index:      cfg.Elastic.Index,
		Views:      viewEvents,
		Logger:     appLogger,
	})
	leadUC := leadUCPkg.NewLeadUseCase(leadRepo, prodRepo, leadEvents, appLogger)
	sellerUC := sellerUCPkg.NewSellerUseCase(sellerRepo, prodRepo, appLogger)

	// 9. Start Listeners
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if viewConsumer != nil {
		go prodListenerPkg.NewViewsListener(viewConsumer, prodUC, appLogger).Start(ctx)
	}

	// 10. HTTP Server
	router := server.NewRouter(server.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Translator:     translator,
		Logger:         appLogger,
	}, server.Handlers{
		Category: catH.NewCategoryHandler(catUC, appLogger),
		Product:  prodH.NewProductHandler(prodUC, appLogger),
		Lead:     leadH.NewLeadHandler(leadUC, appLogger),
		Seller:   sellerH.NewSellerHandler(sellerUC, appLogger),
	})

	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 11. gRPC Server (health + reflection)
	grpcPort := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", grpcPort), zap.Error(err))
	}
	grpcServer, healthServer := server.NewGRPCServer(appLogger)
	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", grpcPort))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
