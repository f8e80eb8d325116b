package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/config"
	adoptionDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/adoption"
	favoriteDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/favorite"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	adoptionEvents "github.com/Kilat-Pet-Delivery/service-adoption/internal/events"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/database"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/health"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/logger"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/metrics"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/repository"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/repository/memory"
)

const serviceName = "service-adoption"

// storage bundles the persistence ports for one driver.
type storage struct {
	transactor adoptionDomain.Transactor
	pets       petDomain.PetRepository
	requests   adoptionDomain.RequestRepository
	users      userDomain.UserRepository
	favorites  favoriteDomain.Repository
	checks     map[string]health.CheckFunc
	close      func()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-adoption",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
	)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	store, err := openStorage(cfg, hasher, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.close()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTTL)

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	// Transition events go to Kafka when brokers are configured
	var publisher application.TransitionPublisher = application.NopPublisher{}
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = adoptionEvents.NewKafkaTransitionPublisher(kafkaProducer, cfg.KafkaConfig.Topic)
		log.Info("publishing transition events", zap.String("topic", cfg.KafkaConfig.Topic))

		if cfg.KafkaConfig.AuditGroupID != "" {
			auditConsumer := adoptionEvents.NewTransitionConsumer(
				cfg.KafkaConfig.Brokers,
				cfg.KafkaConfig.AuditGroupID,
				cfg.KafkaConfig.Topic,
				adoptionEvents.NewAuditHandler(appMetrics, log),
				log,
			)
			defer func() { _ = auditConsumer.Close() }()

			go func() {
				log.Info("starting transition audit consumer", zap.String("group", cfg.KafkaConfig.AuditGroupID))
				if err := auditConsumer.Start(consumerCtx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("transition audit consumer stopped", zap.Error(err))
				}
			}()
		}
	} else {
		log.Warn("no Kafka brokers configured; transition events are only logged")
	}

	// Initialize application services
	catalogService := application.NewCatalogService(store.pets, appMetrics, log)
	adoptionService := application.NewAdoptionService(store.transactor, store.requests, publisher, appMetrics, log)
	userService := application.NewUserService(store.users, hasher, cfg.PasswordMinLength, log)
	favoriteService := application.NewFavoriteService(store.favorites, store.pets, log)

	// Seed admin account
	if cfg.Admin.Email != "" {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, created, err := userService.EnsureAdmin(seedCtx, cfg.Admin.FullName, cfg.Admin.Email, cfg.Admin.Password)
		seedCancel()
		if err != nil {
			log.Fatal("failed to seed admin account", zap.Error(err))
		}
		log.Info("admin account ready", zap.Bool("created", created))
	}

	// Setup Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Health and metrics
	health.NewHandler(serviceName, store.checks).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(appMetrics.Handler()))

	// Register routes
	handler.NewAuthHandler(userService, jwtManager).RegisterRoutes(&router.RouterGroup)
	handler.NewPetHandler(catalogService).RegisterRoutes(&router.RouterGroup)
	handler.NewAdoptionHandler(adoptionService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewAdminHandler(catalogService, adoptionService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewFavoriteHandler(favoriteService).RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-adoption...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}
	consumerCancel()

	log.Info("service-adoption stopped")
}

func openStorage(cfg *config.ServiceConfig, hasher auth.PasswordHasher, log *zap.Logger) (*storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		store := memory.NewStore()
		log.Warn("using in-memory storage; data is lost on restart")
		return &storage{
			transactor: store,
			pets:       store.Pets(),
			requests:   store.Requests(),
			users:      store.Users(hasher),
			favorites:  store.Favorites(),
			checks:     map[string]health.CheckFunc{},
			close:      func() {},
		}, nil
	}

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		return nil, err
	}

	// Run database migrations
	if cfg.IsDevelopment() {
		if err := repository.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to run auto-migration: %w", err)
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), cfg.MigrationsDir, log); err != nil {
			return nil, err
		}
	}

	return &storage{
		transactor: repository.NewGormTransactor(db),
		pets:       repository.NewGormPetRepository(db),
		requests:   repository.NewGormAdoptionRequestRepository(db),
		users:      repository.NewGormUserRepository(db, hasher),
		favorites:  repository.NewGormFavoriteRepository(db),
		checks:     map[string]health.CheckFunc{"database": pingDatabase(db)},
		close: func() {
			if err := database.Close(db); err != nil {
				log.Error("failed to close database", zap.Error(err))
			}
		},
	}, nil
}

func pingDatabase(db *gorm.DB) health.CheckFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
