// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/chrisemayers/pos-backoffice/config"
	"github.com/chrisemayers/pos-backoffice/internal/application/adapter"
	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/reports"
	"github.com/chrisemayers/pos-backoffice/internal/infra/server/router"
	"github.com/chrisemayers/pos-backoffice/internal/integration/adapters"
	"github.com/chrisemayers/pos-backoffice/internal/integration/cache"
	"github.com/chrisemayers/pos-backoffice/internal/integration/entrypoint/controller"
	"github.com/chrisemayers/pos-backoffice/internal/integration/entrypoint/middleware"
	"github.com/chrisemayers/pos-backoffice/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	TokenService adapter.TokenService
	Products     *persistence.ProductRepository
}

// Options tune the injector for non-production wiring. A nil Redis client
// disables the product-name cache; a non-nil Clock replaces time.Now for
// the report endpoints.
type Options struct {
	Redis *redis.Client
	Clock func() time.Time
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	location, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		location = time.UTC
	}

	// Create repositories
	recordRepo := persistence.NewRecordRepository(db)
	productRepo := persistence.NewProductRepository(db)

	var catalog reports.ProductCatalog = productRepo
	if opts.Redis != nil {
		catalog = cache.NewCachedProductCatalog(productRepo, opts.Redis, cfg.Analytics.NameCacheTTL)
	}

	settings := reports.Settings{
		Currency: cfg.Analytics.DefaultCurrency,
		Location: location,
		TopN:     cfg.Analytics.TopProducts,
	}

	// Create use cases
	getSalesSummaryUseCase := reports.NewGetSalesSummaryUseCase(recordRepo, catalog, settings)
	getReturnsSummaryUseCase := reports.NewGetReturnsSummaryUseCase(recordRepo, settings)
	comparePeriodsUseCase := reports.NewComparePeriodsUseCase(recordRepo, catalog, settings)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	reportsController := controller.NewReportsController(
		getSalesSummaryUseCase,
		getReturnsSummaryUseCase,
		comparePeriodsUseCase,
		location,
	)
	if opts.Clock != nil {
		reportsController.SetClock(opts.Clock)
	}

	// Create middleware
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	reportsRateLimiter := middleware.NewRateLimiterWithConfig(60, time.Minute)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       router.NewRouter(healthController, reportsController, reportsRateLimiter, authMiddleware),
		TokenService: tokenService,
		Products:     productRepo,
	}
}
