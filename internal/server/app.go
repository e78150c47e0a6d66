package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipemanager/backend/config"
	"github.com/pageza/recipemanager/backend/internal/api"
	"github.com/pageza/recipemanager/backend/internal/database"
	"github.com/pageza/recipemanager/backend/internal/log"
	"github.com/pageza/recipemanager/backend/internal/middleware"
	"github.com/pageza/recipemanager/backend/internal/search"
	"github.com/pageza/recipemanager/backend/internal/service"
	"github.com/pageza/recipemanager/backend/internal/store"
)

// DriverMemory keeps recipes in process memory
const DriverMemory = "memory"

// App wires the configured store, services and optional Redis limiter
type App struct {
	Store   store.RecipeStore
	Recipes *service.RecipeService
	Auth    *service.AuthService
	Limiter *middleware.RateLimiter

	db    *gorm.DB
	redis *redis.Client
}

// NewApp opens the backing store named by cfg.DBDriver and builds the services
// on top of it. SQL stores are migrated before use.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	pages, err := PageDefaults(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{}
	if err := app.openStore(cfg); err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Warn(ctx, "rate limiting disabled", "error", err)
		} else if client != nil {
			app.redis = client
			app.Limiter = middleware.NewRecipeWriteRateLimiter(client, cfg.RateLimit, cfg.RateLimitWindow)
		}
	}

	app.Recipes = service.NewRecipeService(app.Store, pages)
	app.Auth = service.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.JWTExpiry)
	return app, nil
}

func (a *App) openStore(cfg *config.Config) error {
	if cfg.DBDriver == DriverMemory {
		a.Store = store.NewMemoryStore()
		return nil
	}

	db, err := database.Open(database.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return err
	}
	a.db = db
	a.Store = store.NewGormStore(db)
	return nil
}

// DB is the SQL handle, nil for the memory driver
func (a *App) DB() *gorm.DB {
	return a.db
}

// Deps adapts the app to the handler layer
func (a *App) Deps() api.Deps {
	return api.Deps{
		Recipes: a.Recipes,
		Auth:    a.Auth,
		Limiter: a.Limiter,
		Health:  a.health,
	}
}

func (a *App) health(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return database.HealthCheck(ctx, a.db)
}

// Close releases the database and Redis connections
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, database.Close(a.db))
	}
	return errors.Join(errs...)
}

// PageDefaults derives the listing defaults from cfg
func PageDefaults(cfg *config.Config) (search.PageDefaults, error) {
	sort, ok := search.ParseSortField(cfg.DefaultSort)
	if !ok {
		return search.PageDefaults{}, fmt.Errorf("unknown default sort field %q", cfg.DefaultSort)
	}
	return search.PageDefaults{
		Size:      cfg.PageSize,
		MaxSize:   cfg.MaxPageSize,
		Sort:      sort,
		Direction: search.ParseDirection(cfg.DefaultDirection),
	}, nil
}
