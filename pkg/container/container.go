package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"magazine-backend/internal/config"
	infraCache "magazine-backend/internal/infrastructure/cache"
	"magazine-backend/internal/infrastructure/database"
	"magazine-backend/internal/infrastructure/storage"
	"magazine-backend/internal/shared/crud"
	"magazine-backend/pkg/cache"

	authorHandler "magazine-backend/internal/domains/author/handler"
	authorModel "magazine-backend/internal/domains/author/model"
	authorRepo "magazine-backend/internal/domains/author/repository"

	magazineHandler "magazine-backend/internal/domains/magazine/handler"
	magazineModel "magazine-backend/internal/domains/magazine/model"
	magazineRepo "magazine-backend/internal/domains/magazine/repository"
	magazineService "magazine-backend/internal/domains/magazine/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	DB     *database.DB       // Storage Gateway
	Cache  cache.Cache        // Redis hoặc no-op
	Assets storage.AssetStore // local dir hoặc MinIO

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	AuthorRepo   authorRepo.RepositoryInterface
	MagazineRepo magazineRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	// List cache quanh repository, cùng contract crud.Repository
	AuthorService   *crud.Service[authorModel.Author]
	MagazineService *crud.Service[magazineModel.Magazine]
	UploadService   *magazineService.UploadService

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	AuthorHandler   *authorHandler.AuthorHandler
	MagazineHandler *magazineHandler.MagazineHandler
	UploadHandler   *magazineHandler.UploadHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer load config từ environment rồi build dependency graph
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("env", cfg.App.Environment).Msg("✅ Config loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return Build(ctx, cfg)
}

// Build wires an already loaded config.
//
// Thứ tự initialization:
// 1. Infrastructure (DB, Cache, Assets)
// 2. Repositories
// 3. Services
// 4. Handlers
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INITIALIZE DATABASE
	// ========================================
	log.Info().Str("driver", cfg.Database.Driver).Msg("🗄️  Opening database...")

	db, err := database.Open(ctx, cfg.LoadDatabaseConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 2: INITIALIZE CACHE
	// ========================================
	c.Cache = c.initCache(ctx)

	// ========================================
	// STEP 3: INITIALIZE ASSET STORE
	// ========================================
	if err := c.initAssets(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init asset store: %w", err)
	}

	// ========================================
	// STEP 4: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("✅ DI Container initialized successfully")
	return c, nil
}

// Redis failure không critical: fall back về no-op cache
func (c *Container) initCache(ctx context.Context) cache.Cache {
	if !c.Config.Cache.Enabled {
		log.Info().Msg("⚪ List cache disabled")
		return cache.NewNoop()
	}

	log.Info().Str("host", c.Config.Redis.Host).Msg("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	rc := redisCache.(*infraCache.RedisCache)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), list cache disabled")
		_ = rc.Close()
		return cache.NewNoop()
	}

	log.Info().Dur("ttl", c.Config.Cache.TTL).Msg("✅ Redis connected")
	return redisCache
}

func (c *Container) initAssets(ctx context.Context) error {
	switch c.Config.Storage.Backend {
	case config.StorageMinIO:
		store, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
		if err != nil {
			return err
		}
		c.Assets = store
	default:
		store, err := storage.NewLocalStorage(c.Config.Storage.AssetDir, c.Config.Storage.AssetURLPrefix)
		if err != nil {
			return err
		}
		c.Assets = store
	}

	log.Info().Str("backend", c.Config.Storage.Backend).Msg("✅ Asset store ready")
	return nil
}

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewRepository(c.DB)
	c.MagazineRepo = magazineRepo.NewRepository(c.DB)
}

func (c *Container) initServices() {
	ttl := c.Config.Cache.TTL

	c.AuthorService = crud.NewService[authorModel.Author]("authors", c.AuthorRepo, c.Cache, ttl)
	c.MagazineService = crud.NewService[magazineModel.Magazine]("magazines", c.MagazineRepo, c.Cache, ttl)

	// Upload ghi qua MagazineService để list cache được invalidate
	c.UploadService = magazineService.NewUploadService(c.MagazineService, c.Assets, c.Config.Storage.UploadTempDir)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.MagazineHandler = magazineHandler.NewMagazineHandler(c.MagazineService)
	c.UploadHandler = magazineHandler.NewUploadHandler(c.UploadService)
}

// LocalAssetDir returns the directory to serve statically, or "" when
// uploads go to MinIO.
func (c *Container) LocalAssetDir() string {
	if local, ok := c.Assets.(*storage.LocalStorage); ok {
		return local.Dir()
	}
	return ""
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close database")
		} else {
			log.Info().Msg("✅ Database connection closed")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		} else {
			log.Info().Msg("✅ Redis connections closed")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
