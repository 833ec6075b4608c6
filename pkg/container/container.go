package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"socialfeed-backend/internal/config"
	infraCache "socialfeed-backend/internal/infrastructure/cache"
	"socialfeed-backend/internal/infrastructure/database"
	"socialfeed-backend/internal/infrastructure/events"
	"socialfeed-backend/internal/shared/middleware"
	"socialfeed-backend/pkg/cache"
	"socialfeed-backend/pkg/jwt"

	"socialfeed-backend/internal/domains/account"
	accountHandler "socialfeed-backend/internal/domains/account/handler"
	accountRepo "socialfeed-backend/internal/domains/account/repository"
	accountService "socialfeed-backend/internal/domains/account/service"

	"socialfeed-backend/internal/domains/auth"
	authHandler "socialfeed-backend/internal/domains/auth/handler"
	authService "socialfeed-backend/internal/domains/auth/service"

	"socialfeed-backend/internal/domains/feed"
	feedHandler "socialfeed-backend/internal/domains/feed/handler"
	feedRepo "socialfeed-backend/internal/domains/feed/repository"
	feedService "socialfeed-backend/internal/domains/feed/service"

	"socialfeed-backend/internal/domains/follow"
	followHandler "socialfeed-backend/internal/domains/follow/handler"
	followRepo "socialfeed-backend/internal/domains/follow/repository"
	followService "socialfeed-backend/internal/domains/follow/service"

	"socialfeed-backend/internal/domains/post"
	postHandler "socialfeed-backend/internal/domains/post/handler"
	postRepo "socialfeed-backend/internal/domains/post/repository"
	postService "socialfeed-backend/internal/domains/post/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application, build một lần lúc start
type Container struct {
	// INFRASTRUCTURE
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Publisher   events.Publisher
	Metrics     *middleware.Metrics
	RateLimiter *middleware.RateLimiter

	// REPOSITORIES
	AccountRepo account.Repository
	PostRepo    post.Repository
	FollowRepo  follow.Repository
	FeedRepo    feed.Repository

	// SERVICES
	AccountService account.Service
	AuthService    auth.Service
	PostService    post.Service
	FollowService  follow.Service
	FeedService    feed.Service

	// HANDLERS
	AccountHandler *accountHandler.AccountHandler
	AuthHandler    *authHandler.AuthHandler
	PostHandler    *postHandler.PostHandler
	FollowHandler  *followHandler.FollowHandler
	FeedHandler    *feedHandler.FeedHandler

	stopCleanup chan struct{}
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer build dependency graph theo thứ tự:
// config → database (+ migrations) → cache → JWT → publisher → repositories → services → handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("[CONTAINER] Initializing")

	c := &Container{stopCleanup: make(chan struct{})}

	// ----------------------------------------
	// STEP 1: CONFIGURATION
	// ----------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("[CONTAINER] Config loaded")

	// ----------------------------------------
	// STEP 2: DATABASE
	// ----------------------------------------
	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	// ----------------------------------------
	// STEP 3: CACHE
	// ----------------------------------------
	c.initCache()

	// ----------------------------------------
	// STEP 4: AUTH, EVENTS, HTTP INFRA
	// ----------------------------------------
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	c.initPublisher()

	c.Metrics = middleware.NewMetrics("socialfeed")
	c.RateLimiter = middleware.NewRateLimiter(float64(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	c.RateLimiter.StartCleanup(10*time.Minute, c.stopCleanup)

	// ----------------------------------------
	// STEP 5: DOMAIN LAYERS
	// ----------------------------------------
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("[CONTAINER] Initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	db := database.NewPostgresDB(c.Config.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if c.Config.Database.AutoMigrate {
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	return nil
}

// initCache: Redis không critical, lỗi kết nối thì fallback sang in-memory cache
func (c *Container) initCache() {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[CONTAINER] Redis unavailable, using in-memory cache")
		_ = redisCache.Close()
		c.Cache = cache.NewMemory()
		return
	}
	c.Cache = redisCache
}

func (c *Container) initPublisher() {
	if !c.Config.Kafka.Enabled() {
		log.Info().Msg("[CONTAINER] KAFKA_BROKERS empty, activity events disabled")
		c.Publisher = events.Noop{}
		return
	}

	c.Publisher = events.NewKafkaPublisher(events.KafkaConfig{
		Brokers:      c.Config.Kafka.Brokers,
		Topic:        c.Config.Kafka.Topic,
		WriteTimeout: c.Config.Kafka.WriteTimeout,
	})
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	// Account lookups đi qua cache: auth middleware gọi FindByID ở mọi request
	c.AccountRepo = accountRepo.NewCachedRepository(
		accountRepo.NewPostgresRepository(pool),
		c.Cache,
		c.Config.Redis.CacheTTL,
	)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
	c.FollowRepo = followRepo.NewPostgresRepository(pool)
	c.FeedRepo = feedRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.AccountService = accountService.NewAccountService(c.AccountRepo, c.Publisher)
	c.AuthService = authService.NewAuthService(c.AccountRepo, c.JWTManager)
	c.PostService = postService.NewPostService(c.PostRepo, c.Publisher)
	c.FollowService = followService.NewFollowService(c.FollowRepo, c.Publisher)
	c.FeedService = feedService.NewFeedService(c.FeedRepo)
}

func (c *Container) initHandlers() {
	pageSize := c.Config.Pagination.PageSize

	c.AccountHandler = accountHandler.NewAccountHandler(c.AccountService, pageSize)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService, pageSize)
	c.FollowHandler = followHandler.NewFollowHandler(c.FollowService, pageSize)
	c.FeedHandler = feedHandler.NewFeedHandler(c.FeedService, pageSize)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up resources")

	close(c.stopCleanup)

	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close event publisher")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close Redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close database")
		}
	}

	log.Info().Msg("[CONTAINER] Cleanup completed")
}
