package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gdps-backend/core/cache"
	"gdps-backend/core/config"
	"gdps-backend/core/database"
	"gdps-backend/core/loader"
	"gdps-backend/core/logger"
	"gdps-backend/core/middleware/rayid"
	"gdps-backend/core/pubsub"
	redisdb "gdps-backend/core/redis"
	"gdps-backend/core/search"
	"gdps-backend/core/storage"

	"gdps-backend/feature/comment"
	"gdps-backend/feature/leaderboard"
	"gdps-backend/feature/level"
	"gdps-backend/feature/level/models"
	"gdps-backend/feature/like"
	"gdps-backend/feature/relationship"
	"gdps-backend/feature/user"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GDPS backend server",
	Long: `Starts the backend: connects to MySQL, Meilisearch and Redis, runs the
pubsub subscriber loop and serves the HTTP surface.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to MySQL. The relational store is the source of truth,
		// so unlike the other collaborators this connection is mandatory.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.VerifyTables(db,
			"levels", "users", "user_likes", "user_relationships", "user_comments",
		); err != nil {
			logg.Fatal("Database schema check failed", zap.Error(err))
		}
		logg.Info("Connected to MySQL")

		// 4. Connect to Redis (invalidation bus, leaderboards, shared caches).
		rdb, err := redisdb.Connect(cfg.Redis)
		if err != nil {
			logg.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		logg.Info("Connected to Redis")

		// 5. Search index client.
		meili := search.NewClient(cfg.Search)

		// 6. Object storage for raw level data.
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 7. Repositories and services.
		levelRepo := level.NewRepository(db, meili.Index("levels"), logg)
		userRepo := user.NewRepository(db, meili.Index("users"), logg)
		likeRepo := like.NewRepository(db)
		relationshipRepo := relationship.NewRepository(db)
		commentRepo := comment.NewRepository(db)

		publisher := pubsub.NewPublisher(rdb, logg)

		levelCache := cache.New[models.Level](cfg.Cache, rdb, "levels", models.Level.Clone)
		levelSvc := level.NewService(levelRepo, levelCache, likeRepo, store, cfg.Storage.Bucket, publisher, logg)

		userCache := cache.New[user.User](cfg.Cache, rdb, "users", user.User.Clone)
		userSvc := user.NewService(userRepo, userCache, commentRepo, relationshipRepo, publisher, logg)

		boards := leaderboard.NewService(rdb, userRepo, logg)

		// 8. Invalidation bus: per-process subscriber loop dispatching the
		// cluster-wide repair triggers.
		router := pubsub.NewRouter(logg)
		router.Register(pubsub.PingTopic, func(ctx context.Context, payload []byte) error {
			logg.Debug("Received a ping", zap.ByteString("data", payload))
			return nil
		})
		router.Register(level.SyncTopic, func(ctx context.Context, _ []byte) error {
			return levelRepo.ResyncSearchIndex(ctx)
		})
		router.Register(user.SyncTopic, func(ctx context.Context, _ []byte) error {
			return userRepo.ResyncSearchIndex(ctx)
		})
		router.Register(leaderboard.SyncStarsTopic, func(ctx context.Context, _ []byte) error {
			return boards.SyncStars(ctx)
		})
		router.Register(leaderboard.SyncCreatorsTopic, func(ctx context.Context, _ []byte) error {
			return boards.SyncCreators(ctx)
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			if err := router.Listen(ctx, rdb); err != nil {
				logg.Error("Pubsub subscriber loop exited", zap.Error(err))
			}
		}()

		// 9. HTTP surface.
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})
		app.Use(rayid.New())
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		mgr := loader.NewManager()
		mgr.Register(level.NewFeature(levelSvc, cfg.Server.ApiKey))
		mgr.Register(user.NewFeature(userSvc, cfg.Server.ApiKey))
		mgr.Register(leaderboard.NewFeature(boards, cfg.Server.ApiKey))
		if err := mgr.LoadAll(app, logg); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Server listening", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server stopped", zap.Error(err))
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
