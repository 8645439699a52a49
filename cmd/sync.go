package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"gdps-backend/core/config"
	"gdps-backend/core/logger"
	"gdps-backend/core/pubsub"
	redisdb "gdps-backend/core/redis"
	"gdps-backend/feature/leaderboard"
	"gdps-backend/feature/level"
	"gdps-backend/feature/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Topics addressable from the command line. Every running instance picks the
// message up and performs the rebuild itself, so the CLI only publishes.
var syncTargets = map[string]string{
	"levels":   level.SyncTopic,
	"users":    user.SyncTopic,
	"stars":    leaderboard.SyncStarsTopic,
	"creators": leaderboard.SyncCreatorsTopic,
}

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [levels|users|stars|creators]",
	Short: "Trigger a cluster-wide resynchronisation",
	Long: `Publishes a resync message on the invalidation bus. Every running server
instance receives it and rebuilds the named search index or leaderboard from
the relational store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, ok := syncTargets[args[0]]
		if !ok {
			return fmt.Errorf("unknown sync target %q", args[0])
		}

		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: "info", Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		rdb, err := redisdb.Connect(cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		publisher := pubsub.NewPublisher(rdb, logg)
		if err := publisher.Publish(ctx, topic, nil); err != nil {
			return err
		}

		logg.Info("Resync triggered", zap.String("topic", topic))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
