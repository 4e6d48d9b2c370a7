package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"qcm-extractor/internal/app"
	"qcm-extractor/internal/config"
	"qcm-extractor/internal/infra/jsonout"
	"qcm-extractor/internal/infra/postgres"
	"qcm-extractor/internal/infra/redis"
)

// NewPublishCmd pushes the generated question set to Postgres (and Redis when
// configured) so the serving side can load it without re-running extraction.
func NewPublishCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Publish the generated question set to the serving stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}

			if err := runMigrationsWithConfig(ctx, cfg); err != nil {
				return err
			}

			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer pool.Close()
			store := postgres.NewSetStore(pool)

			var cache app.SetCache
			if cfg.Redis.Addr != "" {
				client := goredis.NewClient(&goredis.Options{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				defer client.Close()
				cache = redis.NewSetCache(client, config.TTLDuration(cfg.Redis.TTL, 24*time.Hour))
			}

			publisher := app.NewPublisher(store, cache)
			set, err := publisher.PublishFile(ctx, jsonout.QuestionsPath(cfg.Output.DataDir))
			if err != nil {
				return err
			}
			log.Printf("published set %s (%d questions)", set.ID, len(set.Questions))
			return nil
		},
	}
}
