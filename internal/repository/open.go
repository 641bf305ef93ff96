package repository

import (
	"context"
	"fmt"
	"log/slog"

	"portfolio/internal/config"
	"portfolio/internal/domain/repositories"
	"portfolio/internal/repository/file"
	"portfolio/internal/repository/postgres"
	"portfolio/internal/repository/s3store"
	"portfolio/internal/repository/sqlite"
)

// Open returns the content store selected by cfg.ContentStore.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.ContentRepository, error) {
	logger = logger.With("store", cfg.ContentStore)

	switch cfg.ContentStore {
	case config.StoreFile, "":
		logger.Info("using file content store", "path", cfg.ContentFile)
		return file.NewContentRepository(cfg.ContentFile, logger), nil

	case config.StorePostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("using postgres content store", "table", tables.Documents)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		return postgres.NewContentRepository(repoConfig, postgres.NewTransactionManager(pool, logger)), nil

	case config.StoreSQLite:
		logger.Info("using sqlite content store", "path", cfg.SQLitePath)
		return sqlite.Open(ctx, cfg.SQLitePath, logger)

	case config.StoreS3:
		client, err := s3store.NewClient(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		logger.Info("using s3 content store", "bucket", cfg.S3.Bucket, "key", cfg.S3.Key)
		return s3store.NewContentRepository(client, cfg.S3.Bucket, cfg.S3.Key, logger)

	default:
		return nil, fmt.Errorf("unknown CONTENT_STORE %q (want file, postgres, sqlite or s3)", cfg.ContentStore)
	}
}
