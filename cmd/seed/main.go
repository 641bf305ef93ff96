package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"portfolio/internal/config"
	"portfolio/internal/domain/models/content"
	"portfolio/internal/repository"
	"portfolio/internal/repository/postgres"
	"portfolio/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	force := flag.Bool("force", false, "Overwrite an existing document with the default content")
	printOnly := flag.Bool("print", false, "Write the default content JSON to stdout and exit")
	schemaOnly := flag.Bool("schema-only", false, "Only create the content tables (postgres, sqlite)")
	dropTables := flag.Bool("drop-tables", false, "Drop the content tables before seeding (postgres)")
	flag.Parse()

	if *printOnly {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(content.Default()); err != nil {
			log.Fatalf("Failed to encode default content: %v", err)
		}
		return
	}

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.IsProduction() && *dropTables {
		log.Fatalf("BLOCKED: -drop-tables is not allowed in the production environment")
	}

	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()

	ctx := context.Background()

	if *dropTables {
		if cfg.ContentStore != config.StorePostgres {
			log.Fatalf("-drop-tables requires CONTENT_STORE=postgres (got %q)", cfg.ContentStore)
		}
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			pool.Close()
			log.Fatalf("Failed to drop tables: %v", err)
		}
		pool.Close()
		logger.Warn("content tables dropped", "prefix", cfg.TablePrefix)
	}

	// Opening a database store creates its tables
	repo, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open content store: %v", err)
	}
	defer repo.Close()

	if *schemaOnly {
		switch cfg.ContentStore {
		case config.StorePostgres, config.StoreSQLite:
			logger.Info("schema ready", "store", cfg.ContentStore)
		default:
			logger.Info("store has no schema", "store", cfg.ContentStore)
		}
		return
	}

	result, err := seed.NewContentSeeder(repo, logger).Seed(ctx, *force)
	if err != nil {
		log.Fatalf("Failed to seed content: %v", err)
	}

	if result.Written {
		log.Printf("Seeded default content (version %s)", result.Version)
	} else {
		log.Printf("Content already present (version %s); use -force to overwrite", result.Version)
	}
}
