package main

// Run database migrations:
//   go run ./cmd/migrate          # apply all pending migrations
//   go run ./cmd/migrate down     # roll back the latest migration
//   go run ./cmd/migrate version  # print the current version

import (
	"context"
	"fmt"
	"os"

	"productfinder-backend/internal/shared/config"
	"productfinder-backend/internal/shared/storage/db"
	"productfinder-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	action := "up"
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch action {
	case "up":
		err = db.RunMigrations(ctx, sqlDB)
	case "down":
		err = db.RollbackMigration(ctx, sqlDB)
	case "version":
		var version int64
		version, err = db.MigrationVersion(ctx, sqlDB)
		if err == nil {
			fmt.Println(version)
		}
	default:
		err = fmt.Errorf("unknown action %q (want up, down or version)", action)
	}
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"action": action, "error": err.Error()})
		sqlDB.Close()
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"action": action})
}
