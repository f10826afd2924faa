// Copyright (c) 2026 UILove. All rights reserved.

// Command import seeds the catalog database from flat data files.
//
// Usage:
//
//	import --all
//	import --categories --websites
//	import --admin
//
// Every loader is idempotent on slug, so re-running against a partially
// seeded database is safe. Migrations are applied first.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/uilove/uilove/internal/importer"
	"github.com/uilove/uilove/internal/platform/config"
	"github.com/uilove/uilove/internal/platform/migration"
	pgstore "github.com/uilove/uilove/internal/platform/postgres"
)

func main() {
	importAll := flag.Bool("all", false, "import everything")
	importCategories := flag.Bool("categories", false, "import categories")
	importWebsites := flag.Bool("websites", false, "import websites")
	createAdmin := flag.Bool("admin", false, "create the bootstrap admin account")
	categoriesPath := flag.String("categories-file", "./data/categories.json", "path to the categories JSON file")
	websitesPath := flag.String("websites-file", "./data/websites_complete.csv", "path to the websites CSV file")
	flag.Parse()

	if *importAll {
		*importCategories = true
		*importWebsites = true
		*createAdmin = true
	}
	if !*importCategories && !*importWebsites && !*createAdmin {
		flag.Usage()
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", "uilove-import"))

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	loader := importer.New(pool, log)

	if *createAdmin {
		if cfg.AdminPassword == "" {
			log.Error("ADMIN_PASSWORD must be set to create the admin account")
			os.Exit(1)
		}
		must(log, loader.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword), "create admin account")
	}

	// Websites need the category slug→id map for junction wiring, so the
	// category pass always runs first.
	var categoryMap map[string]int64
	if *importCategories || *importWebsites {
		categoryMap, err = loader.ImportCategories(ctx, *categoriesPath)
		must(log, err, "import categories")
	}

	if *importWebsites {
		must(log, loader.ImportWebsites(ctx, *websitesPath, categoryMap), "import websites")
		must(log, loader.RecomputeCounts(ctx), "recompute taxonomy counts")
	}

	log.Info("import_finished")
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("import failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
