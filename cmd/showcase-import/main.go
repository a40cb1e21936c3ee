// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command showcase-import copies content from the legacy MySQL site
// database into the local SQLite store. Keyed data is upserted; list
// tables are only filled when empty, so the command is safe to rerun.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/olegiv/showcase-go/internal/importer"
	"github.com/olegiv/showcase-go/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var (
		host     = flag.String("mysql-host", envOrDefault("LEGACY_MYSQL_HOST", "localhost"), "legacy MySQL host")
		port     = flag.String("mysql-port", envOrDefault("LEGACY_MYSQL_PORT", "3306"), "legacy MySQL port")
		user     = flag.String("mysql-user", os.Getenv("LEGACY_MYSQL_USER"), "legacy MySQL user")
		password = flag.String("mysql-password", os.Getenv("LEGACY_MYSQL_PASSWORD"), "legacy MySQL password")
		database = flag.String("mysql-db", os.Getenv("LEGACY_MYSQL_DB"), "legacy MySQL database name")
		prefix   = flag.String("table-prefix", os.Getenv("LEGACY_TABLE_PREFIX"), "legacy table prefix, if any")

		dbPath       = flag.String("db", envOrDefault("SHOWCASE_DB_PATH", "./data/showcase.db"), "target SQLite database path")
		skipMessages = flag.Bool("skip-messages", false, "do not import the contact-message inbox")
		dryRun       = flag.Bool("dry-run", false, "read the legacy database and report counts without writing")
	)
	flag.Parse()

	if *user == "" || *database == "" {
		flag.Usage()
		return fmt.Errorf("mysql-user and mysql-db are required")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	dsn := importer.BuildDSN(*user, *password, *host, *port, *database)
	reader, err := importer.NewReader(dsn, *prefix)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	if count, err := reader.GetSectionCount(); err != nil {
		return fmt.Errorf("verifying legacy schema: %w", err)
	} else {
		slog.Info("connected to legacy database", "sections", count)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := store.NewDB(*dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return err
	}

	imp := importer.New(reader, db, slog.Default())
	result, err := imp.Run(context.Background(), importer.Options{
		SkipMessages: *skipMessages,
		DryRun:       *dryRun,
	})
	if err != nil {
		return err
	}

	printSummary(result, *dryRun)
	return nil
}

func printSummary(result *importer.Result, dryRun bool) {
	if dryRun {
		fmt.Println("Dry run; nothing was written.")
	}
	fmt.Printf("Sections:     %d\n", result.Sections)
	fmt.Printf("Hero slides:  %d\n", result.HeroSlides)

	tables := make([]string, 0, len(result.Items))
	for table := range result.Items {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	for _, table := range tables {
		fmt.Printf("%-13s %d\n", table+":", result.Items[table])
	}

	fmt.Printf("Map points:   %d\n", result.MapPoints)
	fmt.Printf("Contact info: %d\n", result.ContactInfo)
	fmt.Printf("Messages:     %d\n", result.Messages)
	if result.Skipped > 0 {
		fmt.Printf("Skipped:      %d (already populated or unrecognized)\n", result.Skipped)
	}
	for _, e := range result.Errors {
		fmt.Printf("Error: %s\n", e)
	}
}
