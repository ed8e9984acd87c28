// Command seed provisions the database and writes a founding-settlement
// snapshot. Run it once against a fresh environment; cmd/app then restores
// the snapshot on boot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/quennell/hearthstead/internal/bootstrap"
	"github.com/quennell/hearthstead/internal/config"
	"github.com/quennell/hearthstead/internal/database"
	"github.com/quennell/hearthstead/internal/database/postgres"
	"github.com/quennell/hearthstead/internal/worker"
)

func main() {
	label := flag.String("label", worker.AutosaveLabel, "snapshot label to write")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	ctx := context.Background()

	// Connect to the default database first so a missing target database can
	// be created.
	adminConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, adminConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}

	var exists bool
	if err := conn.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists); err != nil {
		log.Fatalf("Failed to check if database exists: %v", err)
	}
	if !exists {
		fmt.Printf("Creating database %s...\n", cfg.DBName)
		if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", cfg.DBName)); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
	} else {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
	}
	conn.Close(ctx)

	pool, err := database.NewPool(cfg.GetDBConnString(), 2, 0, 0)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer pool.Close()

	if err := database.ApplySchema(ctx, pool); err != nil {
		log.Fatalf("Schema setup failed: %v", err)
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		log.Fatalf("Event system setup failed: %v", err)
	}

	comps, err := bootstrap.BuildWorld(cfg, bus, publisher)
	if err != nil {
		log.Fatalf("World assembly failed: %v", err)
	}
	if err := bootstrap.SeedWorld(ctx, comps); err != nil {
		log.Fatalf("World seeding failed: %v", err)
	}

	snapshots := postgres.NewSnapshotRepository(pool)
	rec, err := snapshots.SaveSnapshot(ctx, *label, comps.World.Snapshot())
	if err != nil {
		log.Fatalf("Snapshot save failed: %v", err)
	}
	fmt.Printf("Founding settlement saved: label=%s id=%s day=%d\n", rec.Label, rec.ID, rec.Day)

	if err := publisher.Shutdown(ctx); err != nil {
		log.Printf("Publisher shutdown: %v", err)
	}
}
