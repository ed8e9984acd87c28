// Command headless runs the simulation for a fixed number of days without a
// database or HTTP server and prints the final summary as JSON. Useful for
// balance tuning and soak-testing tick throughput.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/quennell/hearthstead/internal/bootstrap"
	"github.com/quennell/hearthstead/internal/config"
)

func main() {
	days := flag.Int("days", 360, "number of simulated days to run")
	seed := flag.Int64("seed", 1, "simulation seed, 0 for time-seeded")
	verbose := flag.Bool("v", false, "log each day's report")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := &config.Config{
		SimSeed:        *seed,
		DeadLetterPath: os.TempDir() + "/hearthstead_dead_letter.jsonl",
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system setup failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	comps, err := bootstrap.BuildWorld(cfg, bus, publisher)
	if err != nil {
		slog.Error("World assembly failed", "error", err)
		os.Exit(1)
	}
	if err := bootstrap.SeedWorld(ctx, comps); err != nil {
		slog.Error("World seeding failed", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	for i := 0; i < *days; i++ {
		comps.World.AdvanceDay(ctx)
	}
	elapsed := time.Since(start)

	summary := comps.World.Summary()
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal summary", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	fmt.Fprintf(os.Stderr, "simulated %d days in %s (%.0f days/sec)\n",
		*days, elapsed.Round(time.Millisecond), float64(*days)/elapsed.Seconds())
}
