package sim_bench

import (
	"context"
	"testing"

	"github.com/quennell/hearthstead/internal/bootstrap"
	"github.com/quennell/hearthstead/internal/config"
	"github.com/quennell/hearthstead/internal/event"
)

// newBenchWorld assembles a seeded world without a publisher dead-letter
// path on disk; events go through the in-memory bus only.
func newBenchWorld(b *testing.B) bootstrap.WorldComponents {
	b.Helper()

	cfg := &config.Config{
		SimSeed:        42,
		DeadLetterPath: b.TempDir() + "/dead_letter.jsonl",
	}

	bus := event.NewMemoryBus()
	publisher := event.NewResilientPublisher(bus, event.ResilientConfig{
		DeadLetterPath: cfg.DeadLetterPath,
	})

	comps, err := bootstrap.BuildWorld(cfg, bus, publisher)
	if err != nil {
		b.Fatalf("world assembly failed: %v", err)
	}
	if err := bootstrap.SeedWorld(context.Background(), comps); err != nil {
		b.Fatalf("seeding failed: %v", err)
	}
	return comps
}

// BenchmarkAdvanceDay measures raw tick throughput on a founding-size
// settlement. Population drifts as days pass, which is representative of a
// real run rather than a fixed workload.
func BenchmarkAdvanceDay(b *testing.B) {
	comps := newBenchWorld(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		comps.World.AdvanceDay(ctx)
	}
}

// BenchmarkSnapshot measures full-state serialization cost after a year of
// simulated drift.
func BenchmarkSnapshot(b *testing.B) {
	comps := newBenchWorld(b)
	ctx := context.Background()
	for i := 0; i < 360; i++ {
		comps.World.AdvanceDay(ctx)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = comps.World.Snapshot()
	}
}

// BenchmarkSummary measures the read-only aggregation served to overlays.
func BenchmarkSummary(b *testing.B) {
	comps := newBenchWorld(b)
	ctx := context.Background()
	for i := 0; i < 90; i++ {
		comps.World.AdvanceDay(ctx)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = comps.World.Summary()
	}
}
