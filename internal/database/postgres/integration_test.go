package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/quennell/hearthstead/internal/database/schema"
	"github.com/quennell/hearthstead/internal/domain"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		ctx := context.Background()
		var connStr string
		connStr, terminate = setupContainer(ctx)
		if connStr != "" {
			pool, err := pgxpool.New(ctx, connStr)
			if err == nil {
				if _, err := pool.Exec(ctx, schema.SchemaSQL); err != nil {
					fmt.Printf("WARNING: Failed to apply schema: %v\n", err)
					pool.Close()
				} else {
					testPool = pool
				}
			}
		}
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
}

func sampleSnapshot(day int) domain.WorldSnapshot {
	role := int64(1)
	return domain.WorldSnapshot{
		Day: day,
		Villagers: []domain.Villager{
			{
				ID: 1, Name: "Edda Thatcher", Age: 52, Gender: domain.GenderFemale,
				Role: "farmer", Status: domain.StatusWorking,
				Health: 100, Happiness: 80,
				Skills:             map[string]int64{"farming": 120},
				AssignedBuildingID: &role,
			},
		},
		NextVillagerID: 2,
		Buildings: []domain.Building{
			{ID: 1, TypeKey: "farm", Level: 1, Built: true},
		},
		NextBuildingID: 2,
		Slots: []domain.JobSlot{
			{ID: 1, BuildingID: 1, JobKey: "farmer", OccupantID: &role},
		},
		NextSlotID: 2,
		Stock:      map[domain.Resource]float64{domain.ResourceFood: 42.5},
	}
}

func TestSnapshotRepository_SaveAndGet(t *testing.T) {
	requireDB(t)
	repo := NewSnapshotRepository(testPool)
	ctx := context.Background()

	rec, err := repo.SaveSnapshot(ctx, "test-save", sampleSnapshot(7))
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	assert.Equal(t, 7, rec.Day)

	got, err := repo.GetSnapshot(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, 7, got.State.Day)
	require.Len(t, got.State.Villagers, 1)
	assert.Equal(t, "Edda Thatcher", got.State.Villagers[0].Name)
	assert.Equal(t, int64(120), got.State.Villagers[0].Skills["farming"])
	assert.InDelta(t, 42.5, got.State.Stock[domain.ResourceFood], 1e-9)
}

func TestSnapshotRepository_GetLatest(t *testing.T) {
	requireDB(t)
	repo := NewSnapshotRepository(testPool)
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		_, err := repo.SaveSnapshot(ctx, "test-latest", sampleSnapshot(day))
		require.NoError(t, err)
	}

	latest, err := repo.GetLatestSnapshot(ctx, "test-latest")
	require.NoError(t, err)
	assert.Equal(t, 3, latest.Day)
}

func TestSnapshotRepository_NotFound(t *testing.T) {
	requireDB(t)
	repo := NewSnapshotRepository(testPool)
	ctx := context.Background()

	_, err := repo.GetLatestSnapshot(ctx, "no-such-label")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	_, err = repo.GetSnapshot(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestSnapshotRepository_ListAndPrune(t *testing.T) {
	requireDB(t)
	repo := NewSnapshotRepository(testPool)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		_, err := repo.SaveSnapshot(ctx, "test-prune", sampleSnapshot(day))
		require.NoError(t, err)
	}

	list, err := repo.ListSnapshots(ctx, "test-prune", 10)
	require.NoError(t, err)
	assert.Len(t, list, 5)
	assert.Equal(t, 5, list[0].Day, "newest first")

	removed, err := repo.PruneSnapshots(ctx, "test-prune", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	list, err = repo.ListSnapshots(ctx, "test-prune", 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 5, list[0].Day)
}

func TestEventArchiveRepository_AppendAndQuery(t *testing.T) {
	requireDB(t)
	repo := NewEventArchiveRepository(testPool)
	ctx := context.Background()

	require.NoError(t, repo.AppendEvent(ctx, domain.EventTypeVillagerBorn, 900, map[string]any{
		"villager_id": 9, "name": "Orin Mason",
	}))
	require.NoError(t, repo.AppendEvent(ctx, domain.EventTypeDayAdvanced, 900, map[string]any{
		"day": 900, "population": 12,
	}))

	events, err := repo.EventsForDay(ctx, 900)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTypeVillagerBorn, events[0].Type)
	assert.Equal(t, domain.EventTypeDayAdvanced, events[1].Type)
}
