package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- World Snapshots
--
-- The full core state is serialized as one JSONB document per snapshot.
-- Labels partition snapshot streams (e.g. "autosave", "manual"); the latest
-- snapshot for a label is the restore point.
CREATE TABLE IF NOT EXISTS world_snapshots (
    snapshot_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    label VARCHAR(100) NOT NULL,
    sim_day INTEGER NOT NULL,
    state JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_world_snapshots_label_created
    ON world_snapshots (label, created_at DESC);

-- Event Archive
--
-- Durable copy of simulation events for external collaborators that poll
-- instead of subscribing. Append-only.
CREATE TABLE IF NOT EXISTS event_archive (
    event_id BIGSERIAL PRIMARY KEY,
    event_type VARCHAR(100) NOT NULL,
    sim_day INTEGER NOT NULL,
    payload JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_event_archive_type_day
    ON event_archive (event_type, sim_day);
`
