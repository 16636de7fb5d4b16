package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	migrations := []string{
		createEnumTypes,
		createFoundationsTable,
		createApplicationsTable,
		createFollowUpsTable,
		createSeedStateTable,
	}

	for i, migration := range migrations {
		logger.Debug("running migration", "step", i+1, "total", len(migrations))
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	logger.Info("all migrations completed")
	return nil
}

const createEnumTypes = `
-- Create ENUM types if they don't exist
DO $$
BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'foundation_status_t') THEN
    CREATE TYPE foundation_status_t AS ENUM ('research', 'drafting', 'submitted', 'approved', 'rejected', 'not_pursuing');
  END IF;
END$$;

DO $$
BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'application_status_t') THEN
    CREATE TYPE application_status_t AS ENUM ('draft', 'submitted', 'pending', 'approved', 'rejected');
  END IF;
END$$;
`

const createFoundationsTable = `
CREATE TABLE IF NOT EXISTS foundations (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  url TEXT,
  focus_areas TEXT,
  grant_min BIGINT CHECK (grant_min >= 0),
  grant_max BIGINT CHECK (grant_max >= 0),
  application_deadline DATE,
  rolling_applications BOOLEAN NOT NULL DEFAULT FALSE,
  fit_score INT CHECK (fit_score >= 1 AND fit_score <= 10),
  status foundation_status_t NOT NULL DEFAULT 'research',
  notes TEXT,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_foundations_status ON foundations(status);
CREATE INDEX IF NOT EXISTS idx_foundations_fit_score ON foundations(fit_score);
CREATE INDEX IF NOT EXISTS idx_foundations_deadline ON foundations(application_deadline);
`

const createApplicationsTable = `
CREATE TABLE IF NOT EXISTS applications (
  id BIGSERIAL PRIMARY KEY,
  foundation_id BIGINT NOT NULL REFERENCES foundations(id) ON DELETE CASCADE,
  project_name TEXT NOT NULL,
  amount_requested BIGINT CHECK (amount_requested >= 0),
  submission_date DATE,
  decision_date DATE,
  status application_status_t NOT NULL DEFAULT 'draft',
  outcome TEXT,
  notes TEXT,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_applications_foundation_id ON applications(foundation_id);
CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status);
`

const createFollowUpsTable = `
CREATE TABLE IF NOT EXISTS follow_ups (
  id BIGSERIAL PRIMARY KEY,
  foundation_id BIGINT NOT NULL REFERENCES foundations(id) ON DELETE CASCADE,
  follow_up_date DATE NOT NULL,
  action TEXT NOT NULL,
  completed BOOLEAN NOT NULL DEFAULT FALSE,
  notes TEXT,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_follow_ups_foundation_id ON follow_ups(foundation_id);
CREATE INDEX IF NOT EXISTS idx_follow_ups_date ON follow_ups(follow_up_date);
CREATE INDEX IF NOT EXISTS idx_follow_ups_completed ON follow_ups(completed);
`

const createSeedStateTable = `
-- Persisted marker so seeding runs once per database, not per process
CREATE TABLE IF NOT EXISTS seed_state (
  name TEXT PRIMARY KEY,
  seeded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`
