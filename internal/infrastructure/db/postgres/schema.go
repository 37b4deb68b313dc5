package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the bootstrap DDL, applied idempotently at startup.
//
// performance_scores is append-only: rows are inserted once per scoring run
// and never updated or deleted. users.performance_score/performance_rating
// are denormalized caches of the latest run.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id            BIGSERIAL PRIMARY KEY,
	names              TEXT NOT NULL,
	email              TEXT NOT NULL UNIQUE,
	password           TEXT NOT NULL,
	phone              TEXT NOT NULL DEFAULT '',
	gender             TEXT NOT NULL DEFAULT '',
	role               TEXT NOT NULL DEFAULT 'farmer',
	is_active          BOOLEAN NOT NULL DEFAULT true,
	managed_by         BIGINT REFERENCES users(user_id),
	photo_url          TEXT NOT NULL DEFAULT '',
	performance_score  INTEGER NOT NULL DEFAULT 0,
	performance_rating TEXT NOT NULL DEFAULT 'fair',
	created_date       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_date       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS fields (
	f_id          BIGSERIAL PRIMARY KEY,
	f_name        TEXT NOT NULL,
	location      TEXT NOT NULL DEFAULT '',
	size_hectares DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_date  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS crops (
	c_id         BIGSERIAL PRIMARY KEY,
	c_name       TEXT NOT NULL,
	variety      TEXT NOT NULL DEFAULT '',
	field_id     BIGINT REFERENCES fields(f_id),
	planted_date TIMESTAMPTZ,
	exp_harvest  TIMESTAMPTZ,
	is_harvested BOOLEAN NOT NULL DEFAULT false,
	created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tasks (
	task_id                   BIGSERIAL PRIMARY KEY,
	title                     TEXT NOT NULL,
	description               TEXT NOT NULL DEFAULT '',
	assigned_to               BIGINT NOT NULL REFERENCES users(user_id),
	assigned_by               BIGINT NOT NULL REFERENCES users(user_id),
	status                    TEXT NOT NULL DEFAULT 'pending',
	priority                  TEXT NOT NULL DEFAULT 'medium',
	due_date                  TIMESTAMPTZ,
	crop_id                   BIGINT REFERENCES crops(c_id),
	field_id                  BIGINT REFERENCES fields(f_id),
	expected_duration_minutes INTEGER,
	actual_duration_minutes   DOUBLE PRECISION,
	assigned_date             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	started_at                TIMESTAMPTZ,
	completed_at              TIMESTAMPTZ,
	created_date              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_date              TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_tasks_assigned_to ON tasks (assigned_to, created_date);
CREATE INDEX IF NOT EXISTS idx_tasks_assigned_by ON tasks (assigned_by, created_date);

CREATE TABLE IF NOT EXISTS performance_scores (
	score_id           BIGSERIAL PRIMARY KEY,
	user_id            BIGINT NOT NULL REFERENCES users(user_id),
	score              INTEGER NOT NULL,
	rating             TEXT NOT NULL,
	calculation_method TEXT NOT NULL,
	period_start       TIMESTAMPTZ NOT NULL,
	period_end         TIMESTAMPTZ NOT NULL,
	tasks_completed    INTEGER NOT NULL DEFAULT 0,
	total_tasks        INTEGER NOT NULL DEFAULT 0,
	created_date       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_performance_scores_user ON performance_scores (user_id, created_date DESC);

CREATE TABLE IF NOT EXISTS supplies (
	id           BIGSERIAL PRIMARY KEY,
	kind         TEXT NOT NULL,
	name         TEXT NOT NULL,
	type         TEXT NOT NULL DEFAULT '',
	quantity     DOUBLE PRECISION NOT NULL DEFAULT 0,
	unit         TEXT NOT NULL DEFAULT '',
	created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS notifications (
	notification_id BIGSERIAL PRIMARY KEY,
	user_id         BIGINT NOT NULL REFERENCES users(user_id),
	title           TEXT NOT NULL,
	message         TEXT NOT NULL DEFAULT '',
	is_read         BOOLEAN NOT NULL DEFAULT false,
	created_date    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS reports (
	report_id    BIGSERIAL PRIMARY KEY,
	title        TEXT NOT NULL,
	body         TEXT NOT NULL DEFAULT '',
	author_id    BIGINT NOT NULL REFERENCES users(user_id),
	created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate applies the bootstrap schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: migrate schema: %w", err)
	}
	return nil
}
