package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelQuery detects a completed migration. The index it looks up is
// created by the final step, so it only exists once every step has succeeded.
const sentinelQuery = "SELECT to_regclass('public.idx_audit_logs_created_at') IS NOT NULL"

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            BIGSERIAL   PRIMARY KEY,
  name          TEXT        NOT NULL,
  last_name     TEXT        NOT NULL DEFAULT '',
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  role          TEXT        NOT NULL DEFAULT 'USER',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_state_requests",
		SQL: `CREATE TABLE IF NOT EXISTS state_requests (
  id    BIGINT PRIMARY KEY,
  state TEXT   NOT NULL UNIQUE
);`,
	},
	{
		Name: "seed_state_requests",
		SQL: `INSERT INTO state_requests (id, state) VALUES
  (1, 'PENDING'),
  (2, 'ACCEPTED'),
  (3, 'DECLINED')
ON CONFLICT (id) DO NOTHING;`,
	},
	{
		Name: "create_table_publications",
		SQL: `CREATE TABLE IF NOT EXISTS publications (
  id               BIGSERIAL   PRIMARY KEY,
  title            TEXT        NOT NULL,
  content          TEXT        NOT NULL,
  plantation_id    BIGINT      NOT NULL,
  author_id        BIGINT      NOT NULL REFERENCES users (id),
  score            INTEGER     NOT NULL DEFAULT 0,
  visibility       BOOLEAN     NOT NULL DEFAULT FALSE,
  state_id         BIGINT      NOT NULL DEFAULT 1 REFERENCES state_requests (id),
  publication_date TIMESTAMPTZ NOT NULL DEFAULT now(),
  image_path       TEXT
);`,
	},
	{
		Name: "create_index_publications_score",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_publications_score ON publications (score DESC, id);`,
	},
	{
		Name: "create_index_publications_author_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_publications_author_id ON publications (author_id, id);`,
	},
	{
		Name: "create_index_publications_publication_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_publications_publication_date ON publications (publication_date DESC, id DESC);`,
	},
	{
		Name: "create_index_publications_state_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_publications_state_id ON publications (state_id);`,
	},
	{
		Name: "create_table_votes",
		SQL: `CREATE TABLE IF NOT EXISTS votes (
  user_id        BIGINT  NOT NULL REFERENCES users (id),
  publication_id BIGINT  NOT NULL REFERENCES publications (id),
  voted          BOOLEAN NOT NULL DEFAULT TRUE,
  PRIMARY KEY (user_id, publication_id)
);`,
	},
	{
		Name: "create_table_audit_logs",
		SQL: `CREATE TABLE IF NOT EXISTS audit_logs (
  id         BIGSERIAL   PRIMARY KEY,
  username   TEXT        NOT NULL,
  action     TEXT        NOT NULL,
  method     TEXT        NOT NULL,
  endpoint   TEXT        NOT NULL,
  status     INTEGER     NOT NULL,
  ip         TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_audit_logs_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs (created_at DESC, id DESC);`,
	},
}

// EnsureMigrated runs every step unless the sentinel table exists. Steps are
// idempotent, so a run that failed halfway is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	start := time.Now()
	logger = logger.With(zap.String("component", "database"))

	logger.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		logger.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("msg", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	logger.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logger.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	logger.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
