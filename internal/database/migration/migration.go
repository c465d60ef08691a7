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

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_brokers",
		SQL: `CREATE TABLE IF NOT EXISTS brokers (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email      TEXT        NOT NULL UNIQUE,
  name       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_clients",
		SQL: `CREATE TABLE IF NOT EXISTS clients (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  broker_id  UUID        NOT NULL REFERENCES brokers (id) ON DELETE CASCADE,
  name       TEXT        NOT NULL,
  email      TEXT        NOT NULL,
  phone      TEXT        NOT NULL DEFAULT '',
  address    TEXT        NOT NULL DEFAULT '',
  status     TEXT        NOT NULL DEFAULT 'active'
             CHECK (status IN ('active', 'pending', 'completed', 'inactive')),
  notes      TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_applications",
		SQL: `CREATE TABLE IF NOT EXISTS applications (
  id                  UUID           PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id           UUID           NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  broker_id           UUID           NOT NULL REFERENCES brokers (id) ON DELETE CASCADE,
  loan_amount         NUMERIC(12,2)  NOT NULL CHECK (loan_amount >= 0),
  property_value      NUMERIC(12,2)  NOT NULL DEFAULT 0,
  property_address    TEXT           NOT NULL DEFAULT '',
  loan_type           TEXT           NOT NULL DEFAULT '',
  status              TEXT           NOT NULL DEFAULT 'draft'
                      CHECK (status IN ('draft', 'submitted', 'under_review', 'approved', 'rejected', 'completed')),
  progress            INT            NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
  submitted_date      TIMESTAMPTZ,
  expected_close_date TIMESTAMPTZ,
  notes               TEXT           NOT NULL DEFAULT '',
  created_at          TIMESTAMPTZ    NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ    NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  client_id      UUID        NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
  application_id UUID        REFERENCES applications (id) ON DELETE CASCADE,
  title          TEXT        NOT NULL,
  document_type  TEXT        NOT NULL
                 CHECK (document_type IN ('id', 'income', 'bank', 'property', 'other')),
  storage_path   TEXT        NOT NULL UNIQUE,
  file_size      BIGINT      NOT NULL CHECK (file_size >= 0),
  content_type   TEXT        NOT NULL DEFAULT 'application/octet-stream',
  status         TEXT        NOT NULL DEFAULT 'pending'
                 CHECK (status IN ('pending', 'approved', 'rejected', 'under_review')),
  notes          TEXT        NOT NULL DEFAULT '',
  uploaded_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_tasks",
		SQL: `CREATE TABLE IF NOT EXISTS tasks (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  broker_id      UUID        NOT NULL REFERENCES brokers (id) ON DELETE CASCADE,
  client_id      UUID        REFERENCES clients (id) ON DELETE CASCADE,
  application_id UUID        REFERENCES applications (id) ON DELETE CASCADE,
  title          TEXT        NOT NULL,
  description    TEXT        NOT NULL DEFAULT '',
  due_date       TIMESTAMPTZ NOT NULL,
  priority       TEXT        NOT NULL DEFAULT 'medium'
                 CHECK (priority IN ('low', 'medium', 'high')),
  status         TEXT        NOT NULL DEFAULT 'pending'
                 CHECK (status IN ('pending', 'in_progress', 'completed')),
  completed_at   TIMESTAMPTZ,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK ((status = 'completed') = (completed_at IS NOT NULL))
);`,
	},
	{
		Name: "create_table_reminders",
		SQL: `CREATE TABLE IF NOT EXISTS reminders (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  broker_id      UUID        NOT NULL REFERENCES brokers (id) ON DELETE CASCADE,
  client_id      UUID        REFERENCES clients (id) ON DELETE CASCADE,
  application_id UUID        REFERENCES applications (id) ON DELETE CASCADE,
  title          TEXT        NOT NULL,
  description    TEXT        NOT NULL DEFAULT '',
  due_date       TIMESTAMPTZ NOT NULL,
  reminder_type  TEXT        NOT NULL DEFAULT 'follow_up'
                 CHECK (reminder_type IN ('call', 'meeting', 'document', 'follow_up')),
  is_completed   BOOLEAN     NOT NULL DEFAULT false,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_script_sections",
		SQL: `CREATE TABLE IF NOT EXISTS script_sections (
  id               UUID   PRIMARY KEY DEFAULT uuid_generate_v4(),
  title            TEXT   NOT NULL,
  duration_seconds INT    NOT NULL CHECK (duration_seconds > 0),
  content          TEXT   NOT NULL,
  order_index      INT    NOT NULL DEFAULT 0,
  key_notes        TEXT   NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_interview_scripts",
		SQL: `CREATE TABLE IF NOT EXISTS interview_scripts (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title          TEXT        NOT NULL,
  description    TEXT        NOT NULL DEFAULT '',
  script_type    TEXT        NOT NULL
                 CHECK (script_type IN ('initial_call', 'follow_up', 'closing')),
  version        TEXT        NOT NULL DEFAULT '1.0',
  is_active      BOOLEAN     NOT NULL DEFAULT true,
  total_duration INT         NOT NULL DEFAULT 0,
  general_notes  TEXT        NOT NULL DEFAULT '',
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// Sections are shared between scripts; the bigserial link id preserves
		// insertion order for order_index ties.
		Name: "create_table_interview_script_sections",
		SQL: `CREATE TABLE IF NOT EXISTS interview_script_sections (
  id         BIGSERIAL PRIMARY KEY,
  script_id  UUID NOT NULL REFERENCES interview_scripts (id) ON DELETE CASCADE,
  section_id UUID NOT NULL REFERENCES script_sections (id) ON DELETE CASCADE,
  UNIQUE (script_id, section_id)
);`,
	},
	{
		Name: "create_index_clients_broker",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_clients_broker_id ON clients (broker_id);`,
	},
	{
		Name: "create_index_applications_broker_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_broker_status ON applications (broker_id, status);`,
	},
	{
		Name: "create_index_documents_client",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_client_id ON documents (client_id);`,
	},
	{
		Name: "create_index_tasks_broker_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tasks_broker_status ON tasks (broker_id, status);`,
	},
	{
		Name: "create_index_tasks_due_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks (due_date);`,
	},
	{
		Name: "create_index_reminders_broker_due",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reminders_broker_due ON reminders (broker_id, due_date);`,
	},
}

// EnsureMigrated checks if the 'clients' sentinel table exists and runs the
// bootstrap DDL if it doesn't. Steps are idempotent, so a partially applied
// bootstrap is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	start := time.Now()

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.clients') IS NOT NULL").Scan(&exists); err != nil {
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("migration step failed",
				zap.String("step", step.Name),
				zap.Error(err))
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug("migration step applied",
			zap.String("step", step.Name),
			zap.Duration("elapsed", time.Since(stepStart)))
	}

	log.Info("schema bootstrap complete", zap.Duration("elapsed", time.Since(start)))
	return nil
}
