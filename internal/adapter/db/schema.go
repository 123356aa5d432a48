package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// sqliteSchema mirrors db/migrations for the embedded driver.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  email       TEXT    NOT NULL UNIQUE COLLATE NOCASE,
  first_name  TEXT    NOT NULL DEFAULT '',
  last_name   TEXT    NOT NULL DEFAULT '',
  is_manager  BOOLEAN NOT NULL DEFAULT 0,
  first_login BOOLEAN NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS buildings (
  id      INTEGER PRIMARY KEY AUTOINCREMENT,
  name    TEXT NOT NULL,
  address TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
  id           INTEGER  PRIMARY KEY AUTOINCREMENT,
  title        TEXT     NOT NULL,
  description  TEXT     NOT NULL,
  category     TEXT     NOT NULL,
  priority     TEXT     NOT NULL,
  deadline     DATETIME NOT NULL,
  created_at   DATETIME NOT NULL,
  closed_at    DATETIME NULL,
  status_field TEXT     NULL,
  created_by   INTEGER  NULL REFERENCES users(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);

CREATE TABLE IF NOT EXISTS task_assignees (
  task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  PRIMARY KEY (task_id, user_id)
);

CREATE TABLE IF NOT EXISTS task_buildings (
  task_id     INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
  building_id INTEGER NOT NULL REFERENCES buildings(id) ON DELETE CASCADE,
  PRIMARY KEY (task_id, building_id)
);

CREATE TABLE IF NOT EXISTS task_comments (
  id            INTEGER  PRIMARY KEY AUTOINCREMENT,
  task_id       INTEGER  NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
  user_id       INTEGER  NULL REFERENCES users(id) ON DELETE SET NULL,
  comment_text  TEXT     NOT NULL,
  creation_date DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS attachments (
  id          INTEGER  PRIMARY KEY AUTOINCREMENT,
  task_id     INTEGER  NULL REFERENCES tasks(id) ON DELETE CASCADE,
  file        TEXT     NOT NULL,
  uploaded_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_entries (
  id          INTEGER  PRIMARY KEY AUTOINCREMENT,
  action      TEXT     NOT NULL,
  ip          TEXT     NULL,
  email       TEXT     NULL,
  date        DATETIME NOT NULL,
  description TEXT     NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_audit_entries_date ON audit_entries(date);
`

func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, sqliteSchema)
	return err
}
