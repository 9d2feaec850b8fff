package postgres

// schemaStatements create the backend tables inside the tally schema set by
// search_path. Idempotent so Init and Load can both apply them.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS habits (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		type               TEXT NOT NULL,
		target_completions INTEGER NOT NULL DEFAULT 1,
		unit               TEXT NOT NULL DEFAULT '',
		goal_series        INTEGER NOT NULL DEFAULT 1,
		icon               TEXT NOT NULL DEFAULT '',
		order_index        INTEGER NOT NULL DEFAULT 0,
		created_day        TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL,
		archived_at        TIMESTAMPTZ,
		deleted_at         TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		icon        TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS habit_categories (
		habit_id    TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		PRIMARY KEY (habit_id, category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS completion_records (
		habit_id        TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		day             TEXT NOT NULL,
		completed_count INTEGER NOT NULL DEFAULT 0,
		updated_at      TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (habit_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id         TEXT PRIMARY KEY,
		habit_id   TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		day        TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_completion_records_day ON completion_records(day)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_habit_day ON notes(habit_id, day)`,
}

func (s *Store) applySchema() error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
