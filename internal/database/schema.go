package database

import "database/sql"

// Schema version for migrations
const currentSchemaVersion = 2

var migrations = []migration{
	{
		version: 1,
		up: []string{
			`CREATE TABLE schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,

			`CREATE TABLE torrents (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL UNIQUE,
				download_url TEXT NOT NULL DEFAULT '',

				-- Parsed from name, filled only when empty
				title TEXT NOT NULL DEFAULT '',
				season TEXT NOT NULL DEFAULT '',
				episode TEXT NOT NULL DEFAULT '',

				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			)`,

			`CREATE INDEX idx_torrents_title ON torrents(title)`,
			`CREATE INDEX idx_torrents_created ON torrents(created_at)`,

			`INSERT INTO schema_version (version) VALUES (1)`,
		},
	},
	{
		version: 2,
		up: []string{
			`ALTER TABLE torrents ADD COLUMN year TEXT NOT NULL DEFAULT ''`,
			`ALTER TABLE torrents ADD COLUMN release_group TEXT NOT NULL DEFAULT ''`,
			`ALTER TABLE torrents ADD COLUMN resolution TEXT NOT NULL DEFAULT ''`,

			`INSERT INTO schema_version (version) VALUES (2)`,
		},
	},
}

type migration struct {
	version int
	up      []string
}

// applyMigrations applies any pending schema migrations
func applyMigrations(db *sql.DB) error {
	var currentVersion int
	err := db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&currentVersion)
	if err != nil {
		// fresh database
		currentVersion = 0
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		for _, stmt := range m.up {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return err
			}
		}
		// each migration records its own version row
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}
