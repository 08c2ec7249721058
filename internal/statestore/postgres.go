package statestore

import (
	"fmt"

	_ "github.com/lib/pq"

	"pions/internal/config"
)

var postgresDialect = dialect{
	driverName: "postgres",
	createSQL: `CREATE TABLE IF NOT EXISTS pion_state (
		state_key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	selectSQL: `SELECT value FROM pion_state WHERE state_key = $1`,
	upsertSQL: `INSERT INTO pion_state (state_key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (state_key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
}

// buildPostgresDSN constructs a lib/pq connection string.
func buildPostgresDSN(cfg config.StoreConfig, password string) string {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		cfg.Host, port, cfg.Username, cfg.Database, sslMode,
	)
	if password != "" {
		dsn += fmt.Sprintf(" password=%s", password)
	}
	return dsn
}
