package statestore

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"pions/internal/config"
)

var mysqlDialect = dialect{
	driverName: "mysql",
	createSQL: `CREATE TABLE IF NOT EXISTS pion_state (
		state_key VARCHAR(64) PRIMARY KEY,
		value MEDIUMTEXT NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	selectSQL: `SELECT value FROM pion_state WHERE state_key = ?`,
	upsertSQL: `INSERT INTO pion_state (state_key, value, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)`,
}

// buildMySQLDSN constructs a go-sql-driver DSN: user:password@tcp(host:port)/db.
func buildMySQLDSN(cfg config.StoreConfig, password string) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		cfg.Username, password, cfg.Host, port, cfg.Database,
	)
	if cfg.SSLMode == "require" {
		dsn += "&tls=true"
	}
	return dsn
}
