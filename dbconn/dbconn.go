// Package dbconn opens the postgres connection the data-access layer runs
// against.
package dbconn

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to postgres via the pgx stdlib driver and verifies the
// connection with a ping. The layer runs against one logical connection, so
// the pool is capped at a single open connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
