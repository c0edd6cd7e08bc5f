package services

import (
	"context"
	_ "embed"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schema string

// ConnectDB opens a MySQL connection pool for the given DSN and verifies it
// with a ping. The pool is shared by every request; its size is a deployment
// concern, kept at modest defaults here.
func ConnectDB(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ApplySchema creates the four tables if they do not exist yet. Statements are
// idempotent, so running this on every boot is safe.
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return persistence("schema apply", err)
		}
	}
	return nil
}
