package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Tables the service reads or writes.
var Tables = []string{"mt_bookings", "mt_payments", "mt_payment_details", "mt_filestore", "mt_workflow_history", "tenants"}

// QueryRower is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Placeholders returns "?,?,?" for n bind parameters.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// StringArgs converts ids into bind arguments.
func StringArgs(vals []string) []any {
	out := make([]any, 0, len(vals))
	for _, v := range vals {
		out = append(out, v)
	}
	return out
}

// HasTable reports whether the current schema has the table.
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// RequireTables fails with the first table missing from the current schema.
func RequireTables(ctx context.Context, q QueryRower, tables ...string) error {
	for _, t := range tables {
		if !HasTable(ctx, q, t) {
			return fmt.Errorf("table %s missing", t)
		}
	}
	return nil
}
