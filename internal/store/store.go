// Package store is the SQL execution collaborator shared by the services.
// Statements are written once with `?` placeholders and run unchanged on
// sqlite, mysql and postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"calllog/internal/log"
)

// Row is one result row keyed by column name. []byte values are
// converted to string.
type Row map[string]interface{}

// Result is what every statement returns. Rows is set for SELECT,
// InsertID for INSERT, RowsAffected for INSERT/UPDATE/DELETE.
type Result struct {
	Rows         []Row
	InsertID     int64
	RowsAffected int64
}

// Executor runs one statement with positional arguments.
type Executor interface {
	Exec(ctx context.Context, query string, args ...interface{}) (*Result, error)
}

// DB wraps a database/sql pool for one dialect.
type DB struct {
	db      *sql.DB
	dialect *Dialect
}

// Open opens the pool for driver ("sqlite", "mysql" or "postgres").
// Tables are not created; call Migrate for that.
func Open(driver, dsn string) (*DB, error) {
	dialect, err := GetDialect(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if dialect.singleConn {
		db.SetMaxOpenConns(1)
	}
	log.InfoLog("opened database", "driver", dialect.Name)
	return &DB{db: db, dialect: dialect}, nil
}

// Close closes the database connection.
func (s *DB) Close() error { return s.db.Close() }

// Ping checks the database connection.
func (s *DB) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Dialect returns the dialect the pool was opened with.
func (s *DB) Dialect() *Dialect { return s.dialect }

// Migrate creates the calls and login tables if they do not exist.
func (s *DB) Migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return classify("migrate", err)
		}
	}
	return nil
}

func (s *DB) Exec(ctx context.Context, query string, args ...interface{}) (*Result, error) {
	start := time.Now()
	verb := statementVerb(query)
	q := s.dialect.rebind(query)
	res := &Result{}
	var err error

	switch {
	case verb == "SELECT":
		res.Rows, err = s.queryRows(ctx, q, args)
	case verb == "INSERT" && s.dialect.returning:
		var rows []Row
		rows, err = s.queryRows(ctx, q+" RETURNING id", args)
		if err == nil && len(rows) == 1 {
			res.InsertID = toInt64(rows[0]["id"])
			res.RowsAffected = 1
		}
	default:
		var r sql.Result
		r, err = s.db.ExecContext(ctx, q, args...)
		if err == nil {
			res.RowsAffected, _ = r.RowsAffected()
			if verb == "INSERT" {
				res.InsertID, _ = r.LastInsertId()
			}
		}
	}
	log.DebugLog(log.DebugLevelSql, "Call sql", "sql", compact(q), "vars", args,
		"rows", len(res.Rows), "rows-affected", res.RowsAffected,
		"took", time.Since(start), "err", err)
	if err != nil {
		return nil, classify(strings.ToLower(verb), err)
	}
	return res, nil
}

func (s *DB) queryRows(ctx context.Context, q string, args []interface{}) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := []Row{}
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = vals[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func statementVerb(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

func compact(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		var id int64
		fmt.Sscan(n, &id)
		return id
	}
	return 0
}
