package store

import (
	"fmt"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect holds the per-driver differences: placeholder style, how the
// generated id is returned, and the DDL for the two tables.
type Dialect struct {
	Name       string
	driverName string
	// numbered placeholders ($1, $2...) instead of ?
	numbered bool
	// INSERT needs RETURNING id; the driver has no LastInsertId
	returning  bool
	singleConn bool
	// SQL function applied to a column before matching a Fold()ed
	// pattern; empty means LOWER and relies on the column collation
	foldFunc string
	schema   []string
}

var dialects = map[string]*Dialect{
	"sqlite": {
		Name:       "sqlite",
		driverName: "sqlite",
		singleConn: true,
		foldFunc:   "fold",
		schema: []string{
			`PRAGMA journal_mode=WAL`,
			`CREATE TABLE IF NOT EXISTS calls (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    date            TEXT NOT NULL,
    heure           TEXT NOT NULL,
    appelant        TEXT,
    appele          TEXT NOT NULL,
    contact         TEXT NOT NULL,
    filiere         TEXT,
    critere         TEXT,
    deja_pigier     INTEGER NOT NULL DEFAULT 0,
    maitrise_info   TEXT NOT NULL DEFAULT '',
    dernier_diplome TEXT NOT NULL DEFAULT '',
    created_at      TEXT NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS login (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    nom      TEXT NOT NULL,
    email    TEXT NOT NULL,
    password TEXT NOT NULL,
    UNIQUE (nom, email)
)`,
		},
	},
	"mysql": {
		Name:       "mysql",
		driverName: "mysql",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS calls (
    id              INT AUTO_INCREMENT PRIMARY KEY,
    date            VARCHAR(10) NOT NULL,
    heure           VARCHAR(8) NOT NULL,
    appelant        VARCHAR(255) NULL,
    appele          VARCHAR(255) NOT NULL,
    contact         VARCHAR(255) NOT NULL,
    filiere         VARCHAR(255) NULL,
    critere         VARCHAR(64) NULL,
    deja_pigier     TINYINT(1) NOT NULL DEFAULT 0,
    maitrise_info   VARCHAR(255) NOT NULL DEFAULT '',
    dernier_diplome VARCHAR(255) NOT NULL DEFAULT '',
    created_at      VARCHAR(32) NOT NULL
) DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS login (
    id       INT AUTO_INCREMENT PRIMARY KEY,
    nom      VARCHAR(191) NOT NULL,
    email    VARCHAR(191) NOT NULL,
    password VARCHAR(255) NOT NULL,
    UNIQUE KEY login_nom_email (nom, email)
) DEFAULT CHARSET=utf8mb4`,
		},
	},
	"postgres": {
		Name:       "postgres",
		driverName: "postgres",
		numbered:   true,
		returning:  true,
		schema: []string{
			`CREATE TABLE IF NOT EXISTS calls (
    id              SERIAL PRIMARY KEY,
    date            TEXT NOT NULL,
    heure           TEXT NOT NULL,
    appelant        TEXT,
    appele          TEXT NOT NULL,
    contact         TEXT NOT NULL,
    filiere         TEXT,
    critere         TEXT,
    deja_pigier     SMALLINT NOT NULL DEFAULT 0,
    maitrise_info   TEXT NOT NULL DEFAULT '',
    dernier_diplome TEXT NOT NULL DEFAULT '',
    created_at      TEXT NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS login (
    id       SERIAL PRIMARY KEY,
    nom      TEXT NOT NULL,
    email    TEXT NOT NULL,
    password TEXT NOT NULL,
    UNIQUE (nom, email)
)`,
		},
	},
}

// GetDialect looks up a dialect by driver name.
func GetDialect(name string) (*Dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q, want sqlite, mysql or postgres", name)
	}
	return d, nil
}

// FoldColumn wraps col so it can be matched with LIKE against a
// Fold()ed pattern. mysql's utf8mb4 collation already ignores accents;
// postgres only gets case folding.
func (d *Dialect) FoldColumn(col string) string {
	if d.foldFunc != "" {
		return d.foldFunc + "(" + col + ")"
	}
	return "LOWER(" + col + ")"
}

// rebind rewrites ? placeholders to $n for numbered dialects. Question
// marks inside single-quoted literals are left alone.
func (d *Dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	quoted := false
	for _, r := range query {
		switch {
		case r == '\'':
			quoted = !quoted
			b.WriteRune(r)
		case r == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
