package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	db, err := Open("sqlite", ":memory:")
	require.Nil(t, err, "open sqlite")
	t.Cleanup(func() { db.Close() })
	require.Nil(t, db.Migrate(context.Background()), "migrate")
	return db
}

func TestExec(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	res, err := db.Exec(ctx, `INSERT INTO login (nom, email, password) VALUES (?, ?, ?)`,
		"A", "a@x.com", "pw")
	require.Nil(t, err)
	require.Equal(t, int64(1), res.InsertID)
	require.Equal(t, int64(1), res.RowsAffected)

	res, err = db.Exec(ctx, `SELECT id, nom, email FROM login WHERE nom = ?`, "A")
	require.Nil(t, err)
	require.Equal(t, 1, len(res.Rows))
	require.Equal(t, "a@x.com", res.Rows[0]["email"])

	var user struct {
		ID    int64  `db:"id"`
		Nom   string `db:"nom"`
		Email string `db:"email"`
	}
	require.Nil(t, DecodeRow(res.Rows[0], &user))
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "A", user.Nom)

	res, err = db.Exec(ctx, `UPDATE login SET password = ? WHERE id = ?`, "pw2", 99)
	require.Nil(t, err)
	require.Equal(t, int64(0), res.RowsAffected)

	res, err = db.Exec(ctx, `DELETE FROM login WHERE id = ?`, 1)
	require.Nil(t, err)
	require.Equal(t, int64(1), res.RowsAffected)

	res, err = db.Exec(ctx, `SELECT id FROM login`)
	require.Nil(t, err)
	require.NotNil(t, res.Rows)
	require.Equal(t, 0, len(res.Rows))
}

func TestClassifyErrors(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	_, err := db.Exec(ctx, `INSERT INTO login (nom, email, password) VALUES (?, ?, ?)`, "A", "a@x.com", "pw")
	require.Nil(t, err)
	_, err = db.Exec(ctx, `INSERT INTO login (nom, email, password) VALUES (?, ?, ?)`, "A", "a@x.com", "other")
	require.NotNil(t, err)
	require.True(t, errors.Is(err, ErrDuplicate), "duplicate: %v", err)

	var serr *StorageError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, "insert", serr.Op)
	require.NotEmpty(t, serr.Code)

	_, err = db.Exec(ctx, `SELECT * FROM missing`)
	require.True(t, errors.Is(err, ErrNoSuchTable), "no table: %v", err)
	require.False(t, errors.Is(err, ErrDuplicate))

	_, err = db.Exec(ctx, `SELECT name FROM login`)
	require.True(t, errors.Is(err, ErrUnknownColumn), "no column: %v", err)
	require.False(t, errors.Is(err, ErrNoSuchTable))
}

func TestFold(t *testing.T) {
	require.Equal(t, "eric n'guessan", Fold("Éric N'Guessan"))
	require.Equal(t, "secretariat", Fold("SECRÉTARIAT"))

	ctx := context.Background()
	db := openTestDB(t)
	res, err := db.Exec(ctx, `SELECT fold(?) AS f, fold(NULL) AS n, fold(12) AS i`, "Élève")
	require.Nil(t, err)
	require.Equal(t, "eleve", res.Rows[0]["f"])
	require.Nil(t, res.Rows[0]["n"])
	require.Equal(t, int64(12), res.Rows[0]["i"])

	lite, err := GetDialect("sqlite")
	require.Nil(t, err)
	require.Equal(t, "fold(appelant)", lite.FoldColumn("appelant"))
	pg, err := GetDialect("postgres")
	require.Nil(t, err)
	require.Equal(t, "LOWER(appelant)", pg.FoldColumn("appelant"))
	require.Equal(t, lite, db.Dialect())
}

func TestRebind(t *testing.T) {
	pg, err := GetDialect("postgres")
	require.Nil(t, err)
	require.Equal(t, "SELECT * FROM calls WHERE date >= $1 AND heure LIKE $2 AND x = '?'",
		pg.rebind("SELECT * FROM calls WHERE date >= ? AND heure LIKE ? AND x = '?'"))

	my, err := GetDialect("MySQL")
	require.Nil(t, err)
	require.Equal(t, "a = ?", my.rebind("a = ?"))

	_, err = GetDialect("oracle")
	require.NotNil(t, err)
}

func TestStatementVerb(t *testing.T) {
	require.Equal(t, "SELECT", statementVerb("\n  select * from calls"))
	require.Equal(t, "INSERT", statementVerb("INSERT INTO calls"))
	require.Equal(t, "", statementVerb("   "))
}
