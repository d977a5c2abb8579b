package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrDuplicate     = errors.New("duplicate entry")
	ErrNoSuchTable   = errors.New("no such table")
	ErrUnknownColumn = errors.New("unknown column")
)

// StorageError is any failure reported by the database. Code is the
// driver's own code (mysql error name, postgres SQLSTATE, sqlite result
// code) and Detail its message.
type StorageError struct {
	Op     string
	Code   string
	Detail string
	Err    error
	kind   error
}

func (e *StorageError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Detail, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is matches ErrDuplicate, ErrNoSuchTable and ErrUnknownColumn.
func (e *StorageError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

var mysqlCodeNames = map[uint16]string{
	1054: "ER_BAD_FIELD_ERROR",
	1062: "ER_DUP_ENTRY",
	1146: "ER_NO_SUCH_TABLE",
}

func classify(op string, err error) error {
	serr := &StorageError{Op: op, Detail: err.Error(), Err: err}

	var myErr *mysql.MySQLError
	var pqErr *pq.Error
	var liteErr *sqlite.Error
	switch {
	case errors.As(err, &myErr):
		serr.Code = mysqlCodeNames[myErr.Number]
		if serr.Code == "" {
			serr.Code = strconv.Itoa(int(myErr.Number))
		}
		serr.Detail = myErr.Message
		switch myErr.Number {
		case 1054:
			serr.kind = ErrUnknownColumn
		case 1062:
			serr.kind = ErrDuplicate
		case 1146:
			serr.kind = ErrNoSuchTable
		}
	case errors.As(err, &pqErr):
		serr.Code = string(pqErr.Code)
		serr.Detail = pqErr.Message
		switch pqErr.Code.Name() {
		case "unique_violation":
			serr.kind = ErrDuplicate
		case "undefined_table":
			serr.kind = ErrNoSuchTable
		case "undefined_column":
			serr.kind = ErrUnknownColumn
		}
	case errors.As(err, &liteErr):
		code := liteErr.Code()
		serr.Code = "SQLITE_" + strconv.Itoa(code)
		msg := liteErr.Error()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			serr.kind = ErrDuplicate
		case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "UNIQUE"):
			// extended result codes disabled
			serr.kind = ErrDuplicate
		case strings.Contains(msg, "no such table"):
			serr.kind = ErrNoSuchTable
		case strings.Contains(msg, "no such column"):
			serr.kind = ErrUnknownColumn
		}
	}
	return serr
}
