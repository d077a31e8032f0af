package sqlite

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrEmptyPath         = errors.New("empty sqlite path, set SQLITE_PATH")
	ErrFailedToOpen      = errors.New("failed to open sqlite database")
	ErrHealthcheckFailed = errors.New("healthcheck failed, database is not available")
)

// IsUndefinedTableError reports a query against a table that does not exist,
// typically because migrations have not run.
func IsUndefinedTableError(err error) bool {
	var sqErr sqlite3.Error
	return errors.As(err, &sqErr) && sqErr.Code == sqlite3.ErrError && strings.Contains(sqErr.Error(), "no such table")
}
