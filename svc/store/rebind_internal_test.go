package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	pgStore := &Store{dialect: DialectPostgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", pgStore.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	liteStore := &Store{dialect: DialectSQLite}
	assert.Equal(t, "SELECT ?", liteStore.rebind("SELECT ?"))
}
