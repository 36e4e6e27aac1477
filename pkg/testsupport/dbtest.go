package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var memoryDBSeq atomic.Int64

// NewSQLiteMemoryDB opens a private shared-cache in-memory sqlite database.
// Each call gets its own database so parallel tests never see each other's rows.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("vendcms_test_%d", memoryDBSeq.Add(1))
	return sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared")
}

// NewBunDB returns a bun handle over a fresh in-memory database with the
// tables for models created. The database is closed when t finishes.
func NewBunDB(t testing.TB, models ...any) *bun.DB {
	t.Helper()
	sqlDB, err := NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table for %T: %v", model, err)
		}
	}
	return db
}
