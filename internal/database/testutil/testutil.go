package testutil

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cinetrack/cinetrack/internal/database"
)

// Option customises the test database before it is returned.
type Option func(*options)

type options struct {
	autoMigrate bool
	seedData    bool
}

// WithAutoMigrate applies the full schema to the test database.
func WithAutoMigrate() Option {
	return func(o *options) {
		o.autoMigrate = true
	}
}

// WithSeedData migrates and seeds the built-in reference data.
func WithSeedData() Option {
	return func(o *options) {
		o.autoMigrate = true
		o.seedData = true
	}
}

var dbCounter int

// MustOpenTestDB returns an isolated in-memory SQLite database for tests.
// The connection is closed automatically when the test finishes.
func MustOpenTestDB(t *testing.T, opts ...Option) *gorm.DB {
	t.Helper()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	dbCounter++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbCounter)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access test database connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if o.autoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			t.Fatalf("migrate test database: %v", err)
		}
	}
	if o.seedData {
		if err := database.SeedData(db); err != nil {
			t.Fatalf("seed test database: %v", err)
		}
	}

	return db
}
