package db

import (
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLiteDB wraps the gorm handle used by the embedded store.
type SQLiteDB struct {
	DB *gorm.DB
}

// SQLiteDSN builds a go-sqlite3 DSN for path. Foreign keys are switched on so
// cascades fire, transactions begin IMMEDIATE so writers serialize on the
// database lock instead of failing late, and a busy timeout lets a waiting
// writer queue behind the current one.
func SQLiteDSN(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_txlock", "immediate")
	params.Set("_busy_timeout", "5000")
	params.Set("_journal_mode", "WAL")
	return "file:" + path + "?" + params.Encode()
}

// NewSQLiteDB opens the database file at path.
func NewSQLiteDB(path string, maxOpenConns int, connMaxLifetime time.Duration) (*SQLiteDB, error) {
	gdb, err := gorm.Open(sqlite.Open(SQLiteDSN(path)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if maxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(maxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &SQLiteDB{DB: gdb}, nil
}

// Close closes the underlying connection pool.
func (db *SQLiteDB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
