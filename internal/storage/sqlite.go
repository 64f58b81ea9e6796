package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteDatabase struct {
	DB   *sql.DB
	Path string
}

// SQLiteDSN - строка подключения: WAL, немедленная блокировка записи при BEGIN
func SQLiteDSN(path string, busyTimeout time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// Создание хранилища sqlite
func NewSQLiteDatabase(path string, busyTimeout time.Duration) (*SQLiteDatabase, error) {
	db, err := sql.Open("sqlite", SQLiteDSN(path, busyTimeout))
	if err != nil {
		return nil, fmt.Errorf("open db error: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return &SQLiteDatabase{DB: db, Path: path}, nil
}

func (s *SQLiteDatabase) Close() error {
	return s.DB.Close()
}

// isSQLiteConflict - база занята другим соединением
func isSQLiteConflict(err error) bool {
	var sqErr *sqlite.Error
	if !errors.As(err, &sqErr) {
		return false
	}
	switch sqErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

func sqliteError(op string, err error) error {
	if isSQLiteConflict(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrWriteConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
