package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
)

// MutateFunc - изменение счёта внутри транзакции хранилища
type MutateFunc func(acc *models.Account) error

type AccountsStorage interface {
	GetAccount(ctx context.Context, userID int64) (*models.Account, error)
	UpdateAccount(ctx context.Context, userID int64, fn MutateFunc) (*models.Account, error)
	TopAccounts(ctx context.Context, limit int) ([]models.Account, error)
	DeleteAccount(ctx context.Context, userID int64) error
	Close() error
}

var (
	ErrAccountNotFound = errors.New("account not found")
	// ErrWriteConflict - хранилище занято другим писателем, операцию можно повторить
	ErrWriteConflict = errors.New("write conflict")
)

// Таблица счетов
const (
	table           = "accounts"
	colID           = "id"
	colUserID       = "user_id"
	colMoney        = "money"
	colCredits      = "credits"
	colReserveUnits = "reserve_units"
)

// NewStorage - создание хранилища счетов с миграцией схемы.
// Непустой DSN выбирает PostgreSQL, иначе используется файл sqlite.
func NewStorage(ctx context.Context, cfg config.StorageConfig) (AccountsStorage, error) {
	if cfg.DatabaseDSN != "" {
		db, err := OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return NewAccountsPostgres(db), nil
	}

	db, err := NewSQLiteDatabase(cfg.SQLitePath, cfg.BusyTimeout)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db.DB, DialectSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrate database: %w", err)
	}
	return NewAccountsSQLite(db), nil
}
