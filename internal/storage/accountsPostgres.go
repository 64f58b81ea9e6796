package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	InsertAccount = `INSERT INTO ACCOUNTS (user_id, money, credits, reserve_units)
					 VALUES ($1, 0, 0, 2)
					 ON CONFLICT (user_id) DO NOTHING;`
	GetAccountForUpdate = `SELECT user_id, money, credits, COALESCE(reserve_units, 2)
						   FROM ACCOUNTS WHERE user_id=$1 FOR UPDATE;`
	UpdateAccount = `UPDATE ACCOUNTS
					 SET money = $1, credits = $2, reserve_units = $3
					 WHERE user_id = $4;`
	GetTopAccounts = `SELECT user_id, money, credits, COALESCE(reserve_units, 2)
					  FROM ACCOUNTS
					  ORDER BY money DESC, id ASC
					  LIMIT $1;`
	DeleteAccount = `DELETE FROM ACCOUNTS WHERE user_id=$1;`
)

// Коды ошибок PostgreSQL, после которых транзакцию можно повторить
var pgConflictCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
}

type AccountsPostgres struct {
	DB *PostgresDatabase
}

// Создание хранилища
func NewAccountsPostgres(db *PostgresDatabase) AccountsStorage {
	return &AccountsPostgres{DB: db}
}

func pgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := pgConflictCodes[pgErr.Code]; ok {
			return fmt.Errorf("%s: %w: %v", op, ErrWriteConflict, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *AccountsPostgres) GetAccount(ctx context.Context, userID int64) (*models.Account, error) {
	return s.UpdateAccount(ctx, userID, nil)
}

// UpdateAccount - чтение (или создание) счёта и сохранение изменений в одной транзакции
func (s *AccountsPostgres) UpdateAccount(ctx context.Context, userID int64, fn MutateFunc) (acc *models.Account, err error) {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, pgError("failed to begin transaction", err)
	}

	// Гарантированный откат при ошибке
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				logger.Error("UpdateAccount. rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	if _, err = tx.Exec(ctx, InsertAccount, userID); err != nil {
		return nil, pgError("failed to insert account", err)
	}

	acc = &models.Account{}
	err = tx.QueryRow(ctx, GetAccountForUpdate, userID).Scan(&acc.UserID, &acc.Money, &acc.Credits, &acc.ReserveUnits)
	if err != nil {
		return nil, pgError("failed to get account", err)
	}

	if fn != nil {
		if err = fn(acc); err != nil {
			return nil, err
		}
		if _, err = tx.Exec(ctx, UpdateAccount, acc.Money, acc.Credits, acc.ReserveUnits, userID); err != nil {
			return nil, pgError("failed to update account", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, pgError("UpdateAccount. Commit failed", err)
	}
	return acc, nil
}

func (s *AccountsPostgres) TopAccounts(ctx context.Context, limit int) ([]models.Account, error) {
	var arg any
	if limit > 0 {
		arg = limit
	}
	rows, err := s.DB.Pool.Query(ctx, GetTopAccounts, arg)
	if err != nil {
		return nil, pgError("failed to get top accounts", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var acc models.Account
		if err := rows.Scan(&acc.UserID, &acc.Money, &acc.Credits, &acc.ReserveUnits); err != nil {
			return accounts, fmt.Errorf("failed scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (s *AccountsPostgres) DeleteAccount(ctx context.Context, userID int64) error {
	tag, err := s.DB.Pool.Exec(ctx, DeleteAccount, userID)
	if err != nil {
		return pgError("failed to delete account", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *AccountsPostgres) Close() error {
	return s.DB.Close()
}
