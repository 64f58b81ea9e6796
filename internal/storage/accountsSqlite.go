package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/models"
	"go.uber.org/zap"
)

// Значение по умолчанию для строк, созданных до появления колонки
const reserveUnitsExpr = "COALESCE(" + colReserveUnits + ", 2)"

type AccountsSQLite struct {
	DB *SQLiteDatabase
}

// Создание хранилища
func NewAccountsSQLite(db *SQLiteDatabase) AccountsStorage {
	return &AccountsSQLite{DB: db}
}

func (s *AccountsSQLite) GetAccount(ctx context.Context, userID int64) (*models.Account, error) {
	return s.UpdateAccount(ctx, userID, nil)
}

// UpdateAccount - чтение (или создание) счёта и сохранение изменений в одной транзакции.
// BEGIN IMMEDIATE сразу захватывает блокировку записи, конкурирующий писатель получает SQLITE_BUSY.
func (s *AccountsSQLite) UpdateAccount(ctx context.Context, userID int64, fn MutateFunc) (acc *models.Account, err error) {
	tx, err := s.DB.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, sqliteError("failed to begin transaction", err)
	}

	// Гарантированный откат при ошибке
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Error("UpdateAccount. rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	insert := sq.Insert(table).
		Columns(colUserID, colMoney, colCredits, colReserveUnits).
		Values(userID, 0, 0, models.DefaultReserveUnits).
		Suffix("ON CONFLICT (" + colUserID + ") DO NOTHING")
	sqlStr, args, err := insert.ToSql()
	if err != nil {
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return nil, sqliteError("failed to insert account", err)
	}

	query := sq.Select(colUserID, colMoney, colCredits, reserveUnitsExpr).
		From(table).
		Where(sq.Eq{colUserID: userID})
	sqlStr, args, err = query.ToSql()
	if err != nil {
		return nil, err
	}
	acc = &models.Account{}
	err = tx.QueryRowContext(ctx, sqlStr, args...).Scan(&acc.UserID, &acc.Money, &acc.Credits, &acc.ReserveUnits)
	if err != nil {
		return nil, sqliteError("failed to get account", err)
	}

	if fn != nil {
		if err = fn(acc); err != nil {
			return nil, err
		}
		update := sq.Update(table).
			Set(colMoney, acc.Money).
			Set(colCredits, acc.Credits).
			Set(colReserveUnits, acc.ReserveUnits).
			Where(sq.Eq{colUserID: userID})
		sqlStr, args, err = update.ToSql()
		if err != nil {
			return nil, err
		}
		if _, err = tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return nil, sqliteError("failed to update account", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, sqliteError("UpdateAccount. Commit failed", err)
	}
	return acc, nil
}

func (s *AccountsSQLite) TopAccounts(ctx context.Context, limit int) ([]models.Account, error) {
	query := sq.Select(colUserID, colMoney, colCredits, reserveUnitsExpr).
		From(table).
		OrderBy(colMoney+" DESC", colID+" ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, sqliteError("failed to get top accounts", err)
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

func (s *AccountsSQLite) DeleteAccount(ctx context.Context, userID int64) error {
	sqlStr, args, err := sq.Delete(table).Where(sq.Eq{colUserID: userID}).ToSql()
	if err != nil {
		return err
	}
	res, err := s.DB.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return sqliteError("failed to delete account", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *AccountsSQLite) Close() error {
	return s.DB.Close()
}
