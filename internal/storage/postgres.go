package storage

import (
	"context"
	"fmt"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// maintenanceDatabase - база, через которую создаётся база счетов
const maintenanceDatabase = "postgres"

const (
	sqlDatabaseExists = `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	sqlCreateDatabase = `CREATE DATABASE %s`
)

type PostgresDatabase struct {
	Pool *pgxpool.Pool
}

// OpenPostgres - пул соединений к базе счетов. Отсутствующая база создаётся, схема мигрируется.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresDatabase, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if err := ensureAccountsDatabase(ctx, cfg.ConnConfig); err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	db := &PostgresDatabase{Pool: pool}
	if err := db.migrate(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error migrate database: %w", err)
	}
	return db, nil
}

// ensureAccountsDatabase - создание базы из строки подключения, если к ней нельзя подключиться
func ensureAccountsDatabase(ctx context.Context, cfg *pgx.ConnConfig) error {
	if conn, err := pgx.ConnectConfig(ctx, cfg); err == nil {
		return conn.Close(ctx)
	}

	admin := cfg.Copy()
	admin.Database = maintenanceDatabase
	conn, err := pgx.ConnectConfig(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	if err := conn.QueryRow(ctx, sqlDatabaseExists, cfg.Database).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check database exists: %w", err)
	}
	if exists {
		return nil
	}
	if _, err := conn.Exec(ctx, fmt.Sprintf(sqlCreateDatabase, pgx.Identifier{cfg.Database}.Sanitize())); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	logger.Infow("accounts database created", "database", cfg.Database)
	return nil
}

// migrate - goose работает через database/sql поверх того же пула
func (s *PostgresDatabase) migrate() error {
	db := stdlib.OpenDBFromPool(s.Pool)
	defer db.Close()
	return Migrate(db, DialectPostgres)
}

func (s *PostgresDatabase) Close() error {
	s.Pool.Close()
	return nil
}
