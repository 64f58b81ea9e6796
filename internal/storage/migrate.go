package storage

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/pressly/goose/v3"
)

// Диалекты миграций
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

func migrationsDir(dialect string) string {
	if dialect == DialectPostgres {
		return "migrations/postgres"
	}
	return "migrations/sqlite"
}

func prepareGoose(dialect string) error {
	// используется для внутренней файловой системы (загруженные ресурсы)
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(logger.MigrationLogger{})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose set dialect error: %w ", err)
	}
	return nil
}

// Migrate - применение всех миграций схемы
func Migrate(db *sql.DB, dialect string) error {
	if err := prepareGoose(dialect); err != nil {
		return err
	}
	if err := goose.Up(db, migrationsDir(dialect)); err != nil {
		return fmt.Errorf("goose run migrations error:  %w ", err)
	}
	return nil
}

// MigrateTo - применение миграций до указанной версии
func MigrateTo(db *sql.DB, dialect string, version int64) error {
	if err := prepareGoose(dialect); err != nil {
		return err
	}
	if err := goose.UpTo(db, migrationsDir(dialect), version); err != nil {
		return fmt.Errorf("goose run migrations error:  %w ", err)
	}
	return nil
}
