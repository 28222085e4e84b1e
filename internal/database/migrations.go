package database

import (
	"embed"
	logg "server/internal/logger"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies the embedded schema migrations. The reports schema
// includes a partial unique index on active (employee_code, report_date)
// pairs, so a duplicate slipping past the pre-save check fails at the store.
func (s *DB) RunMigrations() (int, error) {
	log := logg.New("database").Function("RunMigrations")

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return 0, log.Err("failed to get database handle for migrations", err)
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", source, migrate.Up)
	if err != nil {
		return applied, log.Err("failed to apply migrations", err, "applied", applied)
	}

	log.Info("Migrations applied", "count", applied)
	return applied, nil
}
