package initialize

import (
	"server/config"
	"server/internal/database"
	"server/internal/logger"
)

// InitializeTables applies the embedded schema migrations and reports how
// many ran.
func InitializeTables(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Applying schema migrations")

	applied, err := db.RunMigrations()
	if err != nil {
		return log.Err("failed to apply schema migrations", err)
	}

	log.Info("Table initialization complete", "applied", applied)
	return nil
}
