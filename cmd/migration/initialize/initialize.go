package initialize

import (
	"carelog/internal/database"
	"carelog/internal/logger"
)

// InitializeTables applies pending schema migrations and logs the state of
// every known migration afterwards.
func InitializeTables(db database.DB, log logger.Logger) ([]database.MigrationStatus, error) {
	log = log.Function("InitializeTables")
	log.Info("Applying schema migrations")

	applied, err := db.Migrate()
	if err != nil {
		return nil, log.Err("failed to apply migrations", err)
	}

	statuses, err := db.MigrationStatus()
	if err != nil {
		return nil, log.Err("failed to read migration status", err)
	}

	for _, status := range statuses {
		log.Debug("Migration", "id", status.ID, "applied", status.Applied, "appliedAt", status.AppliedAt)
	}

	log.Info("Table initialization complete", "applied", applied, "known", len(statuses))
	return statuses, nil
}
