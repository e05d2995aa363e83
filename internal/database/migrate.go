package database

import (
	"embed"
	"time"

	migrate "github.com/rubenv/sql-migrate"
)

const migrationDialect = "sqlite3"

//go:embed migrations/*.sql
var migrationFiles embed.FS

type MigrationStatus struct {
	ID        string
	Applied   bool
	AppliedAt *time.Time
}

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// Migrate applies every pending migration and returns how many ran.
func (s *DB) Migrate() (int, error) {
	log := s.log.Function("Migrate")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return 0, log.Err("failed to get database from GORM", err)
	}

	applied, err := migrate.Exec(sqlDB, migrationDialect, migrationSource(), migrate.Up)
	if err != nil {
		return applied, log.Err("failed to apply migrations", err, "applied", applied)
	}

	return applied, nil
}

// MigrationStatus lists every known migration in order with its applied state.
func (s *DB) MigrationStatus() ([]MigrationStatus, error) {
	log := s.log.Function("MigrationStatus")

	sqlDB, err := s.SQL.DB()
	if err != nil {
		return nil, log.Err("failed to get database from GORM", err)
	}

	migrations, err := migrationSource().FindMigrations()
	if err != nil {
		return nil, log.Err("failed to read migrations", err)
	}

	records, err := migrate.GetMigrationRecords(sqlDB, migrationDialect)
	if err != nil {
		return nil, log.Err("failed to read migration records", err)
	}

	appliedAt := make(map[string]time.Time, len(records))
	for _, record := range records {
		appliedAt[record.Id] = record.AppliedAt
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		status := MigrationStatus{ID: m.Id}
		if at, ok := appliedAt[m.Id]; ok {
			status.Applied = true
			status.AppliedAt = &at
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}
