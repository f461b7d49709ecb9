package database

import (
	"fmt"

	"agenda/internal/repository"

	"gorm.io/gorm"
)

// Migrate creates or updates every table. On postgres it also installs the
// exclusion constraint that makes overlapping active bookings for one
// provider impossible regardless of application-level checks.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%[1]s') THEN
		ALTER TABLE bookings ADD CONSTRAINT %[1]s
			EXCLUDE USING gist (provider_user_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&)
			WHERE (deleted_at IS NULL);
	END IF;
END $$`, repository.BookingNoOverlapConstraint),
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("postgres constraints: %w", err)
		}
	}
	return nil
}
