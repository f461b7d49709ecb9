package repository

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// BookingNoOverlapConstraint is the postgres exclusion constraint that rejects
// overlapping active bookings for one provider.
const BookingNoOverlapConstraint = "bookings_no_overlap"

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Models lists every table model, in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&profileModel{},
		&serviceModel{},
		&availabilityModel{},
		&bookingModel{},
	}
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
