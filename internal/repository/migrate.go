package repository

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// Migrate creates the tables and the dialect-specific overlap guard on
// active reservations.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&roomGroupModel{}, &roomModel{}, &reservationModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	active := "'" + strings.Join(activeStatuses(), "','") + "'"

	switch db.Dialector.Name() {
	case "postgres":
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
			return fmt.Errorf("enable btree_gist: %w", err)
		}
		stmt := fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap') THEN
		ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
			EXCLUDE USING gist (room_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&)
			WHERE (status IN (%s) AND deleted_at IS NULL);
	END IF;
END $$;`, active)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create overlap constraint: %w", err)
		}
	case "sqlite":
		// no range types; this only catches two active bookings with the same start
		stmt := fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_active_start
ON reservations (room_id, start_time) WHERE status IN (%s) AND deleted_at IS NULL`, active)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create active start index: %w", err)
		}
	default:
		log.Printf("migrate dialect=%s overlap_guard=row_lock_only", db.Dialector.Name())
	}
	return nil
}
