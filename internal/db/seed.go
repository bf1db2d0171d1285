package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with demo photos for trying out the
// dispatch flow without a capture station.
func SeedFixtures(database *sql.DB) (int, error) {
	photos := []struct{ id, ref, name, role string }{
		{"8b1d0c2e-0000-4000-8000-000000000001", "https://images.example.com/demo/ada.jpg", "Ada Lovelace", "Speaker"},
		{"8b1d0c2e-0000-4000-8000-000000000002", "captures/demo/grace.jpg", "Grace Hopper", "Attendee"},
		{"8b1d0c2e-0000-4000-8000-000000000003", "captures/demo/anonymous.jpg", "", ""},
	}

	inserted := 0
	for _, p := range photos {
		res, err := database.Exec(
			"INSERT OR IGNORE INTO photos (id, image_ref, name, role) VALUES (?, ?, ?, ?)",
			p.id, p.ref, p.name, p.role,
		)
		if err != nil {
			return inserted, fmt.Errorf("seed photos: %w", err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}
	return inserted, nil
}
