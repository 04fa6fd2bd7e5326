package directory

import (
	"context"
	"fmt"
	"time"
)

// Cat is an individual animal record.
type Cat struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PlaceID   string    `json:"place_id,omitempty"`
	Altered   bool      `json:"altered"`
	Microchip string    `json:"microchip,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Appointment is a clinic appointment for a cat.
type Appointment struct {
	ID         string    `json:"id"`
	CatID      string    `json:"cat_id,omitempty"`
	PersonID   string    `json:"person_id,omitempty"`
	ClinicDate time.Time `json:"clinic_date"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
}

// SearchCats finds active cats by name or microchip fragment.
func (s *Store) SearchCats(ctx context.Context, query string) ([]*Cat, error) {
	norm := normalizeText(query)
	if norm == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, place_id, altered, microchip, notes, updated_at
		 FROM `+TableCats+`
		 WHERE deleted_at IS NULL AND (LOWER(name) LIKE ? OR microchip LIKE ?)
		 ORDER BY updated_at DESC LIMIT 25`,
		"%"+norm+"%", "%"+norm+"%")
	if err != nil {
		return nil, fmt.Errorf("search cats: %w", err)
	}
	defer rows.Close()

	var out []*Cat
	for rows.Next() {
		var c Cat
		var altered int
		var updatedAt int64
		if err := rows.Scan(&c.ID, &c.Name, &c.PlaceID, &altered, &c.Microchip, &c.Notes, &updatedAt); err != nil {
			return nil, err
		}
		c.Altered = altered != 0
		c.UpdatedAt = time.Unix(updatedAt, 0)
		out = append(out, &c)
	}
	return out, rows.Err()
}

// CatsForPlace lists active cats recorded at a place.
func (s *Store) CatsForPlace(ctx context.Context, placeID string) ([]*Cat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, place_id, altered, microchip, notes, updated_at
		 FROM `+TableCats+`
		 WHERE deleted_at IS NULL AND place_id = ?
		 ORDER BY updated_at DESC LIMIT 50`, placeID)
	if err != nil {
		return nil, fmt.Errorf("cats for place %q: %w", placeID, err)
	}
	defer rows.Close()

	var out []*Cat
	for rows.Next() {
		var c Cat
		var altered int
		var updatedAt int64
		if err := rows.Scan(&c.ID, &c.Name, &c.PlaceID, &altered, &c.Microchip, &c.Notes, &updatedAt); err != nil {
			return nil, err
		}
		c.Altered = altered != 0
		c.UpdatedAt = time.Unix(updatedAt, 0)
		out = append(out, &c)
	}
	return out, rows.Err()
}

// UpcomingAppointments lists appointments scheduled within the next `days`
// days, soonest first.
func (s *Store) UpcomingAppointments(ctx context.Context, days int) ([]*Appointment, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	until := now.AddDate(0, 0, days)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, cat_id, person_id, clinic_date, kind, status
		 FROM `+TableAppointments+`
		 WHERE clinic_date >= ? AND clinic_date < ? AND status != 'cancelled'
		 ORDER BY clinic_date ASC LIMIT 50`,
		now.Unix(), until.Unix())
	if err != nil {
		return nil, fmt.Errorf("upcoming appointments: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		var a Appointment
		var clinicDate int64
		if err := rows.Scan(&a.ID, &a.CatID, &a.PersonID, &clinicDate, &a.Kind, &a.Status); err != nil {
			return nil, err
		}
		a.ClinicDate = time.Unix(clinicDate, 0)
		out = append(out, &a)
	}
	return out, rows.Err()
}
