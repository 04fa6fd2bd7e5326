package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UpsertPlace inserts or replaces a place row. Used by the seeder and by
// tests; the ingest pipeline owns production writes.
func (s *Store) UpsertPlace(ctx context.Context, p *Place) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO `+TablePlaces+` (id, name, formatted_address, city, colony_size, notes, deleted_at, merged_into, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL, NULL, ?)`,
		p.ID, p.Name, p.FormattedAddress, p.City, p.ColonySize, p.Notes, p.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("upsert place: %w", err)
	}
	return nil
}

// UpsertPerson inserts or replaces a person row.
func (s *Store) UpsertPerson(ctx context.Context, p *Person) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO `+TablePeople+` (id, display_name, phone, email, role, deleted_at, merged_into, updated_at)
		 VALUES (?, ?, ?, ?, ?, NULL, NULL, ?)`,
		p.ID, p.DisplayName, NormalizePhone(p.Phone), p.Email, p.Role, p.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("upsert person: %w", err)
	}
	return nil
}

// UpsertCat inserts or replaces a cat row.
func (s *Store) UpsertCat(ctx context.Context, c *Cat) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	altered := 0
	if c.Altered {
		altered = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO `+TableCats+` (id, name, place_id, altered, microchip, notes, deleted_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL, ?)`,
		c.ID, c.Name, c.PlaceID, altered, c.Microchip, c.Notes, c.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("upsert cat: %w", err)
	}
	return nil
}

// UpsertAppointment inserts or replaces an appointment row.
func (s *Store) UpsertAppointment(ctx context.Context, a *Appointment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO `+TableAppointments+` (id, cat_id, person_id, clinic_date, kind, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.CatID, a.PersonID, a.ClinicDate.Unix(), a.Kind, a.Status)
	if err != nil {
		return fmt.Errorf("upsert appointment: %w", err)
	}
	return nil
}

// MarkPlaceDeleted soft-deletes a place. Kept for tests and admin tooling.
func (s *Store) MarkPlaceDeleted(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE `+TablePlaces+` SET deleted_at = ? WHERE id = ?`, time.Now().Unix(), id)
	return err
}

// MarkPersonMerged records that a person row was merged into another.
func (s *Store) MarkPersonMerged(ctx context.Context, id, into string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE `+TablePeople+` SET merged_into = ? WHERE id = ?`, into, id)
	return err
}

// Seed loads a small demonstration dataset for local development.
func (s *Store) Seed(ctx context.Context) error {
	places := []*Place{
		{ID: "pl-guerneville-mill", Name: "Mill Street colony", FormattedAddress: "14520 Mill St", City: "Guerneville", ColonySize: 9},
		{ID: "pl-sebastopol-barn", Name: "Hurlbut barn", FormattedAddress: "2301 Hurlbut Ave", City: "Sebastopol", ColonySize: 4},
		{ID: "pl-boyes-creek", Name: "Creekside trailer park", FormattedAddress: "17800 Sonoma Hwy", City: "Boyes Hot Springs", ColonySize: 12},
	}
	for _, p := range places {
		if err := s.UpsertPlace(ctx, p); err != nil {
			return err
		}
	}

	people := []*Person{
		{ID: "pe-myrna", DisplayName: "Myrna Chavez", Phone: "707-206-1094", Role: "requester"},
		{ID: "pe-dot", DisplayName: "Dot Whitaker", Phone: "707-555-0133", Role: "trapper"},
	}
	for _, p := range people {
		if err := s.UpsertPerson(ctx, p); err != nil {
			return err
		}
	}

	cats := []*Cat{
		{ID: "ct-smokey", Name: "Smokey", PlaceID: "pl-guerneville-mill", Altered: false},
		{ID: "ct-patch", Name: "Patch", PlaceID: "pl-boyes-creek", Altered: true, Microchip: "985112004512345"},
	}
	for _, c := range cats {
		if err := s.UpsertCat(ctx, c); err != nil {
			return err
		}
	}

	appt := &Appointment{
		ID:         "ap-smokey",
		CatID:      "ct-smokey",
		PersonID:   "pe-dot",
		ClinicDate: time.Now().AddDate(0, 0, 2),
		Kind:       "spay_neuter",
		Status:     "scheduled",
	}
	if err := s.UpsertAppointment(ctx, appt); err != nil {
		return err
	}

	_, err := s.CreateDraftRequest(ctx, "pl-guerneville-mill", "Unaltered toms near the market dumpsters", "high")
	return err
}
