package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Person is a requester, volunteer or staff member.
type Person struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchPeople finds active people by name fragment or phone digits.
func (s *Store) SearchPeople(ctx context.Context, query string) ([]*Person, error) {
	norm := normalizeText(query)
	digits := NormalizePhone(query)
	if norm == "" && digits == "" {
		return nil, nil
	}
	if digits == "" {
		digits = norm
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, display_name, phone, email, role, updated_at
		 FROM `+TablePeople+`
		 WHERE deleted_at IS NULL AND merged_into IS NULL
		   AND (LOWER(display_name) LIKE ? OR phone LIKE ?)
		 ORDER BY updated_at DESC LIMIT 25`,
		"%"+norm+"%", "%"+digits+"%")
	if err != nil {
		return nil, fmt.Errorf("search people: %w", err)
	}
	defer rows.Close()

	var out []*Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPerson loads one active person by id.
func (s *Store) GetPerson(ctx context.Context, id string) (*Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, phone, email, role, updated_at
		 FROM `+TablePeople+`
		 WHERE id = ? AND deleted_at IS NULL AND merged_into IS NULL`, id)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get person %q: %w", id, err)
	}
	return p, nil
}

func scanPerson(r rowScanner) (*Person, error) {
	var p Person
	var updatedAt int64
	if err := r.Scan(&p.ID, &p.DisplayName, &p.Phone, &p.Email, &p.Role, &updatedAt); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}
