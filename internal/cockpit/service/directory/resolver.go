package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// EntityType names a resolvable record type.
type EntityType string

const (
	EntityPlace   EntityType = "place"
	EntityPerson  EntityType = "person"
	EntityRequest EntityType = "request"
	EntityCat     EntityType = "cat"
)

// Candidate is the single best match for a free-text reference.
type Candidate struct {
	Type      EntityType `json:"type"`
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Resolve matches free text to the single best record of the given type,
// or nil when nothing matches. Matching is case-insensitive against the
// type's display name, formatted address or identifier; soft-deleted and
// merged-away records are excluded. Ranking: exact full match first, then
// any substring match, ties broken by most-recently-updated.
//
// Only the top candidate is returned; there is no disambiguation path
// when several records match plausibly. Callers that need a list must use
// the search queries instead.
func (s *Store) Resolve(ctx context.Context, entityType EntityType, freeText string) (*Candidate, error) {
	norm := normalizeText(freeText)
	if norm == "" {
		return nil, nil
	}

	var query string
	switch entityType {
	case EntityPlace:
		query = `SELECT id, name || CASE WHEN formatted_address != '' THEN ' (' || formatted_address || ')' ELSE '' END, updated_at
			FROM ` + TablePlaces + `
			WHERE deleted_at IS NULL AND merged_into IS NULL
			  AND (LOWER(name) LIKE ? OR LOWER(formatted_address) LIKE ?)
			ORDER BY CASE WHEN LOWER(name) = ? OR LOWER(formatted_address) = ? THEN 0 ELSE 1 END,
				updated_at DESC
			LIMIT 1`
	case EntityPerson:
		query = `SELECT id, display_name, updated_at
			FROM ` + TablePeople + `
			WHERE deleted_at IS NULL AND merged_into IS NULL
			  AND (LOWER(display_name) LIKE ? OR phone LIKE ?)
			ORDER BY CASE WHEN LOWER(display_name) = ? OR phone = ? THEN 0 ELSE 1 END,
				updated_at DESC
			LIMIT 1`
	case EntityRequest:
		query = `SELECT id, summary, updated_at
			FROM ` + TableRequests + `
			WHERE (LOWER(summary) LIKE ? OR LOWER(id) LIKE ?)
			ORDER BY CASE WHEN LOWER(summary) = ? OR LOWER(id) = ? THEN 0 ELSE 1 END,
				updated_at DESC
			LIMIT 1`
	case EntityCat:
		query = `SELECT id, name, updated_at
			FROM ` + TableCats + `
			WHERE deleted_at IS NULL
			  AND (LOWER(name) LIKE ? OR microchip LIKE ?)
			ORDER BY CASE WHEN LOWER(name) = ? OR microchip = ? THEN 0 ELSE 1 END,
				updated_at DESC
			LIMIT 1`
	default:
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}

	// People may be referenced by phone number; compare bare digits then.
	secondary := norm
	if entityType == EntityPerson {
		if digits := NormalizePhone(freeText); len(digits) >= 7 {
			secondary = digits
		}
	}

	pattern := "%" + norm + "%"
	secondaryPattern := "%" + secondary + "%"

	row := s.db.QueryRowContext(ctx, query, pattern, secondaryPattern, norm, secondary)

	var c Candidate
	var updatedAt int64
	if err := row.Scan(&c.ID, &c.Label, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve %s %q: %w", entityType, freeText, err)
	}
	c.Type = entityType
	c.UpdatedAt = time.Unix(updatedAt, 0)
	return &c, nil
}
