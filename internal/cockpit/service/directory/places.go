package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Place is a colony site or address record.
type Place struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	FormattedAddress string    `json:"formatted_address"`
	City             string    `json:"city"`
	ColonySize       int       `json:"colony_size"`
	Notes            string    `json:"notes,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SearchPlaces finds active places whose name, address or city matches the
// query or any of the given area names. The areas list usually comes from
// the RegionExpander, so each element becomes one OR'd LIKE pattern.
func (s *Store) SearchPlaces(ctx context.Context, query string, areas []string) ([]*Place, error) {
	conds := []string{}
	args := []interface{}{}

	if norm := normalizeText(query); norm != "" {
		conds = append(conds, `(LOWER(name) LIKE ? OR LOWER(formatted_address) LIKE ?)`)
		p := "%" + norm + "%"
		args = append(args, p, p)
	}
	if len(areas) > 0 {
		sub := make([]string, 0, len(areas))
		for _, area := range areas {
			sub = append(sub, `LOWER(city) LIKE ? OR LOWER(formatted_address) LIKE ?`)
			p := "%" + normalizeText(area) + "%"
			args = append(args, p, p)
		}
		conds = append(conds, "("+strings.Join(sub, " OR ")+")")
	}

	where := "deleted_at IS NULL AND merged_into IS NULL"
	if len(conds) > 0 {
		where += " AND " + strings.Join(conds, " AND ")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, formatted_address, city, colony_size, notes, updated_at
		 FROM `+TablePlaces+` WHERE `+where+`
		 ORDER BY updated_at DESC LIMIT 25`, args...)
	if err != nil {
		return nil, fmt.Errorf("search places: %w", err)
	}
	defer rows.Close()

	var out []*Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPlace loads one place by id, including nothing soft-deleted.
func (s *Store) GetPlace(ctx context.Context, id string) (*Place, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, formatted_address, city, colony_size, notes, updated_at
		 FROM `+TablePlaces+`
		 WHERE id = ? AND deleted_at IS NULL AND merged_into IS NULL`, id)
	p, err := scanPlace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get place %q: %w", id, err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlace(r rowScanner) (*Place, error) {
	var p Place
	var updatedAt int64
	if err := r.Scan(&p.ID, &p.Name, &p.FormattedAddress, &p.City, &p.ColonySize, &p.Notes, &updatedAt); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}
