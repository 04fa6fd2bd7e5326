package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request is a trapping request case.
type Request struct {
	ID         string    `json:"id"`
	PlaceID    string    `json:"place_id,omitempty"`
	Summary    string    `json:"summary"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	AssigneeID string    `json:"assignee_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RequestFilter narrows SearchRequests. Zero fields are ignored.
type RequestFilter struct {
	Query  string
	Status string
	Areas  []string
}

// SearchRequests finds requests matching the filter, newest first. Area
// names match through the request's place record.
func (s *Store) SearchRequests(ctx context.Context, f RequestFilter) ([]*Request, error) {
	conds := []string{"1=1"}
	args := []interface{}{}

	if norm := normalizeText(f.Query); norm != "" {
		conds = append(conds, `LOWER(r.summary) LIKE ?`)
		args = append(args, "%"+norm+"%")
	}
	if f.Status != "" {
		conds = append(conds, `r.status = ?`)
		args = append(args, f.Status)
	}
	if len(f.Areas) > 0 {
		sub := make([]string, 0, len(f.Areas))
		for _, area := range f.Areas {
			sub = append(sub, `LOWER(p.city) LIKE ? OR LOWER(p.formatted_address) LIKE ?`)
			pat := "%" + normalizeText(area) + "%"
			args = append(args, pat, pat)
		}
		conds = append(conds, "("+strings.Join(sub, " OR ")+")")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.place_id, r.summary, r.status, r.priority, r.assignee_id, r.created_at, r.updated_at
		 FROM `+TableRequests+` r
		 LEFT JOIN `+TablePlaces+` p ON p.id = r.place_id
		 WHERE `+strings.Join(conds, " AND ")+`
		 ORDER BY r.updated_at DESC LIMIT 25`, args...)
	if err != nil {
		return nil, fmt.Errorf("search requests: %w", err)
	}
	defer rows.Close()

	var out []*Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRequest loads one request by id.
func (s *Store) GetRequest(ctx context.Context, id string) (*Request, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, place_id, summary, status, priority, assignee_id, created_at, updated_at
		 FROM `+TableRequests+` WHERE id = ?`, id)
	r, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request %q: %w", id, err)
	}
	return r, nil
}

// RequestsForPlace lists requests attached to a place, newest first.
func (s *Store) RequestsForPlace(ctx context.Context, placeID string) ([]*Request, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, place_id, summary, status, priority, assignee_id, created_at, updated_at
		 FROM `+TableRequests+` WHERE place_id = ?
		 ORDER BY updated_at DESC LIMIT 25`, placeID)
	if err != nil {
		return nil, fmt.Errorf("requests for place %q: %w", placeID, err)
	}
	defer rows.Close()

	var out []*Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CreateDraftRequest inserts a new request in status "new" and returns it.
func (s *Store) CreateDraftRequest(ctx context.Context, placeID, summary, priority string) (*Request, error) {
	if priority == "" {
		priority = "normal"
	}
	now := time.Now()
	r := &Request{
		ID:        uuid.New().String(),
		PlaceID:   placeID,
		Summary:   summary,
		Status:    "new",
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+TableRequests+` (id, place_id, summary, status, priority, assignee_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, '', ?, ?)`,
		r.ID, r.PlaceID, r.Summary, r.Status, r.Priority, now.Unix(), now.Unix())
	if err != nil {
		return nil, fmt.Errorf("create draft request: %w", err)
	}
	return r, nil
}

// UpdateRequestStatus sets a request's status. The caller validates the
// status against RequestStatuses first.
func (s *Store) UpdateRequestStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE `+TableRequests+` SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("request %q not found", id)
	}
	return nil
}

// ReassignRequest sets a request's assignee.
func (s *Store) ReassignRequest(ctx context.Context, id, assigneeID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE `+TableRequests+` SET assignee_id = ?, updated_at = ? WHERE id = ?`,
		assigneeID, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("reassign request: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("request %q not found", id)
	}
	return nil
}

func scanRequest(r rowScanner) (*Request, error) {
	var req Request
	var createdAt, updatedAt int64
	if err := r.Scan(&req.ID, &req.PlaceID, &req.Summary, &req.Status, &req.Priority, &req.AssigneeID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	req.CreatedAt = time.Unix(createdAt, 0)
	req.UpdatedAt = time.Unix(updatedAt, 0)
	return &req, nil
}
