package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reminder is a dated follow-up created through the assistant.
type Reminder struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	DueAt      time.Time `json:"due_at"`
	AssigneeID string    `json:"assignee_id,omitempty"`
	PersonID   string    `json:"person_id,omitempty"`
	PlaceID    string    `json:"place_id,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateReminder inserts a reminder and returns it.
func (s *Store) CreateReminder(ctx context.Context, r *Reminder) (*Reminder, error) {
	r.ID = uuid.New().String()
	r.CreatedAt = time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+TableReminders+` (id, title, due_at, assignee_id, person_id, place_id, notes, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.DueAt.Unix(), r.AssigneeID, r.PersonID, r.PlaceID, r.Notes, r.CreatedBy, r.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	return r, nil
}

// ListReminders returns pending reminders, soonest due first, optionally
// narrowed to one assignee.
func (s *Store) ListReminders(ctx context.Context, assigneeID string) ([]*Reminder, error) {
	query := `SELECT id, title, due_at, assignee_id, person_id, place_id, notes, created_by, created_at
		 FROM ` + TableReminders
	args := []interface{}{}
	if assigneeID != "" {
		query += ` WHERE assignee_id = ?`
		args = append(args, assigneeID)
	}
	query += ` ORDER BY due_at ASC LIMIT 50`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var out []*Reminder
	for rows.Next() {
		var r Reminder
		var dueAt, createdAt int64
		if err := rows.Scan(&r.ID, &r.Title, &dueAt, &r.AssigneeID, &r.PersonID, &r.PlaceID, &r.Notes, &r.CreatedBy, &createdAt); err != nil {
			return nil, err
		}
		r.DueAt = time.Unix(dueAt, 0)
		r.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, &r)
	}
	return out, rows.Err()
}

// SendStaffMessage records an inter-staff message for the recipient's inbox.
func (s *Store) SendStaffMessage(ctx context.Context, recipientID, sender, body string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+TableStaffMessages+` (id, recipient_id, sender, body, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, recipientID, sender, body, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("send staff message: %w", err)
	}
	return id, nil
}

// SaveLookup persists a labeled tool-result payload for later reference.
func (s *Store) SaveLookup(ctx context.Context, label, payload, createdBy string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+TableSavedLookups+` (id, label, payload, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, label, payload, createdBy, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("save lookup: %w", err)
	}
	return id, nil
}

// JournalEntry is an observation, discrepancy or unanswerable-question log
// line written by the assistant.
type JournalEntry struct {
	Kind       string
	PlaceID    string
	EntityType string
	EntityID   string
	Note       string
	CreatedBy  string
}

// AddJournalEntry appends a journal row.
func (s *Store) AddJournalEntry(ctx context.Context, e *JournalEntry) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+TableJournal+` (id, kind, place_id, entity_type, entity_id, note, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, e.Kind, e.PlaceID, e.EntityType, e.EntityID, e.Note, e.CreatedBy, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("add journal entry: %w", err)
	}
	return id, nil
}
