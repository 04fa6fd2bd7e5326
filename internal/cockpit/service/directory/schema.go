package directory

import (
	"database/sql"
	"fmt"
)

const (
	TablePlaces        = "places"
	TablePeople        = "people"
	TableRequests      = "requests"
	TableCats          = "cats"
	TableAppointments  = "appointments"
	TableReminders     = "reminders"
	TableStaffMessages = "staff_messages"
	TableSavedLookups  = "saved_lookups"
	TableJournal       = "journal"
)

// RequestStatuses is the closed set of trapping-request states, as used by
// the intake pipeline.
var RequestStatuses = []string{
	"new", "needs_review", "active", "scheduled",
	"in_progress", "paused", "resolved", "closed",
}

// ValidRequestStatus reports whether s is a known request status.
func ValidRequestStatus(s string) bool {
	for _, v := range RequestStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// JournalKinds for the journal table.
const (
	JournalObservation  = "observation"
	JournalDiscrepancy  = "discrepancy"
	JournalUnanswerable = "unanswerable_question"
)

// EnsureSchema creates all required tables and indexes.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + TablePlaces + ` (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			formatted_address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			colony_size INTEGER NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			deleted_at INTEGER,
			merged_into TEXT,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TablePeople + ` (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'requester',
			deleted_at INTEGER,
			merged_into TEXT,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TableRequests + ` (
			id TEXT PRIMARY KEY,
			place_id TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'new',
			priority TEXT NOT NULL DEFAULT 'normal',
			assignee_id TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TableCats + ` (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			place_id TEXT NOT NULL DEFAULT '',
			altered INTEGER NOT NULL DEFAULT 0,
			microchip TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			deleted_at INTEGER,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TableAppointments + ` (
			id TEXT PRIMARY KEY,
			cat_id TEXT NOT NULL DEFAULT '',
			person_id TEXT NOT NULL DEFAULT '',
			clinic_date INTEGER NOT NULL,
			kind TEXT NOT NULL DEFAULT 'spay_neuter',
			status TEXT NOT NULL DEFAULT 'scheduled'
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TableReminders + ` (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			due_at INTEGER NOT NULL,
			assignee_id TEXT NOT NULL DEFAULT '',
			person_id TEXT NOT NULL DEFAULT '',
			place_id TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_by TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TableStaffMessages + ` (
			id TEXT PRIMARY KEY,
			recipient_id TEXT NOT NULL,
			sender TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TableSavedLookups + ` (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_by TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + TableJournal + ` (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			place_id TEXT NOT NULL DEFAULT '',
			entity_type TEXT NOT NULL DEFAULT '',
			entity_id TEXT NOT NULL DEFAULT '',
			note TEXT NOT NULL,
			created_by TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_place ON ` + TableRequests + `(place_id)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_status ON ` + TableRequests + `(status)`,
		`CREATE INDEX IF NOT EXISTS idx_cats_place ON ` + TableCats + `(place_id)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_date ON ` + TableAppointments + `(clinic_date)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_due ON ` + TableReminders + `(due_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
