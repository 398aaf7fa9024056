package models

import (
	"time"

	"github.com/google/uuid"
)

// Session statuses.
const (
	SessionStatusScheduled = "scheduled"
	SessionStatusHeld      = "held"
	SessionStatusCancelled = "cancelled"
)

// Session is a single mentoring session with free-text notes.
type Session struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	MenteeID    uuid.UUID  `db:"mentee_id" json:"menteeId"`
	ScheduledAt time.Time  `db:"scheduled_at" json:"scheduledAt"`
	HeldAt      *time.Time `db:"held_at" json:"heldAt,omitempty"`
	Notes       string     `db:"notes" json:"notes"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}
