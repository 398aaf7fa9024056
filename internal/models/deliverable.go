package models

import (
	"time"

	"github.com/google/uuid"
)

// Deliverable statuses.
const (
	DeliverableStatusPending    = "pending"
	DeliverableStatusInProgress = "in_progress"
	DeliverableStatusCompleted  = "completed"
	DeliverableStatusCancelled  = "cancelled"
)

// Deliverable is a commitment a mentee agreed to produce.
type Deliverable struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	MenteeID  uuid.UUID  `db:"mentee_id" json:"menteeId"`
	Title     string     `db:"title" json:"title"`
	Status    string     `db:"status" json:"status"`
	DueAt     *time.Time `db:"due_at" json:"dueAt,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}

// IsPending reports whether the deliverable still needs work.
func (d *Deliverable) IsPending() bool {
	return d.Status != DeliverableStatusCompleted && d.Status != DeliverableStatusCancelled
}

// Note is a free-text observation attached to a mentee.
type Note struct {
	ID        uuid.UUID `db:"id" json:"id"`
	MenteeID  uuid.UUID `db:"mentee_id" json:"menteeId"`
	AuthorID  uuid.UUID `db:"author_id" json:"authorId"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
