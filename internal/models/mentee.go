package models

import (
	"time"

	"github.com/google/uuid"
)

// Mentee statuses.
const (
	MenteeStatusActive   = "active"
	MenteeStatusPaused   = "paused"
	MenteeStatusArchived = "archived"
)

// Mentee is a person tracked by a mentor.
type Mentee struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	MentorID    uuid.UUID  `db:"mentor_id" json:"mentorId"`
	Name        string     `db:"name" json:"name"`
	Goal        string     `db:"goal" json:"goal"`
	PlanEndDate *time.Time `db:"plan_end_date" json:"planEndDate,omitempty"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// MentorProfile carries per-mentor preferences used during prompt assembly.
type MentorProfile struct {
	UserID         uuid.UUID `db:"user_id" json:"userId"`
	DisplayName    string    `db:"display_name" json:"displayName"`
	TonePreference string    `db:"tone_preference" json:"tonePreference"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
