package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat turn roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatTurn is one message in a mentor's AI chat about a mentee.
// Turns are append-only and ordered by CreatedAt ascending.
type ChatTurn struct {
	ID        uuid.UUID `db:"id" json:"id"`
	MenteeID  uuid.UUID `db:"mentee_id" json:"menteeId"`
	MentorID  uuid.UUID `db:"mentor_id" json:"mentorId"`
	Role      string    `db:"role" json:"role"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
