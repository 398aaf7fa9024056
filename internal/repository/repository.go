package repository

import (
	"context"

	"mentor-server/internal/models"

	"github.com/google/uuid"
)

// MenteeRepository reads mentee records scoped to their owning mentor.
type MenteeRepository interface {
	// GetByIDAndMentor returns the mentee only when it belongs to mentorID.
	// A mentee owned by another mentor is indistinguishable from a missing
	// one: both return models.ErrMenteeNotFound.
	GetByIDAndMentor(ctx context.Context, menteeID, mentorID uuid.UUID) (*models.Mentee, error)
}

// ProfileRepository reads mentor profile records.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.MentorProfile, error)
}

// SessionRepository reads session records for a mentee.
type SessionRepository interface {
	// ListRecentByMentee returns up to limit most recent sessions,
	// newest first.
	ListRecentByMentee(ctx context.Context, menteeID uuid.UUID, limit int) ([]models.Session, error)
	// CountByMentee returns the number of held sessions and the total
	// number of non-cancelled sessions.
	CountByMentee(ctx context.Context, menteeID uuid.UUID) (held int, total int, err error)
}

// DeliverableRepository reads deliverable records for a mentee.
type DeliverableRepository interface {
	ListByMentee(ctx context.Context, menteeID uuid.UUID) ([]models.Deliverable, error)
}

// NoteRepository reads free-form mentor notes for a mentee.
type NoteRepository interface {
	// ListRecentByMentee returns up to limit most recent notes, newest first.
	ListRecentByMentee(ctx context.Context, menteeID uuid.UUID, limit int) ([]models.Note, error)
}

// ChatRepository stores and reads chat turns between a mentor and the
// assistant about a mentee.
type ChatRepository interface {
	Append(ctx context.Context, turn *models.ChatTurn) error
	// ListRecentByMentee returns up to limit most recent turns in
	// chronological (oldest first) order.
	ListRecentByMentee(ctx context.Context, menteeID uuid.UUID, limit int) ([]models.ChatTurn, error)
}

// InsightRepository stores generated insights. Insights are write-only
// from the generation path: every request regenerates, nothing is read back.
type InsightRepository interface {
	Create(ctx context.Context, insight *models.Insight) error
}

// PromptRepository reads prompt templates.
type PromptRepository interface {
	// GetActiveByName returns the single active template with the given
	// name, or models.ErrNotFound when none is active.
	GetActiveByName(ctx context.Context, name string) (*models.PromptTemplate, error)
}

// TokenRepository resolves access tokens stored by the auth service.
type TokenRepository interface {
	// GetUserIDByAccessUUID returns the owner of the access token, or
	// models.ErrTokenNotFound when the token is revoked or expired
	// server-side.
	GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error)
}
