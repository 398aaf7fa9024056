package mocks

import (
	"context"

	"mentor-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock MenteeRepository
type MenteeRepository struct {
	mock.Mock
}

func (m *MenteeRepository) GetByIDAndMentor(ctx context.Context, menteeID, mentorID uuid.UUID) (*models.Mentee, error) {
	args := m.Called(ctx, menteeID, mentorID)
	mentee, _ := args.Get(0).(*models.Mentee)
	return mentee, args.Error(1)
}

// Mock ProfileRepository
type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.MentorProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.MentorProfile)
	return profile, args.Error(1)
}

// Mock SessionRepository
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) ListRecentByMentee(ctx context.Context, menteeID uuid.UUID, limit int) ([]models.Session, error) {
	args := m.Called(ctx, menteeID, limit)
	sessions, _ := args.Get(0).([]models.Session)
	return sessions, args.Error(1)
}

func (m *SessionRepository) CountByMentee(ctx context.Context, menteeID uuid.UUID) (int, int, error) {
	args := m.Called(ctx, menteeID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// Mock DeliverableRepository
type DeliverableRepository struct {
	mock.Mock
}

func (m *DeliverableRepository) ListByMentee(ctx context.Context, menteeID uuid.UUID) ([]models.Deliverable, error) {
	args := m.Called(ctx, menteeID)
	deliverables, _ := args.Get(0).([]models.Deliverable)
	return deliverables, args.Error(1)
}

// Mock NoteRepository
type NoteRepository struct {
	mock.Mock
}

func (m *NoteRepository) ListRecentByMentee(ctx context.Context, menteeID uuid.UUID, limit int) ([]models.Note, error) {
	args := m.Called(ctx, menteeID, limit)
	notes, _ := args.Get(0).([]models.Note)
	return notes, args.Error(1)
}

// Mock ChatRepository
type ChatRepository struct {
	mock.Mock
}

func (m *ChatRepository) Append(ctx context.Context, turn *models.ChatTurn) error {
	args := m.Called(ctx, turn)
	return args.Error(0)
}

func (m *ChatRepository) ListRecentByMentee(ctx context.Context, menteeID uuid.UUID, limit int) ([]models.ChatTurn, error) {
	args := m.Called(ctx, menteeID, limit)
	turns, _ := args.Get(0).([]models.ChatTurn)
	return turns, args.Error(1)
}

// Mock InsightRepository
type InsightRepository struct {
	mock.Mock
}

func (m *InsightRepository) Create(ctx context.Context, insight *models.Insight) error {
	args := m.Called(ctx, insight)
	return args.Error(0)
}

// Mock PromptRepository
type PromptRepository struct {
	mock.Mock
}

func (m *PromptRepository) GetActiveByName(ctx context.Context, name string) (*models.PromptTemplate, error) {
	args := m.Called(ctx, name)
	template, _ := args.Get(0).(*models.PromptTemplate)
	return template, args.Error(1)
}

// Mock TokenRepository
type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	args := m.Called(ctx, accessUUID)
	userID, _ := args.Get(0).(uuid.UUID)
	return userID, args.Error(1)
}
