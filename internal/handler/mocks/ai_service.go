package mocks

import (
	"context"

	"mentor-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock AIService
type AIService struct {
	mock.Mock
}

func (m *AIService) Chat(ctx context.Context, mentorID, menteeID uuid.UUID, message string) (string, error) {
	args := m.Called(ctx, mentorID, menteeID, message)
	return args.String(0), args.Error(1)
}

func (m *AIService) ProvocativeQuestions(ctx context.Context, mentorID, menteeID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, mentorID, menteeID)
	questions, _ := args.Get(0).([]string)
	return questions, args.Error(1)
}

func (m *AIService) RenewalPlan(ctx context.Context, mentorID, menteeID uuid.UUID) (string, error) {
	args := m.Called(ctx, mentorID, menteeID)
	return args.String(0), args.Error(1)
}

func (m *AIService) SessionSummary(ctx context.Context, mentorID, menteeID uuid.UUID, sessionIDs []uuid.UUID) (*service.SummaryResult, error) {
	args := m.Called(ctx, mentorID, menteeID, sessionIDs)
	result, _ := args.Get(0).(*service.SummaryResult)
	return result, args.Error(1)
}
