package service

import (
	"context"
	"errors"
	"testing"

	"mentor-server/internal/models"
	repomocks "mentor-server/internal/repository/mocks"
	svcmocks "mentor-server/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serviceFixture struct {
	*builderFixture
	chatClient    *svcmocks.ChatGenerator
	messageClient *svcmocks.MessageGenerator
	insightRepo   *repomocks.InsightRepository
	svc           AIService
}

func newServiceFixture() *serviceFixture {
	bf := newBuilderFixture()
	f := &serviceFixture{
		builderFixture: bf,
		chatClient:     new(svcmocks.ChatGenerator),
		messageClient:  new(svcmocks.MessageGenerator),
		insightRepo:    new(repomocks.InsightRepository),
	}
	f.svc = NewAIService(bf.builder, f.chatClient, f.messageClient, bf.chatRepo, f.insightRepo, zap.NewNop())
	return f
}

func TestAIServiceChat(t *testing.T) {
	mentorID := uuid.New()
	menteeID := uuid.New()
	mentee := &models.Mentee{ID: menteeID, MentorID: mentorID, Name: "Alex", Goal: "Grow"}

	t.Run("Escapes the reply and writes back both turns", func(t *testing.T) {
		f := newServiceFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.stubHappyFanOut(mentorID, menteeID)
		f.chatClient.On("Generate", mock.Anything, mock.Anything, "How is Alex doing?", chatMaxTokens, float32(chatTemperature)).
			Return("Use <b>bold</b> moves", nil)
		f.chatRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		reply, err := f.svc.Chat(context.Background(), mentorID, menteeID, "How is Alex doing?")
		require.NoError(t, err)
		assert.Equal(t, "Use &lt;b&gt;bold&lt;/b&gt; moves", reply)
		f.chatRepo.AssertNumberOfCalls(t, "Append", 2)
	})

	t.Run("Write-back failure still returns the reply", func(t *testing.T) {
		f := newServiceFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.stubHappyFanOut(mentorID, menteeID)
		f.chatClient.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("all good", nil)
		f.chatRepo.On("Append", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		reply, err := f.svc.Chat(context.Background(), mentorID, menteeID, "status?")
		require.NoError(t, err)
		assert.Equal(t, "all good", reply)
	})

	t.Run("Provider failure maps to ErrProvider", func(t *testing.T) {
		f := newServiceFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.stubHappyFanOut(mentorID, menteeID)
		f.chatClient.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("429 quota exceeded"))

		_, err := f.svc.Chat(context.Background(), mentorID, menteeID, "status?")
		assert.ErrorIs(t, err, models.ErrProvider)
		f.chatRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("Empty message is invalid input", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.svc.Chat(context.Background(), mentorID, menteeID, "   ")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("Unknown mentee propagates not found", func(t *testing.T) {
		f := newServiceFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).
			Return(nil, models.ErrMenteeNotFound)

		_, err := f.svc.Chat(context.Background(), mentorID, menteeID, "hello")
		assert.ErrorIs(t, err, models.ErrMenteeNotFound)
	})
}

func TestAIServiceProvocativeQuestions(t *testing.T) {
	mentorID := uuid.New()
	menteeID := uuid.New()
	mentee := &models.Mentee{ID: menteeID, MentorID: mentorID, Name: "Alex", Goal: "Grow"}

	t.Run("Parses numbered questions and stores an insight", func(t *testing.T) {
		f := newServiceFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.stubHappyFanOut(mentorID, menteeID)
		f.chatClient.On("Generate", mock.Anything, mock.Anything, mock.Anything, questionsMaxTokens, float32(questionsTemperature)).
			Return("1. A\n2. B\n3. C", nil)
		f.insightRepo.On("Create", mock.Anything, mock.MatchedBy(func(i *models.Insight) bool {
			return i.InsightType == models.InsightProvocativeQuestion && i.MenteeID == menteeID
		})).Return(nil)

		questions, err := f.svc.ProvocativeQuestions(context.Background(), mentorID, menteeID)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, questions)
		f.insightRepo.AssertExpectations(t)
	})

	t.Run("Insight write failure is swallowed", func(t *testing.T) {
		f := newServiceFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.stubHappyFanOut(mentorID, menteeID)
		f.chatClient.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("1. Only one", nil)
		f.insightRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		questions, err := f.svc.ProvocativeQuestions(context.Background(), mentorID, menteeID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Only one"}, questions)
	})
}

func TestAIServiceRenewalPlan(t *testing.T) {
	mentorID := uuid.New()
	menteeID := uuid.New()
	mentee := &models.Mentee{ID: menteeID, MentorID: mentorID, Name: "Alex", Goal: "Grow"}

	t.Run("Uses the message-shape client and returns the raw plan", func(t *testing.T) {
		f := newServiceFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.stubHappyFanOut(mentorID, menteeID)
		f.messageClient.On("Generate", mock.Anything, mock.Anything, mock.Anything, renewalMaxTokens).
			Return("Renew for 3 months.\nFocus on delivery.", nil)
		f.insightRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		plan, err := f.svc.RenewalPlan(context.Background(), mentorID, menteeID)
		require.NoError(t, err)
		assert.Equal(t, "Renew for 3 months.\nFocus on delivery.", plan)
		f.chatClient.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAIServiceSessionSummary(t *testing.T) {
	mentorID := uuid.New()
	menteeID := uuid.New()
	mentee := &models.Mentee{ID: menteeID, MentorID: mentorID, Name: "Alex", Goal: "Grow"}

	t.Run("Zero sessions returns the canned payload without a provider call", func(t *testing.T) {
		f := newServiceFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.stubHappyFanOut(mentorID, menteeID)

		result, err := f.svc.SessionSummary(context.Background(), mentorID, menteeID, nil)
		require.NoError(t, err)
		assert.Equal(t, noSessionsSummary, result.Summary)
		assert.Empty(t, result.Highlights)
		f.chatClient.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.insightRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Parses summary and highlights and stores an insight", func(t *testing.T) {
		f := newServiceFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.profileRepo.On("GetByUserID", mock.Anything, mentorID).Return(nil, models.ErrNotFound)
		f.sessionRepo.On("ListRecentByMentee", mock.Anything, menteeID, mock.Anything).
			Return([]models.Session{{MenteeID: menteeID, Notes: "talked about scope"}}, nil)
		f.sessionRepo.On("CountByMentee", mock.Anything, menteeID).Return(1, 1, nil)
		f.deliverableRepo.On("ListByMentee", mock.Anything, menteeID).Return([]models.Deliverable{}, nil)
		f.noteRepo.On("ListRecentByMentee", mock.Anything, menteeID, mock.Anything).Return([]models.Note{}, nil)
		f.promptRepo.On("GetActiveByName", mock.Anything, KindSummary).Return(nil, models.ErrNotFound)
		f.chatClient.On("Generate", mock.Anything, mock.Anything, mock.Anything, summaryMaxTokens, float32(summaryTemperature)).
			Return("Good week.\n- shipped", nil)
		f.insightRepo.On("Create", mock.Anything, mock.MatchedBy(func(i *models.Insight) bool {
			return i.InsightType == models.InsightSessionSummary
		})).Return(nil)

		result, err := f.svc.SessionSummary(context.Background(), mentorID, menteeID, nil)
		require.NoError(t, err)
		assert.Equal(t, "Good week. - shipped", result.Summary)
		assert.Equal(t, []string{"shipped"}, result.Highlights)
	})

	t.Run("Session filter narrowing to zero yields the canned payload", func(t *testing.T) {
		f := newServiceFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.profileRepo.On("GetByUserID", mock.Anything, mentorID).Return(nil, models.ErrNotFound)
		f.sessionRepo.On("ListRecentByMentee", mock.Anything, menteeID, mock.Anything).
			Return([]models.Session{{ID: uuid.New(), MenteeID: menteeID, Notes: "scope"}}, nil)
		f.sessionRepo.On("CountByMentee", mock.Anything, menteeID).Return(1, 1, nil)
		f.deliverableRepo.On("ListByMentee", mock.Anything, menteeID).Return([]models.Deliverable{}, nil)
		f.noteRepo.On("ListRecentByMentee", mock.Anything, menteeID, mock.Anything).Return([]models.Note{}, nil)
		f.promptRepo.On("GetActiveByName", mock.Anything, KindSummary).Return(nil, models.ErrNotFound)

		result, err := f.svc.SessionSummary(context.Background(), mentorID, menteeID, []uuid.UUID{uuid.New()})
		require.NoError(t, err)
		assert.Equal(t, noSessionsSummary, result.Summary)
		f.chatClient.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
