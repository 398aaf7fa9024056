package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mentor-server/internal/models"
	repomocks "mentor-server/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type builderFixture struct {
	menteeRepo      *repomocks.MenteeRepository
	profileRepo     *repomocks.ProfileRepository
	sessionRepo     *repomocks.SessionRepository
	deliverableRepo *repomocks.DeliverableRepository
	noteRepo        *repomocks.NoteRepository
	chatRepo        *repomocks.ChatRepository
	promptRepo      *repomocks.PromptRepository
	builder         *ContextBuilder
}

func newBuilderFixture() *builderFixture {
	f := &builderFixture{
		menteeRepo:      new(repomocks.MenteeRepository),
		profileRepo:     new(repomocks.ProfileRepository),
		sessionRepo:     new(repomocks.SessionRepository),
		deliverableRepo: new(repomocks.DeliverableRepository),
		noteRepo:        new(repomocks.NoteRepository),
		chatRepo:        new(repomocks.ChatRepository),
		promptRepo:      new(repomocks.PromptRepository),
	}
	f.builder = NewContextBuilder(
		f.menteeRepo, f.profileRepo, f.sessionRepo, f.deliverableRepo,
		f.noteRepo, f.chatRepo, f.promptRepo, zap.NewNop(),
	)
	return f
}

func (f *builderFixture) stubHappyFanOut(mentorID, menteeID uuid.UUID) {
	f.profileRepo.On("GetByUserID", mock.Anything, mentorID).
		Return(&models.MentorProfile{UserID: mentorID, DisplayName: "Dana", TonePreference: "direct"}, nil)
	f.sessionRepo.On("ListRecentByMentee", mock.Anything, menteeID, mock.Anything).
		Return([]models.Session{}, nil)
	f.sessionRepo.On("CountByMentee", mock.Anything, menteeID).Return(2, 5, nil)
	f.deliverableRepo.On("ListByMentee", mock.Anything, menteeID).Return([]models.Deliverable{}, nil)
	f.noteRepo.On("ListRecentByMentee", mock.Anything, menteeID, mock.Anything).Return([]models.Note{}, nil)
	f.chatRepo.On("ListRecentByMentee", mock.Anything, menteeID, mock.Anything).Return([]models.ChatTurn{}, nil)
	f.promptRepo.On("GetActiveByName", mock.Anything, mock.Anything).Return(nil, models.ErrNotFound)
}

func TestContextBuilderBuild(t *testing.T) {
	mentorID := uuid.New()
	menteeID := uuid.New()
	mentee := &models.Mentee{ID: menteeID, MentorID: mentorID, Name: "Alex", Goal: "Ship the product", Status: models.MenteeStatusActive}

	t.Run("Mentee not owned by mentor fails the build", func(t *testing.T) {
		f := newBuilderFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).
			Return(nil, models.ErrMenteeNotFound)

		mc, err := f.builder.Build(context.Background(), mentorID, menteeID, KindChat)
		assert.Nil(t, mc)
		assert.ErrorIs(t, err, models.ErrMenteeNotFound)
	})

	t.Run("Failed sub-fetches leave zero values instead of failing", func(t *testing.T) {
		f := newBuilderFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.profileRepo.On("GetByUserID", mock.Anything, mentorID).Return(nil, errors.New("profile store down"))
		f.sessionRepo.On("ListRecentByMentee", mock.Anything, menteeID, mock.Anything).
			Return(nil, errors.New("session store down"))
		f.sessionRepo.On("CountByMentee", mock.Anything, menteeID).Return(0, 0, errors.New("session store down"))
		f.deliverableRepo.On("ListByMentee", mock.Anything, menteeID).
			Return([]models.Deliverable{{Title: "Draft", Status: models.DeliverableStatusPending}}, nil)
		f.noteRepo.On("ListRecentByMentee", mock.Anything, menteeID, mock.Anything).Return([]models.Note{}, nil)
		f.promptRepo.On("GetActiveByName", mock.Anything, KindQuestions).Return(nil, models.ErrNotFound)

		mc, err := f.builder.Build(context.Background(), mentorID, menteeID, KindQuestions)
		require.NoError(t, err)
		assert.Nil(t, mc.Profile)
		assert.Empty(t, mc.Sessions)
		assert.Zero(t, mc.TotalSessions)
		assert.Len(t, mc.Deliverables, 1)
	})

	t.Run("Summary kind widens the session window", func(t *testing.T) {
		f := newBuilderFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.stubHappyFanOut(mentorID, menteeID)

		_, err := f.builder.Build(context.Background(), mentorID, menteeID, KindSummary)
		require.NoError(t, err)
		f.sessionRepo.AssertCalled(t, "ListRecentByMentee", mock.Anything, menteeID, summarySessionsLimit)
	})

	t.Run("Chat history is fetched only for the chat kind", func(t *testing.T) {
		f := newBuilderFixture()
		f.menteeRepo.On("GetByIDAndMentor", mock.Anything, menteeID, mentorID).Return(mentee, nil)
		f.stubHappyFanOut(mentorID, menteeID)

		_, err := f.builder.Build(context.Background(), mentorID, menteeID, KindRenewal)
		require.NoError(t, err)
		f.chatRepo.AssertNotCalled(t, "ListRecentByMentee", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRenderTemplate(t *testing.T) {
	t.Run("Replaces every occurrence of a placeholder", func(t *testing.T) {
		out := RenderTemplate("{{name}} and again {{name}}", map[string]string{"name": "Alex"})
		assert.Equal(t, "Alex and again Alex", out)
	})

	t.Run("Unknown placeholders are blanked", func(t *testing.T) {
		out := RenderTemplate("before {{mystery}} after", map[string]string{"name": "Alex"})
		assert.Equal(t, "before  after", out)
	})

	t.Run("Idempotent when no placeholders remain", func(t *testing.T) {
		values := map[string]string{"name": "Alex"}
		once := RenderTemplate("hello {{name}}", values)
		twice := RenderTemplate(once, values)
		assert.Equal(t, once, twice)
	})
}

func TestSystemPrompt(t *testing.T) {
	mentorID := uuid.New()
	menteeID := uuid.New()

	t.Run("Active template wins over the built-in default", func(t *testing.T) {
		f := newBuilderFixture()
		mc := &MenteeContext{
			Mentee:   &models.Mentee{ID: menteeID, Name: "Alex", Goal: "Grow"},
			Template: &models.PromptTemplate{PromptName: KindChat, SystemPrompt: "Coach {{menteeName}} toward {{menteeGoal}}.", IsActive: true},
		}
		prompt := f.builder.SystemPrompt(mc, KindChat)
		assert.Equal(t, "Coach Alex toward Grow.", prompt)
	})

	t.Run("Default template renders without leftover tokens", func(t *testing.T) {
		f := newBuilderFixture()
		mc := &MenteeContext{
			Mentee:  &models.Mentee{ID: menteeID, MentorID: mentorID, Name: "Alex", Goal: "Grow"},
			Profile: &models.MentorProfile{UserID: mentorID, DisplayName: "Dana", TonePreference: "direct"},
		}
		prompt := f.builder.SystemPrompt(mc, KindSummary)
		assert.NotContains(t, prompt, "{{")
		assert.Contains(t, prompt, "Alex")
		assert.Contains(t, prompt, noSessionsDigest)
	})
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newBuilderFixture()
	f.builder.now = func() time.Time { return now }

	t.Run("Rounds partial days up", func(t *testing.T) {
		end := now.Add(36 * time.Hour)
		assert.Equal(t, 2, f.builder.daysRemaining(&models.Mentee{PlanEndDate: &end}))
	})

	t.Run("Past end date floors at zero", func(t *testing.T) {
		end := now.Add(-24 * time.Hour)
		assert.Equal(t, 0, f.builder.daysRemaining(&models.Mentee{PlanEndDate: &end}))
	})

	t.Run("No plan end date", func(t *testing.T) {
		assert.Equal(t, 0, f.builder.daysRemaining(&models.Mentee{}))
	})
}

func TestSessionDigest(t *testing.T) {
	when := time.Date(2025, 5, 20, 15, 0, 0, 0, time.UTC)

	t.Run("Fallback when no sessions exist", func(t *testing.T) {
		assert.Equal(t, noSessionsDigest, sessionDigest(nil))
	})

	t.Run("Truncates long notes to 200 characters", func(t *testing.T) {
		long := ""
		for i := 0; i < 30; i++ {
			long += "0123456789"
		}
		digest := sessionDigest([]models.Session{{ScheduledAt: when, Notes: long}})
		assert.Contains(t, digest, "2025-05-20")
		// "[2025-05-20] " prefix plus the truncated note body.
		assert.Len(t, digest, len("[2025-05-20] ")+200)
	})

	t.Run("Uses at most three sessions", func(t *testing.T) {
		sessions := []models.Session{
			{ScheduledAt: when, Notes: "first"},
			{ScheduledAt: when, Notes: "second"},
			{ScheduledAt: when, Notes: "third"},
			{ScheduledAt: when, Notes: "fourth"},
		}
		digest := sessionDigest(sessions)
		assert.Contains(t, digest, "third")
		assert.NotContains(t, digest, "fourth")
	})
}
