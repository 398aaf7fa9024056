package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"mentor-server/internal/models"
	"mentor-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Endpoint kinds, used as prompt template names and throttle key prefixes.
const (
	KindChat      = "chat"
	KindQuestions = "provocative_questions"
	KindRenewal   = "renewal_plan"
	KindSummary   = "session_summary"
)

const (
	recentSessionsLimit  = 3
	summarySessionsLimit = 10
	recentNotesLimit     = 5
	chatHistoryLimit     = 10
	sessionNoteMaxLen    = 200

	noSessionsDigest = "No sessions have been held yet."
)

var placeholderPattern = regexp.MustCompile(`\{\{[a-zA-Z0-9_]+\}\}`)

// MenteeContext is the assembled domain context for one generation request.
type MenteeContext struct {
	Mentee       *models.Mentee
	Profile      *models.MentorProfile
	Sessions     []models.Session
	Deliverables []models.Deliverable
	Notes        []models.Note
	ChatHistory  []models.ChatTurn
	Template     *models.PromptTemplate

	HeldSessions  int
	TotalSessions int
}

// PendingDeliverables returns deliverables that still need work.
func (c *MenteeContext) PendingDeliverables() []models.Deliverable {
	var pending []models.Deliverable
	for i := range c.Deliverables {
		if c.Deliverables[i].IsPending() {
			pending = append(pending, c.Deliverables[i])
		}
	}
	return pending
}

// ContextBuilder gathers the domain records behind one generation request
// and renders them into a system prompt.
type ContextBuilder struct {
	menteeRepo      repository.MenteeRepository
	profileRepo     repository.ProfileRepository
	sessionRepo     repository.SessionRepository
	deliverableRepo repository.DeliverableRepository
	noteRepo        repository.NoteRepository
	chatRepo        repository.ChatRepository
	promptRepo      repository.PromptRepository
	logger          *zap.Logger
	now             func() time.Time
}

// NewContextBuilder creates a ContextBuilder.
func NewContextBuilder(
	menteeRepo repository.MenteeRepository,
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	deliverableRepo repository.DeliverableRepository,
	noteRepo repository.NoteRepository,
	chatRepo repository.ChatRepository,
	promptRepo repository.PromptRepository,
	logger *zap.Logger,
) *ContextBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContextBuilder{
		menteeRepo:      menteeRepo,
		profileRepo:     profileRepo,
		sessionRepo:     sessionRepo,
		deliverableRepo: deliverableRepo,
		noteRepo:        noteRepo,
		chatRepo:        chatRepo,
		promptRepo:      promptRepo,
		logger:          logger.Named("ContextBuilder"),
		now:             time.Now,
	}
}

// Build fetches the mentee (strict, ownership-scoped) and then fans out the
// remaining reads concurrently. A failed sub-fetch leaves its slot at the
// zero value and logs a warning; only the mentee fetch can fail the build.
func (b *ContextBuilder) Build(ctx context.Context, mentorID, menteeID uuid.UUID, kind string) (*MenteeContext, error) {
	log := b.logger.With(
		zap.String("mentorID", mentorID.String()),
		zap.String("menteeID", menteeID.String()),
		zap.String("kind", kind),
	)

	mentee, err := b.menteeRepo.GetByIDAndMentor(ctx, menteeID, mentorID)
	if err != nil {
		return nil, err
	}

	mc := &MenteeContext{Mentee: mentee}

	sessionsLimit := recentSessionsLimit
	if kind == KindSummary {
		sessionsLimit = summarySessionsLimit
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		profile, err := b.profileRepo.GetByUserID(ctx, mentorID)
		if err != nil {
			log.Warn("Failed to fetch mentor profile, continuing without it", zap.Error(err))
			return
		}
		mc.Profile = profile
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		sessions, err := b.sessionRepo.ListRecentByMentee(ctx, menteeID, sessionsLimit)
		if err != nil {
			log.Warn("Failed to fetch sessions, continuing without them", zap.Error(err))
			return
		}
		mc.Sessions = sessions
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		held, total, err := b.sessionRepo.CountByMentee(ctx, menteeID)
		if err != nil {
			log.Warn("Failed to count sessions, continuing with zero counts", zap.Error(err))
			return
		}
		mc.HeldSessions = held
		mc.TotalSessions = total
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		deliverables, err := b.deliverableRepo.ListByMentee(ctx, menteeID)
		if err != nil {
			log.Warn("Failed to fetch deliverables, continuing without them", zap.Error(err))
			return
		}
		mc.Deliverables = deliverables
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		notes, err := b.noteRepo.ListRecentByMentee(ctx, menteeID, recentNotesLimit)
		if err != nil {
			log.Warn("Failed to fetch notes, continuing without them", zap.Error(err))
			return
		}
		mc.Notes = notes
	}()

	if kind == KindChat {
		wg.Add(1)
		go func() {
			defer wg.Done()
			history, err := b.chatRepo.ListRecentByMentee(ctx, menteeID, chatHistoryLimit)
			if err != nil {
				log.Warn("Failed to fetch chat history, continuing without it", zap.Error(err))
				return
			}
			mc.ChatHistory = history
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		template, err := b.promptRepo.GetActiveByName(ctx, kind)
		if err != nil {
			if !isNotFound(err) {
				log.Warn("Failed to fetch prompt template, falling back to default", zap.Error(err))
			}
			return
		}
		mc.Template = template
	}()

	wg.Wait()
	return mc, nil
}

// SystemPrompt renders the active template for kind (or the built-in
// default) against the assembled context.
func (b *ContextBuilder) SystemPrompt(mc *MenteeContext, kind string) string {
	template := defaultTemplates[kind]
	if mc.Template != nil {
		template = mc.Template.SystemPrompt
	}
	return RenderTemplate(template, b.placeholderValues(mc))
}

// RenderTemplate substitutes every occurrence of each known {{name}} token
// and blanks whatever tokens remain. Unknown placeholders are never an
// error and never survive into the output.
func RenderTemplate(template string, values map[string]string) string {
	rendered := template
	for name, value := range values {
		rendered = strings.ReplaceAll(rendered, "{{"+name+"}}", value)
	}
	return placeholderPattern.ReplaceAllString(rendered, "")
}

func (b *ContextBuilder) placeholderValues(mc *MenteeContext) map[string]string {
	values := map[string]string{
		"menteeName":        mc.Mentee.Name,
		"menteeGoal":        mc.Mentee.Goal,
		"menteeStatus":      mc.Mentee.Status,
		"daysRemaining":     strconv.Itoa(b.daysRemaining(mc.Mentee)),
		"sessionsHeld":      strconv.Itoa(mc.HeldSessions),
		"sessionsTotal":     strconv.Itoa(mc.TotalSessions),
		"completedCount":    strconv.Itoa(len(mc.Deliverables) - len(mc.PendingDeliverables())),
		"totalCount":        strconv.Itoa(len(mc.Deliverables)),
		"pendingWork":       formatDeliverables(mc.PendingDeliverables()),
		"recentSessions":    sessionDigest(mc.Sessions),
		"recentNotes":       formatNotes(mc.Notes),
		"mentorName":        "",
		"tonePreference":    "",
		"conversationSoFar": formatChatHistory(mc.ChatHistory),
	}
	if mc.Profile != nil {
		values["mentorName"] = mc.Profile.DisplayName
		values["tonePreference"] = mc.Profile.TonePreference
	}
	return values
}

// daysRemaining is ceil(planEndDate - now) in days, floored at zero.
func (b *ContextBuilder) daysRemaining(mentee *models.Mentee) int {
	if mentee.PlanEndDate == nil {
		return 0
	}
	remaining := mentee.PlanEndDate.Sub(b.now())
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}

// sessionDigest concatenates notes of the last 3 sessions, each truncated
// to 200 characters.
func sessionDigest(sessions []models.Session) string {
	if len(sessions) == 0 {
		return noSessionsDigest
	}
	limit := len(sessions)
	if limit > 3 {
		limit = 3
	}
	var parts []string
	for _, s := range sessions[:limit] {
		note := strings.TrimSpace(s.Notes)
		if note == "" {
			continue
		}
		if len(note) > sessionNoteMaxLen {
			note = note[:sessionNoteMaxLen]
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", s.ScheduledAt.Format("2006-01-02"), note))
	}
	if len(parts) == 0 {
		return noSessionsDigest
	}
	return strings.Join(parts, "\n")
}

func formatDeliverables(deliverables []models.Deliverable) string {
	if len(deliverables) == 0 {
		return "none"
	}
	var parts []string
	for _, d := range deliverables {
		line := fmt.Sprintf("- %s (%s)", d.Title, d.Status)
		if d.DueAt != nil {
			line = fmt.Sprintf("- %s (%s, due %s)", d.Title, d.Status, d.DueAt.Format("2006-01-02"))
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "\n")
}

func formatNotes(notes []models.Note) string {
	if len(notes) == 0 {
		return "none"
	}
	var parts []string
	for _, n := range notes {
		parts = append(parts, fmt.Sprintf("- %s", strings.TrimSpace(n.Body)))
	}
	return strings.Join(parts, "\n")
}

func formatChatHistory(turns []models.ChatTurn) string {
	if len(turns) == 0 {
		return ""
	}
	var parts []string
	for _, t := range turns {
		parts = append(parts, fmt.Sprintf("%s: %s", t.Role, t.Message))
	}
	return strings.Join(parts, "\n")
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
