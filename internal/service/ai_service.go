package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"mentor-server/internal/models"
	"mentor-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generation parameters, fixed per use case.
const (
	chatMaxTokens      = 1024
	questionsMaxTokens = 512
	renewalMaxTokens   = 1024
	summaryMaxTokens   = 768

	chatTemperature      = 0.7
	questionsTemperature = 0.9
	summaryTemperature   = 0.3
)

const noSessionsSummary = "No sessions recorded yet. Hold a session with this mentee to get a summary."

// ChatGenerator is the chat-completion provider shape (system+user
// messages, text in choices[0].message.content).
type ChatGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error)
}

// MessageGenerator is the single-message provider shape (system field plus
// one user message, text in content[0].text). Kept distinct from
// ChatGenerator: the envelopes differ and unifying them would hide that.
type MessageGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// SummaryResult is the parsed session-summary payload.
type SummaryResult struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

// AIService exposes the four LLM-backed operations.
type AIService interface {
	Chat(ctx context.Context, mentorID, menteeID uuid.UUID, message string) (string, error)
	ProvocativeQuestions(ctx context.Context, mentorID, menteeID uuid.UUID) ([]string, error)
	RenewalPlan(ctx context.Context, mentorID, menteeID uuid.UUID) (string, error)
	SessionSummary(ctx context.Context, mentorID, menteeID uuid.UUID, sessionIDs []uuid.UUID) (*SummaryResult, error)
}

type aiService struct {
	builder       *ContextBuilder
	chatClient    ChatGenerator
	messageClient MessageGenerator
	chatRepo      repository.ChatRepository
	insightRepo   repository.InsightRepository
	logger        *zap.Logger
}

// NewAIService creates the AI generation service.
func NewAIService(
	builder *ContextBuilder,
	chatClient ChatGenerator,
	messageClient MessageGenerator,
	chatRepo repository.ChatRepository,
	insightRepo repository.InsightRepository,
	logger *zap.Logger,
) AIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &aiService{
		builder:       builder,
		chatClient:    chatClient,
		messageClient: messageClient,
		chatRepo:      chatRepo,
		insightRepo:   insightRepo,
		logger:        logger.Named("AIService"),
	}
}

// Chat answers a mentor's free-form question about a mentee. The reply is
// HTML-escaped before being stored and returned. Both turns are written
// back best-effort.
func (s *aiService) Chat(ctx context.Context, mentorID, menteeID uuid.UUID, message string) (string, error) {
	log := s.logger.With(zap.String("mentorID", mentorID.String()), zap.String("menteeID", menteeID.String()))

	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is empty", models.ErrInvalidInput)
	}

	mc, err := s.builder.Build(ctx, mentorID, menteeID, KindChat)
	if err != nil {
		return "", err
	}

	systemPrompt := s.builder.SystemPrompt(mc, KindChat)
	raw, err := s.chatClient.Generate(ctx, systemPrompt, message, chatMaxTokens, chatTemperature)
	if err != nil {
		log.Error("Chat generation failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrProvider, err)
	}

	reply := html.EscapeString(raw)

	s.appendTurn(ctx, log, menteeID, mentorID, models.ChatRoleUser, message)
	s.appendTurn(ctx, log, menteeID, mentorID, models.ChatRoleAssistant, reply)

	return reply, nil
}

// ProvocativeQuestions generates coaching questions for the next session.
func (s *aiService) ProvocativeQuestions(ctx context.Context, mentorID, menteeID uuid.UUID) ([]string, error) {
	log := s.logger.With(zap.String("mentorID", mentorID.String()), zap.String("menteeID", menteeID.String()))

	mc, err := s.builder.Build(ctx, mentorID, menteeID, KindQuestions)
	if err != nil {
		return nil, err
	}

	systemPrompt := s.builder.SystemPrompt(mc, KindQuestions)
	raw, err := s.chatClient.Generate(ctx, systemPrompt, "Generate the questions now.", questionsMaxTokens, questionsTemperature)
	if err != nil {
		log.Error("Questions generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrProvider, err)
	}

	questions := ParseQuestions(raw)
	s.storeInsight(ctx, log, menteeID, models.InsightProvocativeQuestion, map[string]any{"questions": questions})

	return questions, nil
}

// RenewalPlan drafts a renewal proposal. This is the one operation on the
// message-shape provider.
func (s *aiService) RenewalPlan(ctx context.Context, mentorID, menteeID uuid.UUID) (string, error) {
	log := s.logger.With(zap.String("mentorID", mentorID.String()), zap.String("menteeID", menteeID.String()))

	mc, err := s.builder.Build(ctx, mentorID, menteeID, KindRenewal)
	if err != nil {
		return "", err
	}

	systemPrompt := s.builder.SystemPrompt(mc, KindRenewal)
	plan, err := s.messageClient.Generate(ctx, systemPrompt, "Draft the renewal proposal now.", renewalMaxTokens)
	if err != nil {
		log.Error("Renewal plan generation failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrProvider, err)
	}

	s.storeInsight(ctx, log, menteeID, models.InsightRenewalPlan, map[string]any{"plan": plan})

	return plan, nil
}

// SessionSummary summarizes recent sessions, optionally narrowed to the
// given session ids. With zero sessions in scope it returns a canned
// payload without calling the provider.
func (s *aiService) SessionSummary(ctx context.Context, mentorID, menteeID uuid.UUID, sessionIDs []uuid.UUID) (*SummaryResult, error) {
	log := s.logger.With(zap.String("mentorID", mentorID.String()), zap.String("menteeID", menteeID.String()))

	mc, err := s.builder.Build(ctx, mentorID, menteeID, KindSummary)
	if err != nil {
		return nil, err
	}

	if len(sessionIDs) > 0 {
		mc.Sessions = filterSessions(mc.Sessions, sessionIDs)
	}

	if len(mc.Sessions) == 0 {
		log.Info("No sessions on record, returning canned summary")
		return &SummaryResult{Summary: noSessionsSummary, Highlights: []string{}}, nil
	}

	systemPrompt := s.builder.SystemPrompt(mc, KindSummary)
	raw, err := s.chatClient.Generate(ctx, systemPrompt, "Write the summary now.", summaryMaxTokens, summaryTemperature)
	if err != nil {
		log.Error("Summary generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrProvider, err)
	}

	summary, highlights := ParseSummary(raw)
	result := &SummaryResult{Summary: summary, Highlights: highlights}
	s.storeInsight(ctx, log, menteeID, models.InsightSessionSummary, result)

	return result, nil
}

// appendTurn writes one chat turn. Failures are logged and swallowed: the
// generated reply is already committed to the caller.
func (s *aiService) appendTurn(ctx context.Context, log *zap.Logger, menteeID, mentorID uuid.UUID, role, message string) {
	turn := &models.ChatTurn{
		MenteeID: menteeID,
		MentorID: mentorID,
		Role:     role,
		Message:  message,
	}
	if err := s.chatRepo.Append(ctx, turn); err != nil {
		log.Warn("Failed to write back chat turn", zap.String("role", role), zap.Error(err))
	}
}

func filterSessions(sessions []models.Session, ids []uuid.UUID) []models.Session {
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var filtered []models.Session
	for _, s := range sessions {
		if _, ok := wanted[s.ID]; ok {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// storeInsight writes one insight row. Failures are logged and swallowed.
func (s *aiService) storeInsight(ctx context.Context, log *zap.Logger, menteeID uuid.UUID, kind models.InsightType, payload any) {
	content, err := json.Marshal(payload)
	if err != nil {
		log.Warn("Failed to marshal insight payload", zap.String("insightType", string(kind)), zap.Error(err))
		return
	}
	insight := &models.Insight{
		MenteeID:    menteeID,
		InsightType: kind,
		Content:     content,
	}
	if err := s.insightRepo.Create(ctx, insight); err != nil {
		log.Warn("Failed to write back insight", zap.String("insightType", string(kind)), zap.Error(err))
	}
}
