package handler

import (
	"fmt"
	"net/http"

	"mentor-server/internal/config"
	"mentor-server/internal/models"
	"mentor-server/internal/ratelimit"
	"mentor-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AIHandler exposes the LLM-backed endpoints.
type AIHandler struct {
	service service.AIService
	limiter *ratelimit.Limiter
	cfg     *config.Config
	logger  *zap.Logger
}

// NewAIHandler creates the handler.
func NewAIHandler(svc service.AIService, limiter *ratelimit.Limiter, cfg *config.Config, logger *zap.Logger) *AIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIHandler{
		service: svc,
		limiter: limiter,
		cfg:     cfg,
		logger:  logger.Named("AIHandler"),
	}
}

// RegisterRoutes mounts the AI endpoints under /api/ai behind the given
// auth middleware.
func (h *AIHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	ai := router.Group("/api/ai")
	ai.Use(authMiddleware)
	{
		ai.POST("/chat", h.Chat)
		ai.POST("/provocative-questions", h.ProvocativeQuestions)
		ai.POST("/renewal-plan", h.RenewalPlan)
		ai.POST("/session-summary", h.SessionSummary)
	}
}

// admit runs the throttle check for one endpoint class. It writes the 429
// response itself and reports whether the request may proceed.
func (h *AIHandler) admit(c *gin.Context, kind string, limit config.RateLimit, callerID uuid.UUID) bool {
	key := fmt.Sprintf("%s:%s", kind, callerID)
	decision := h.limiter.Admit(key, ratelimit.Limit{MaxRequests: limit.MaxRequests, Window: limit.Window})
	if decision.Allowed {
		return true
	}

	throttleRejectionsTotal.WithLabelValues(kind).Inc()
	h.logger.Info("Request rejected by rate limiter",
		zap.String("kind", kind),
		zap.String("callerID", callerID.String()),
		zap.Time("resetAt", decision.ResetAt),
	)
	c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
		Error:   "Rate limit exceeded, try again later",
		ResetAt: decision.ResetAt.Unix(),
	})
	return false
}

// Chat handles POST /api/ai/chat.
func (h *AIHandler) Chat(c *gin.Context) {
	mentorID, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "menteeId and message are required"})
		return
	}

	if !h.admit(c, service.KindChat, h.cfg.ChatRateLimit(), mentorID) {
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), mentorID, req.MenteeID, req.Message)
	if err != nil {
		generationsTotal.WithLabelValues(service.KindChat, "error").Inc()
		handleServiceError(c, h.logger, err)
		return
	}

	generationsTotal.WithLabelValues(service.KindChat, "ok").Inc()
	c.JSON(http.StatusOK, ChatResponse{Response: reply})
}

// ProvocativeQuestions handles POST /api/ai/provocative-questions.
func (h *AIHandler) ProvocativeQuestions(c *gin.Context) {
	mentorID, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "menteeId is required"})
		return
	}

	if !h.admit(c, service.KindQuestions, h.cfg.QuestionsRateLimit(), mentorID) {
		return
	}

	questions, err := h.service.ProvocativeQuestions(c.Request.Context(), mentorID, req.MenteeID)
	if err != nil {
		generationsTotal.WithLabelValues(service.KindQuestions, "error").Inc()
		handleServiceError(c, h.logger, err)
		return
	}

	generationsTotal.WithLabelValues(service.KindQuestions, "ok").Inc()
	c.JSON(http.StatusOK, QuestionsResponse{Questions: questions})
}

// RenewalPlan handles POST /api/ai/renewal-plan.
func (h *AIHandler) RenewalPlan(c *gin.Context) {
	mentorID, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "menteeId is required"})
		return
	}

	if !h.admit(c, service.KindRenewal, h.cfg.RenewalRateLimit(), mentorID) {
		return
	}

	proposal, err := h.service.RenewalPlan(c.Request.Context(), mentorID, req.MenteeID)
	if err != nil {
		generationsTotal.WithLabelValues(service.KindRenewal, "error").Inc()
		handleServiceError(c, h.logger, err)
		return
	}

	generationsTotal.WithLabelValues(service.KindRenewal, "ok").Inc()
	c.JSON(http.StatusOK, RenewalResponse{Proposal: proposal})
}

// SessionSummary handles POST /api/ai/session-summary.
func (h *AIHandler) SessionSummary(c *gin.Context) {
	mentorID, ok := callerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "menteeId is required"})
		return
	}

	if !h.admit(c, service.KindSummary, h.cfg.SummaryRateLimit(), mentorID) {
		return
	}

	result, err := h.service.SessionSummary(c.Request.Context(), mentorID, req.MenteeID, req.SessionIDs)
	if err != nil {
		generationsTotal.WithLabelValues(service.KindSummary, "error").Inc()
		handleServiceError(c, h.logger, err)
		return
	}

	generationsTotal.WithLabelValues(service.KindSummary, "ok").Inc()
	c.JSON(http.StatusOK, SummaryResponse{Summary: result.Summary, Highlights: result.Highlights})
}

// Health handles GET /health.
func (h *AIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
