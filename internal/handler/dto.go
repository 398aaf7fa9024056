package handler

import "github.com/google/uuid"

// ChatRequest is the body of POST /api/ai/chat.
type ChatRequest struct {
	MenteeID uuid.UUID `json:"menteeId" binding:"required"`
	Message  string    `json:"message" binding:"required"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// GenerateRequest is the body of the questions and renewal endpoints.
type GenerateRequest struct {
	MenteeID uuid.UUID `json:"menteeId" binding:"required"`
}

// QuestionsResponse carries the generated coaching questions.
type QuestionsResponse struct {
	Questions []string `json:"questions"`
}

// RenewalResponse carries the renewal proposal text.
type RenewalResponse struct {
	Proposal string `json:"proposal"`
}

// SummaryRequest is the body of POST /api/ai/session-summary. SessionIDs
// optionally narrows the summary to specific sessions.
type SummaryRequest struct {
	MenteeID   uuid.UUID   `json:"menteeId" binding:"required"`
	SessionIDs []uuid.UUID `json:"sessionIds"`
}

// SummaryResponse carries the summary text and highlight bullets.
type SummaryResponse struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}
