package models

import (
	"time"

	"github.com/google/uuid"
)

// PromptTemplate is an editable system prompt with {{placeholder}} tokens.
// At most one template per name is active; the pipeline falls back to a
// built-in default when none is.
type PromptTemplate struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PromptName   string    `db:"prompt_name" json:"promptName"`
	SystemPrompt string    `db:"system_prompt" json:"systemPrompt"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
