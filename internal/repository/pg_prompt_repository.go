package repository

import (
	"context"
	"errors"
	"fmt"

	"mentor-server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const getActivePromptByNameQuery = `
	SELECT id, prompt_name, system_prompt, is_active, created_at, updated_at
	FROM prompt_templates
	WHERE prompt_name = $1 AND is_active = TRUE
`

// PgPromptRepository is the PostgreSQL implementation of PromptRepository.
type PgPromptRepository struct {
	pool *pgxpool.Pool
}

// NewPgPromptRepository creates a new PgPromptRepository.
func NewPgPromptRepository(pool *pgxpool.Pool) *PgPromptRepository {
	return &PgPromptRepository{pool: pool}
}

// GetActiveByName returns the active template for name. A partial unique
// index guarantees at most one active row per name.
func (r *PgPromptRepository) GetActiveByName(ctx context.Context, name string) (*models.PromptTemplate, error) {
	var t models.PromptTemplate
	err := r.pool.QueryRow(ctx, getActivePromptByNameQuery, name).Scan(
		&t.ID,
		&t.PromptName,
		&t.SystemPrompt,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug().Str("promptName", name).Msg("No active prompt template, caller falls back to default")
			return nil, models.ErrNotFound
		}
		log.Error().Err(err).Str("promptName", name).Msg("Error getting prompt template")
		return nil, fmt.Errorf("failed to get prompt template %s: %w", name, err)
	}
	return &t, nil
}
