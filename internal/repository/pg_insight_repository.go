package repository

import (
	"context"
	"fmt"

	"mentor-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const createInsightQuery = `
	INSERT INTO insights (id, mentee_id, insight_type, content)
	VALUES ($1, $2, $3, $4)
`

// PgInsightRepository is the PostgreSQL implementation of InsightRepository.
type PgInsightRepository struct {
	pool *pgxpool.Pool
}

// NewPgInsightRepository creates a new PgInsightRepository.
func NewPgInsightRepository(pool *pgxpool.Pool) *PgInsightRepository {
	return &PgInsightRepository{pool: pool}
}

// Create stores one generated insight.
func (r *PgInsightRepository) Create(ctx context.Context, insight *models.Insight) error {
	if insight.ID == uuid.Nil {
		insight.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, createInsightQuery, insight.ID, insight.MenteeID, insight.InsightType, insight.Content)
	if err != nil {
		log.Error().Err(err).Str("menteeID", insight.MenteeID.String()).Str("insightType", string(insight.InsightType)).Msg("Error creating insight")
		return fmt.Errorf("failed to create insight for mentee %s: %w", insight.MenteeID, err)
	}
	return nil
}
