package repository

import (
	"context"
	"errors"
	"fmt"

	"mentor-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const listDeliverablesByMenteeQuery = `
	SELECT id, mentee_id, title, status, due_at, created_at
	FROM deliverables
	WHERE mentee_id = $1
	ORDER BY created_at DESC
`

// PgDeliverableRepository is the PostgreSQL implementation of
// DeliverableRepository.
type PgDeliverableRepository struct {
	pool *pgxpool.Pool
}

// NewPgDeliverableRepository creates a new PgDeliverableRepository.
func NewPgDeliverableRepository(pool *pgxpool.Pool) *PgDeliverableRepository {
	return &PgDeliverableRepository{pool: pool}
}

// ListByMentee returns all deliverables for the mentee, newest first.
func (r *PgDeliverableRepository) ListByMentee(ctx context.Context, menteeID uuid.UUID) ([]models.Deliverable, error) {
	var deliverables []models.Deliverable
	err := pgxscan.Select(ctx, r.pool, &deliverables, listDeliverablesByMenteeQuery, menteeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []models.Deliverable{}, nil
		}
		log.Error().Err(err).Str("menteeID", menteeID.String()).Msg("Error listing deliverables")
		return nil, fmt.Errorf("failed to list deliverables for mentee %s: %w", menteeID, err)
	}
	return deliverables, nil
}
