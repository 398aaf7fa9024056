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

const (
	listRecentSessionsQuery = `
		SELECT id, mentee_id, scheduled_at, held_at, notes, status, created_at
		FROM sessions
		WHERE mentee_id = $1 AND status != 'cancelled'
		ORDER BY scheduled_at DESC
		LIMIT $2
	`
	countSessionsQuery = `
		SELECT
			COUNT(*) FILTER (WHERE status = 'held') AS held,
			COUNT(*) AS total
		FROM sessions
		WHERE mentee_id = $1 AND status != 'cancelled'
	`
)

// PgSessionRepository is the PostgreSQL implementation of SessionRepository.
type PgSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSessionRepository creates a new PgSessionRepository.
func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

// ListRecentByMentee returns up to limit most recent non-cancelled sessions,
// newest first.
func (r *PgSessionRepository) ListRecentByMentee(ctx context.Context, menteeID uuid.UUID, limit int) ([]models.Session, error) {
	var sessions []models.Session
	err := pgxscan.Select(ctx, r.pool, &sessions, listRecentSessionsQuery, menteeID, limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []models.Session{}, nil
		}
		log.Error().Err(err).Str("menteeID", menteeID.String()).Msg("Error listing sessions")
		return nil, fmt.Errorf("failed to list sessions for mentee %s: %w", menteeID, err)
	}
	return sessions, nil
}

// CountByMentee returns the held and total non-cancelled session counts.
func (r *PgSessionRepository) CountByMentee(ctx context.Context, menteeID uuid.UUID) (int, int, error) {
	var held, total int
	err := r.pool.QueryRow(ctx, countSessionsQuery, menteeID).Scan(&held, &total)
	if err != nil {
		log.Error().Err(err).Str("menteeID", menteeID.String()).Msg("Error counting sessions")
		return 0, 0, fmt.Errorf("failed to count sessions for mentee %s: %w", menteeID, err)
	}
	return held, total, nil
}
