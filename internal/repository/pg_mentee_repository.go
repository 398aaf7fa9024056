package repository

import (
	"context"
	"errors"
	"fmt"

	"mentor-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const getMenteeByIDAndMentorQuery = `
	SELECT id, mentor_id, name, goal, plan_end_date, status, created_at, updated_at
	FROM mentees
	WHERE id = $1 AND mentor_id = $2
`

// PgMenteeRepository is the PostgreSQL implementation of MenteeRepository.
type PgMenteeRepository struct {
	pool *pgxpool.Pool
}

// NewPgMenteeRepository creates a new PgMenteeRepository.
func NewPgMenteeRepository(pool *pgxpool.Pool) *PgMenteeRepository {
	return &PgMenteeRepository{pool: pool}
}

// GetByIDAndMentor returns the mentee owned by mentorID. Ownership is part
// of the lookup predicate, so a foreign mentee surfaces as not found rather
// than forbidden.
func (r *PgMenteeRepository) GetByIDAndMentor(ctx context.Context, menteeID, mentorID uuid.UUID) (*models.Mentee, error) {
	var m models.Mentee
	err := r.pool.QueryRow(ctx, getMenteeByIDAndMentorQuery, menteeID, mentorID).Scan(
		&m.ID,
		&m.MentorID,
		&m.Name,
		&m.Goal,
		&m.PlanEndDate,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Warn().Str("menteeID", menteeID.String()).Str("mentorID", mentorID.String()).Msg("Mentee not found for mentor")
			return nil, models.ErrMenteeNotFound
		}
		log.Error().Err(err).Str("menteeID", menteeID.String()).Msg("Error getting mentee")
		return nil, fmt.Errorf("failed to get mentee %s: %w", menteeID, err)
	}
	return &m, nil
}
