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

const getProfileByUserIDQuery = `
	SELECT user_id, display_name, tone_preference, created_at, updated_at
	FROM mentor_profiles
	WHERE user_id = $1
`

// PgProfileRepository is the PostgreSQL implementation of ProfileRepository.
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPgProfileRepository creates a new PgProfileRepository.
func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

// GetByUserID returns the mentor profile for userID.
func (r *PgProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.MentorProfile, error) {
	var p models.MentorProfile
	err := r.pool.QueryRow(ctx, getProfileByUserIDQuery, userID).Scan(
		&p.UserID,
		&p.DisplayName,
		&p.TonePreference,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Warn().Str("userID", userID.String()).Msg("Mentor profile not found")
			return nil, models.ErrNotFound
		}
		log.Error().Err(err).Str("userID", userID.String()).Msg("Error getting mentor profile")
		return nil, fmt.Errorf("failed to get mentor profile %s: %w", userID, err)
	}
	return &p, nil
}
