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

const listRecentNotesQuery = `
	SELECT id, mentee_id, author_id, body, created_at
	FROM notes
	WHERE mentee_id = $1
	ORDER BY created_at DESC
	LIMIT $2
`

// PgNoteRepository is the PostgreSQL implementation of NoteRepository.
type PgNoteRepository struct {
	pool *pgxpool.Pool
}

// NewPgNoteRepository creates a new PgNoteRepository.
func NewPgNoteRepository(pool *pgxpool.Pool) *PgNoteRepository {
	return &PgNoteRepository{pool: pool}
}

// ListRecentByMentee returns up to limit most recent notes, newest first.
func (r *PgNoteRepository) ListRecentByMentee(ctx context.Context, menteeID uuid.UUID, limit int) ([]models.Note, error) {
	var notes []models.Note
	err := pgxscan.Select(ctx, r.pool, &notes, listRecentNotesQuery, menteeID, limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []models.Note{}, nil
		}
		log.Error().Err(err).Str("menteeID", menteeID.String()).Msg("Error listing notes")
		return nil, fmt.Errorf("failed to list notes for mentee %s: %w", menteeID, err)
	}
	return notes, nil
}
