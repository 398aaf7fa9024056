package repository

import (
	"context"
	"fmt"

	"mentor-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	appendChatTurnQuery = `
		INSERT INTO chat_turns (id, mentee_id, mentor_id, role, message)
		VALUES ($1, $2, $3, $4, $5)
	`
	// Inner query picks the most recent limit turns; the outer query flips
	// them back into chronological order for the prompt.
	listRecentChatTurnsQuery = `
		SELECT id, mentee_id, mentor_id, role, message, created_at FROM (
			SELECT id, mentee_id, mentor_id, role, message, created_at
			FROM chat_turns
			WHERE mentee_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`
)

// PgChatRepository is the PostgreSQL implementation of ChatRepository.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

// NewPgChatRepository creates a new PgChatRepository.
func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

// Append stores one chat turn. A zero ID is assigned before insert.
func (r *PgChatRepository) Append(ctx context.Context, turn *models.ChatTurn) error {
	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, appendChatTurnQuery, turn.ID, turn.MenteeID, turn.MentorID, turn.Role, turn.Message)
	if err != nil {
		log.Error().Err(err).Str("menteeID", turn.MenteeID.String()).Str("role", turn.Role).Msg("Error appending chat turn")
		return fmt.Errorf("failed to append chat turn for mentee %s: %w", turn.MenteeID, err)
	}
	return nil
}

// ListRecentByMentee returns up to limit most recent turns, oldest first.
func (r *PgChatRepository) ListRecentByMentee(ctx context.Context, menteeID uuid.UUID, limit int) ([]models.ChatTurn, error) {
	rows, err := r.pool.Query(ctx, listRecentChatTurnsQuery, menteeID, limit)
	if err != nil {
		log.Error().Err(err).Str("menteeID", menteeID.String()).Msg("Error listing chat turns")
		return nil, fmt.Errorf("failed to list chat turns for mentee %s: %w", menteeID, err)
	}
	defer rows.Close()

	var turns []models.ChatTurn
	for rows.Next() {
		var t models.ChatTurn
		if err := rows.Scan(&t.ID, &t.MenteeID, &t.MentorID, &t.Role, &t.Message, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat turns: %w", err)
	}
	return turns, nil
}
