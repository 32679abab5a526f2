package messaging

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nivkoren/levmatch-backend/internal/dating"
)

type Repository interface {
	GetMatch(ctx context.Context, matchID string) (*dating.Match, error)
	// CreateMessage persists the message and bumps the match's activity
	// timestamps to the same instant.
	CreateMessage(ctx context.Context, message *Message) error
	ListMessages(ctx context.Context, matchID string, limit int) ([]*Message, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetMatch(ctx context.Context, matchID string) (*dating.Match, error) {
	var match dating.Match
	err := r.db.GetContext(ctx, &match, `SELECT * FROM matches WHERE id = $1`, matchID)
	if err == sql.ErrNoRows {
		return nil, dating.ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *postgresRepository) CreateMessage(ctx context.Context, message *Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	now := time.Now()
	message.CreatedAt = now

	query := `
		INSERT INTO messages (id, match_id, from_user, text, status, moderation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(
		ctx, query,
		message.ID, message.MatchID, message.From, message.Text,
		message.Status, message.Moderation, message.CreatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE matches SET last_message_at = $2, updated_at = $2 WHERE id = $1`,
		message.MatchID, now,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepository) ListMessages(ctx context.Context, matchID string, limit int) ([]*Message, error) {
	var messages []*Message
	query := `
		SELECT * FROM messages
		WHERE match_id = $1
		ORDER BY created_at, id
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &messages, query, matchID, limit)
	if err != nil {
		return nil, err
	}
	return messages, nil
}
