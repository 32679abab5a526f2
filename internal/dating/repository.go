package dating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nivkoren/levmatch-backend/internal/profile"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrActiveMatchExists = errors.New("user already has an active match")
	ErrNotParticipant    = errors.New("user is not part of this match")
)

type Repository interface {
	GetUser(ctx context.Context, userID string) (*profile.User, error)
	// ListCandidatePool loads a bounded window of user records. This is a
	// fixed-window scan, not an indexed query; the pool size is the service's
	// documented scale ceiling.
	ListCandidatePool(ctx context.Context, poolSize int) ([]*profile.User, error)

	// CreateMatch inserts the match only if neither participant currently has
	// an active match. The check and the insert run in one transaction with
	// both user rows locked, so two concurrent calls over overlapping users
	// cannot both succeed.
	CreateMatch(ctx context.Context, match *Match) error
	GetMatch(ctx context.Context, matchID string) (*Match, error)
	GetActiveMatchFor(ctx context.Context, userID string) (*Match, error)
	CloseMatch(ctx context.Context, match *Match) error

	CreateStarters(ctx context.Context, starters []*Starter) error
	ListStarters(ctx context.Context, matchID string) ([]*Starter, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetUser(ctx context.Context, userID string) (*profile.User, error) {
	var user profile.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, profile.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *postgresRepository) ListCandidatePool(ctx context.Context, poolSize int) ([]*profile.User, error) {
	var users []*profile.User
	query := `SELECT * FROM users ORDER BY created_at LIMIT $1`

	err := r.db.SelectContext(ctx, &users, query, poolSize)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *postgresRepository) CreateMatch(ctx context.Context, match *Match) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Lock both user rows for the duration of the transaction. Concurrent
	// creations touching either user serialize here, which is what makes the
	// active-match check below race-free.
	var locked []string
	err = tx.SelectContext(ctx, &locked,
		`SELECT id FROM users WHERE id IN ($1, $2) ORDER BY id FOR UPDATE`,
		match.UserA, match.UserB,
	)
	if err != nil {
		return err
	}
	if len(locked) != 2 {
		return profile.ErrUserNotFound
	}

	var activeCount int
	err = tx.GetContext(ctx, &activeCount,
		`SELECT COUNT(*) FROM matches
		 WHERE state = 'active' AND (user_a IN ($1, $2) OR user_b IN ($1, $2))`,
		match.UserA, match.UserB,
	)
	if err != nil {
		return err
	}
	if activeCount > 0 {
		return ErrActiveMatchExists
	}

	if match.ID == "" {
		match.ID = uuid.NewString()
	}

	query := `
		INSERT INTO matches (id, user_a, user_b, state, opened_by, score)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowxContext(
		ctx, query,
		match.ID, match.UserA, match.UserB, match.State, match.OpenedBy, match.Score,
	).Scan(&match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepository) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	var match Match
	err := r.db.GetContext(ctx, &match, `SELECT * FROM matches WHERE id = $1`, matchID)
	if err == sql.ErrNoRows {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *postgresRepository) GetActiveMatchFor(ctx context.Context, userID string) (*Match, error) {
	var match Match
	query := `
		SELECT * FROM matches
		WHERE state = 'active' AND (user_a = $1 OR user_b = $1)
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &match, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *postgresRepository) CloseMatch(ctx context.Context, match *Match) error {
	query := `
		UPDATE matches
		SET state = $2, closed_by = $3, close_reason = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		match.ID, match.State, match.ClosedBy, match.CloseReason,
	).Scan(&match.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrMatchNotFound
	}
	return err
}

func (r *postgresRepository) CreateStarters(ctx context.Context, starters []*Starter) error {
	if len(starters) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO conversation_starters (id, match_id, text, created_at) VALUES ($1, $2, $3, $4)`
	for _, starter := range starters {
		if starter.ID == "" {
			starter.ID = uuid.NewString()
		}
		starter.CreatedAt = now
		if _, err := tx.ExecContext(ctx, query, starter.ID, starter.MatchID, starter.Text, starter.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *postgresRepository) ListStarters(ctx context.Context, matchID string) ([]*Starter, error) {
	var starters []*Starter
	query := `SELECT * FROM conversation_starters WHERE match_id = $1 ORDER BY created_at, id`

	err := r.db.SelectContext(ctx, &starters, query, matchID)
	if err != nil {
		return nil, err
	}
	return starters, nil
}
