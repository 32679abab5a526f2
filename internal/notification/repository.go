// internal/notification/repository.go
package notification

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Repository persists device tokens.
type Repository interface {
	SaveToken(ctx context.Context, userID, token, platform string) error
	ListTokens(ctx context.Context, userID string) ([]string, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) SaveToken(ctx context.Context, userID, token, platform string) error {
	query := `
		INSERT INTO push_tokens (user_id, token, platform, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (token) DO UPDATE SET user_id = $1, platform = $3`

	_, err := r.db.ExecContext(ctx, query, userID, token, platform)
	return err
}

func (r *postgresRepository) ListTokens(ctx context.Context, userID string) ([]string, error) {
	tokens := []string{}
	query := `SELECT token FROM push_tokens WHERE user_id = $1 ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &tokens, query, userID); err != nil {
		return nil, err
	}
	return tokens, nil
}
