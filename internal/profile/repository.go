package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	StoreEmbedding(ctx context.Context, userID string, vector []float64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, bio = $3, birthdate = $4, gender = $5, seeking = $6,
		    location_lat = $7, location_lng = $8, city = $9, interests = $10,
		    age_min = $11, age_max = $12, max_distance_km = $13, photos = $14,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx, query,
		user.ID, user.Name, user.Bio, user.Birthdate, user.Gender, user.Seeking,
		user.LocationLat, user.LocationLng, user.City, user.Interests,
		user.AgeMin, user.AgeMax, user.MaxDistance, user.Photos,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) StoreEmbedding(ctx context.Context, userID string, vector []float64) error {
	query := `
		UPDATE users
		SET embedding = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, userID, Vector(vector))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
