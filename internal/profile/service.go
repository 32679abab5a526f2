// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"time"

	"github.com/nivkoren/levmatch-backend/internal/common/apperrors"
	"github.com/nivkoren/levmatch-backend/internal/embedding"
)

const maxBioLength = 500

type Service interface {
	ReadProfile(ctx context.Context, userID string) (*SanitizedUser, error)
	UpdateProfile(ctx context.Context, callerID, userID string, dto *UpdateProfileDTO) (*SanitizedUser, error)
	StoreEmbedding(ctx context.Context, userID string, vector []float64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ReadProfile returns the sanitized view of a user: derived age instead of
// the raw birth instant, no device tokens, no status flags.
func (s *service) ReadProfile(ctx context.Context, userID string) (*SanitizedUser, error) {
	if userID == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "user id is required")
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "profile not found")
		}
		return nil, err
	}

	return Sanitize(user, time.Now()), nil
}

func (s *service) UpdateProfile(ctx context.Context, callerID, userID string, dto *UpdateProfileDTO) (*SanitizedUser, error) {
	if userID == "" {
		return nil, apperrors.New(apperrors.InvalidArgument, "user id is required")
	}
	if callerID != userID {
		return nil, apperrors.New(apperrors.PermissionDenied, "profiles can only be edited by their owner")
	}
	if len([]rune(dto.bio())) > maxBioLength {
		return nil, apperrors.New(apperrors.InvalidArgument, "bio is too long")
	}
	if len(dto.Photos) > 6 {
		return nil, apperrors.New(apperrors.InvalidArgument, "at most 6 photos are allowed")
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "profile not found")
		}
		return nil, err
	}

	dto.apply(user)

	if user.AgeMin > 0 && user.AgeMax > 0 && user.AgeMax < user.AgeMin {
		return nil, apperrors.New(apperrors.InvalidArgument, "age_max must not be less than age_min")
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return Sanitize(user, time.Now()), nil
}

// StoreEmbedding saves an externally produced embedding vector verbatim.
func (s *service) StoreEmbedding(ctx context.Context, userID string, vector []float64) error {
	if userID == "" || len(vector) < embedding.Dimensions {
		return apperrors.New(apperrors.InvalidArgument, "a user id and a full-length vector are required")
	}

	err := s.repo.StoreEmbedding(ctx, userID, vector)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperrors.New(apperrors.NotFound, "profile not found")
		}
		return err
	}

	return nil
}

// Sanitize maps a stored user to its public view.
func Sanitize(user *User, now time.Time) *SanitizedUser {
	prefs := Preferences{AgeMin: user.AgeMin, AgeMax: user.AgeMax, MaxDistanceKm: user.MaxDistance}
	if prefs.AgeMin == 0 && prefs.AgeMax == 0 && prefs.MaxDistanceKm == 0 {
		prefs = Preferences{AgeMin: 24, AgeMax: 36, MaxDistanceKm: 30}
	}

	plan := user.Plan
	if plan == "" {
		plan = "free"
	}

	interests := user.Interests
	if interests == nil {
		interests = StringList{}
	}

	return &SanitizedUser{
		UserID:    user.ID,
		Name:      user.Name,
		Age:       user.Age(now),
		Gender:    user.Gender,
		Seeking:   user.Seeking,
		Location:  user.Location(),
		City:      user.City,
		Bio:       user.Bio,
		Interests: interests,
		Prefs:     prefs,
		Plan:      plan,
	}
}
