package profile

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivkoren/levmatch-backend/internal/common/apperrors"
	"github.com/nivkoren/levmatch-backend/internal/common/utils"
	"github.com/nivkoren/levmatch-backend/internal/embedding"
)

type fakeRepository struct {
	users      map[string]*User
	embeddings map[string][]float64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:      make(map[string]*User),
		embeddings: make(map[string][]float64),
	}
}

func (f *fakeRepository) GetUser(ctx context.Context, userID string) (*User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepository) UpdateProfile(ctx context.Context, user *User) error {
	if _, ok := f.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepository) StoreEmbedding(ctx context.Context, userID string, vector []float64) error {
	if _, ok := f.users[userID]; !ok {
		return ErrUserNotFound
	}
	f.embeddings[userID] = vector
	return nil
}

func strPtr(s string) *string { return &s }

func TestReadProfileNotFound(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.ReadProfile(context.Background(), "ghost")
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestReadProfileSanitized(t *testing.T) {
	repo := newFakeRepository()
	birthdate := time.Now().AddDate(-32, 0, -1)
	repo.users["u1"] = &User{
		ID:        "u1",
		Name:      "נועה",
		Birthdate: &birthdate,
		City:      "תל אביב",
		Active:    true,
	}
	svc := NewService(repo)

	view, err := svc.ReadProfile(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", view.UserID)
	assert.Equal(t, 32, view.Age)
	// Empty preference fields fall back to the product defaults.
	assert.Equal(t, Preferences{AgeMin: 24, AgeMax: 36, MaxDistanceKm: 30}, view.Prefs)
	assert.Equal(t, "free", view.Plan)
	assert.NotNil(t, view.Interests)
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	repo := newFakeRepository()
	repo.users["u1"] = &User{ID: "u1", Active: true}
	svc := NewService(repo)

	_, err := svc.UpdateProfile(context.Background(), "intruder", "u1", &UpdateProfileDTO{})
	assert.Equal(t, apperrors.PermissionDenied, apperrors.KindOf(err))
}

func TestUpdateProfileBioTooLong(t *testing.T) {
	repo := newFakeRepository()
	repo.users["u1"] = &User{ID: "u1", Active: true}
	svc := NewService(repo)

	long := strings.Repeat("א", 501)
	_, err := svc.UpdateProfile(context.Background(), "u1", "u1", &UpdateProfileDTO{Bio: &long})
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))

	exact := strings.Repeat("א", 500)
	_, err = svc.UpdateProfile(context.Background(), "u1", "u1", &UpdateProfileDTO{Bio: &exact})
	assert.NoError(t, err)
}

func TestUpdateProfileTooManyPhotos(t *testing.T) {
	repo := newFakeRepository()
	repo.users["u1"] = &User{ID: "u1", Active: true}
	svc := NewService(repo)

	photos := make([]Photo, 7)
	for i := range photos {
		photos[i] = Photo{URL: "https://example.com/p.jpg", Order: i}
	}

	_, err := svc.UpdateProfile(context.Background(), "u1", "u1", &UpdateProfileDTO{Photos: photos})
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
}

func TestUpdateProfileAppliesPartialEdit(t *testing.T) {
	repo := newFakeRepository()
	repo.users["u1"] = &User{ID: "u1", Name: "ישן", City: "חיפה", Active: true}
	svc := NewService(repo)

	view, err := svc.UpdateProfile(context.Background(), "u1", "u1", &UpdateProfileDTO{
		Name:      strPtr("חדש"),
		Interests: &[]string{"יוגה"},
	})
	require.NoError(t, err)

	assert.Equal(t, "חדש", view.Name)
	assert.Equal(t, []string{"יוגה"}, view.Interests)
	// Unset fields are untouched.
	assert.Equal(t, "חיפה", view.City)
}

func TestUpdateProfileAgeMaxOnly(t *testing.T) {
	repo := newFakeRepository()
	repo.users["u1"] = &User{ID: "u1", AgeMin: 25, AgeMax: 35, Active: true}
	svc := NewService(repo)

	ageMax := 40
	dto := &UpdateProfileDTO{AgeMax: &ageMax}

	// A partial edit touching only age_max passes DTO validation.
	require.NoError(t, utils.ValidateStruct(dto))

	view, err := svc.UpdateProfile(context.Background(), "u1", "u1", dto)
	require.NoError(t, err)
	assert.Equal(t, 40, view.Prefs.AgeMax)
	assert.Equal(t, 25, view.Prefs.AgeMin)
}

func TestUpdateProfileAgeRangeInverted(t *testing.T) {
	repo := newFakeRepository()
	repo.users["u1"] = &User{ID: "u1", AgeMin: 30, AgeMax: 45, Active: true}
	svc := NewService(repo)

	// Lowering only age_max below the stored age_min inverts the range.
	ageMax := 20
	_, err := svc.UpdateProfile(context.Background(), "u1", "u1", &UpdateProfileDTO{AgeMax: &ageMax})
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))

	// A consistent pair in the same edit is fine.
	ageMin, ageMax2 := 20, 28
	view, err := svc.UpdateProfile(context.Background(), "u1", "u1", &UpdateProfileDTO{
		AgeMin: &ageMin,
		AgeMax: &ageMax2,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, view.Prefs.AgeMin)
	assert.Equal(t, 28, view.Prefs.AgeMax)
}

func TestStoreEmbeddingRejectsShortVector(t *testing.T) {
	repo := newFakeRepository()
	repo.users["u1"] = &User{ID: "u1", Active: true}
	svc := NewService(repo)

	err := svc.StoreEmbedding(context.Background(), "u1", make([]float64, embedding.Dimensions-1))
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))

	err = svc.StoreEmbedding(context.Background(), "u1", make([]float64, embedding.Dimensions))
	require.NoError(t, err)
	assert.Len(t, repo.embeddings["u1"], embedding.Dimensions)
}
