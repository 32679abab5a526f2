package messaging

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivkoren/levmatch-backend/internal/common/apperrors"
	"github.com/nivkoren/levmatch-backend/internal/config"
	"github.com/nivkoren/levmatch-backend/internal/dating"
	"github.com/nivkoren/levmatch-backend/internal/events"
	"github.com/nivkoren/levmatch-backend/internal/moderation"
)

type fakeRepository struct {
	mu       sync.Mutex
	matches  map[string]*dating.Match
	messages []*Message
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{matches: make(map[string]*dating.Match)}
}

func (f *fakeRepository) addMatch(match *dating.Match) {
	f.matches[match.ID] = match
}

func (f *fakeRepository) GetMatch(ctx context.Context, matchID string) (*dating.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[matchID]
	if !ok {
		return nil, dating.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (f *fakeRepository) CreateMessage(ctx context.Context, message *Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	message.ID = uuid.NewString()
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)

	if match, ok := f.matches[message.MatchID]; ok {
		now := message.CreatedAt
		match.LastMessageAt = &now
		match.UpdatedAt = now
	}
	return nil
}

func (f *fakeRepository) ListMessages(ctx context.Context, matchID string, limit int) ([]*Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	thread := []*Message{}
	for _, message := range f.messages {
		if message.MatchID == matchID {
			thread = append(thread, message)
		}
		if len(thread) == limit {
			break
		}
	}
	return thread, nil
}

func activeMatch(userA, userB string) *dating.Match {
	return &dating.Match{
		ID:    uuid.NewString(),
		UserA: userA,
		UserB: userB,
		State: dating.MatchActive,
	}
}

func newTestService(repo Repository) (Service, *events.Bus) {
	bus := events.NewBus()
	engine := moderation.NewEngine(config.DefaultModerationTerms)
	return NewService(repo, engine, bus, 2000), bus
}

func TestStoreMessageMissingFields(t *testing.T) {
	svc, _ := newTestService(newFakeRepository())

	cases := []*StoreMessageDTO{
		nil,
		{From: "u1", Text: "hi"},
		{MatchID: "m1", Text: "hi"},
		{MatchID: "m1", From: "u1"},
	}
	for _, dto := range cases {
		_, err := svc.StoreMessage(context.Background(), "u1", dto)
		assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
	}
}

func TestStoreMessageImpersonationRejected(t *testing.T) {
	svc, _ := newTestService(newFakeRepository())

	_, err := svc.StoreMessage(context.Background(), "u1", &StoreMessageDTO{
		MatchID: "m1", From: "u2", Text: "hi",
	})

	assert.Equal(t, apperrors.PermissionDenied, apperrors.KindOf(err))
}

func TestStoreMessageTooLong(t *testing.T) {
	svc, _ := newTestService(newFakeRepository())

	_, err := svc.StoreMessage(context.Background(), "u1", &StoreMessageDTO{
		MatchID: "m1", From: "u1", Text: strings.Repeat("א", 2001),
	})

	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
}

func TestStoreMessageExactLengthAllowed(t *testing.T) {
	repo := newFakeRepository()
	match := activeMatch("u1", "u2")
	repo.addMatch(match)
	svc, bus := newTestService(repo)

	_, err := svc.StoreMessage(context.Background(), "u1", &StoreMessageDTO{
		MatchID: match.ID, From: "u1", Text: strings.Repeat("א", 2000),
	})
	bus.Wait()

	assert.NoError(t, err)
}

func TestStoreMessageBlockedByModeration(t *testing.T) {
	repo := newFakeRepository()
	match := activeMatch("u1", "u2")
	repo.addMatch(match)
	svc, _ := newTestService(repo)

	_, err := svc.StoreMessage(context.Background(), "u1", &StoreMessageDTO{
		MatchID: match.ID, From: "u1", Text: "אני שונא אותך, יא אלים",
	})

	assert.Equal(t, apperrors.FailedPrecondition, apperrors.KindOf(err))
	// Rejected messages are never written.
	assert.Empty(t, repo.messages)
}

func TestStoreMessageMatchNotFound(t *testing.T) {
	svc, _ := newTestService(newFakeRepository())

	_, err := svc.StoreMessage(context.Background(), "u1", &StoreMessageDTO{
		MatchID: uuid.NewString(), From: "u1", Text: "שלום",
	})

	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestStoreMessageClosedMatch(t *testing.T) {
	repo := newFakeRepository()
	match := activeMatch("u1", "u2")
	match.State = dating.MatchClosed
	repo.addMatch(match)
	svc, _ := newTestService(repo)

	_, err := svc.StoreMessage(context.Background(), "u1", &StoreMessageDTO{
		MatchID: match.ID, From: "u1", Text: "שלום",
	})

	assert.Equal(t, apperrors.FailedPrecondition, apperrors.KindOf(err))
}

func TestStoreMessageNonParticipant(t *testing.T) {
	repo := newFakeRepository()
	match := activeMatch("u1", "u2")
	repo.addMatch(match)
	svc, _ := newTestService(repo)

	_, err := svc.StoreMessage(context.Background(), "stranger", &StoreMessageDTO{
		MatchID: match.ID, From: "stranger", Text: "שלום",
	})

	assert.Equal(t, apperrors.PermissionDenied, apperrors.KindOf(err))
	assert.Empty(t, repo.messages)
}

func TestStoreMessageSuccess(t *testing.T) {
	repo := newFakeRepository()
	match := activeMatch("u1", "u2")
	repo.addMatch(match)
	svc, bus := newTestService(repo)

	var mu sync.Mutex
	var received []events.MessageCreated
	bus.OnMessageCreated(func(ctx context.Context, ev events.MessageCreated) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, ev)
		return nil
	})

	message, err := svc.StoreMessage(context.Background(), "u1", &StoreMessageDTO{
		MatchID: match.ID, From: "u1", Text: "היי, מה שלומך?",
	})
	require.NoError(t, err)
	bus.Wait()

	assert.NotEmpty(t, message.ID)
	assert.Equal(t, StatusSent, message.Status)
	assert.True(t, moderation.Decision(message.Moderation).Allowed)

	// Match activity timestamps were bumped with the write.
	stored := repo.matches[match.ID]
	require.NotNil(t, stored.LastMessageAt)
	assert.Equal(t, *stored.LastMessageAt, stored.UpdatedAt)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, match.ID, received[0].MatchID)
	assert.Equal(t, "u1", received[0].From)
	assert.Equal(t, "u2", received[0].Recipient)
	assert.Equal(t, "היי, מה שלומך?", received[0].Preview)
}

func TestStoreMessagePreviewTruncated(t *testing.T) {
	repo := newFakeRepository()
	match := activeMatch("u1", "u2")
	repo.addMatch(match)
	svc, bus := newTestService(repo)

	var mu sync.Mutex
	var preview string
	bus.OnMessageCreated(func(ctx context.Context, ev events.MessageCreated) error {
		mu.Lock()
		defer mu.Unlock()
		preview = ev.Preview
		return nil
	})

	long := strings.Repeat("ש", 150)
	_, err := svc.StoreMessage(context.Background(), "u2", &StoreMessageDTO{
		MatchID: match.ID, From: "u2", Text: long,
	})
	require.NoError(t, err)
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, strings.Repeat("ש", 80), preview)
}

func TestListMessagesParticipantsOnly(t *testing.T) {
	repo := newFakeRepository()
	match := activeMatch("u1", "u2")
	repo.addMatch(match)
	svc, bus := newTestService(repo)

	_, err := svc.StoreMessage(context.Background(), "u1", &StoreMessageDTO{
		MatchID: match.ID, From: "u1", Text: "ראשונה",
	})
	require.NoError(t, err)
	bus.Wait()

	messages, err := svc.ListMessages(context.Background(), "u2", match.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "ראשונה", messages[0].Text)

	_, err = svc.ListMessages(context.Background(), "stranger", match.ID, 0)
	assert.Equal(t, apperrors.PermissionDenied, apperrors.KindOf(err))
}

func TestListMessagesUnknownMatch(t *testing.T) {
	svc, _ := newTestService(newFakeRepository())

	_, err := svc.ListMessages(context.Background(), "u1", uuid.NewString(), 0)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
