package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivkoren/levmatch-backend/internal/common/apperrors"
	"github.com/nivkoren/levmatch-backend/internal/events"
)

type fakeRepository struct {
	tokens map[string][]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tokens: make(map[string][]string)}
}

func (f *fakeRepository) SaveToken(ctx context.Context, userID, token, platform string) error {
	f.tokens[userID] = append(f.tokens[userID], token)
	return nil
}

func (f *fakeRepository) ListTokens(ctx context.Context, userID string) ([]string, error) {
	return f.tokens[userID], nil
}

type failingPushSender struct {
	err error
}

func (f *failingPushSender) SendPush(ctx context.Context, notification *PushNotification) error {
	return f.err
}

func TestNotifyUserNoTokensIsNoop(t *testing.T) {
	sender := NewMockPushSender()
	svc := NewService(newFakeRepository(), sender)

	err := svc.NotifyUser(context.Background(), "nobody", "title", "body", nil)

	require.NoError(t, err)
	assert.Empty(t, sender.SentNotifications)
}

func TestNotifyUserFansOutToAllTokens(t *testing.T) {
	repo := newFakeRepository()
	repo.tokens["u1"] = []string{"tok-1", "tok-2"}
	sender := NewMockPushSender()
	svc := NewService(repo, sender)

	err := svc.NotifyUser(context.Background(), "u1", "שלום", "גוף ההודעה", nil)

	require.NoError(t, err)
	require.Len(t, sender.SentNotifications, 1)
	sent := sender.SentNotifications[0]
	assert.Equal(t, []string{"tok-1", "tok-2"}, sent.Tokens)
	assert.Equal(t, "שלום", sent.Title)
	assert.Equal(t, "גוף ההודעה", sent.Body)
}

func TestNotifyUserCoercesDataToStrings(t *testing.T) {
	repo := newFakeRepository()
	repo.tokens["u1"] = []string{"tok-1"}
	sender := NewMockPushSender()
	svc := NewService(repo, sender)

	err := svc.NotifyUser(context.Background(), "u1", "t", "b", map[string]interface{}{
		"count":   7,
		"ratio":   0.5,
		"matchId": "m-1",
	})

	require.NoError(t, err)
	require.Len(t, sender.SentNotifications, 1)
	data := sender.SentNotifications[0].Data
	assert.Equal(t, "7", data["count"])
	assert.Equal(t, "0.5", data["ratio"])
	assert.Equal(t, "m-1", data["matchId"])
}

func TestSendToTokenRequiresToken(t *testing.T) {
	svc := NewService(newFakeRepository(), NewMockPushSender())

	err := svc.SendToToken(context.Background(), "", "t", "b", nil)
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
}

func TestRegisterTokenRequiresToken(t *testing.T) {
	svc := NewService(newFakeRepository(), NewMockPushSender())

	err := svc.RegisterToken(context.Background(), "u1", "", "ios")
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
}

func TestRegisterTokenThenNotify(t *testing.T) {
	repo := newFakeRepository()
	sender := NewMockPushSender()
	svc := NewService(repo, sender)

	require.NoError(t, svc.RegisterToken(context.Background(), "u1", "tok-1", "android"))

	err := svc.NotifyUser(context.Background(), "u1", "t", "b", nil)
	require.NoError(t, err)
	assert.Len(t, sender.SentNotifications, 1)
}

func TestHandleMessageCreated(t *testing.T) {
	repo := newFakeRepository()
	repo.tokens["u2"] = []string{"tok-u2"}
	sender := NewMockPushSender()
	svc := NewService(repo, sender)

	err := svc.HandleMessageCreated(context.Background(), events.MessageCreated{
		MatchID:   "m-1",
		MessageID: "msg-1",
		From:      "u1",
		Recipient: "u2",
		Preview:   "היי, מה קורה?",
	})

	require.NoError(t, err)
	require.Len(t, sender.SentNotifications, 1)
	sent := sender.SentNotifications[0]
	assert.Equal(t, []string{"tok-u2"}, sent.Tokens)
	assert.Equal(t, "הודעה חדשה", sent.Title)
	assert.Equal(t, "היי, מה קורה?", sent.Body)
	assert.Equal(t, "m-1", sent.Data["matchId"])
	assert.Equal(t, "u1", sent.Data["from"])
}

func TestHandleMessageCreatedDeliveryFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.tokens["u2"] = []string{"tok-u2"}
	sendErr := errors.New("fcm unavailable")
	svc := NewService(repo, &failingPushSender{err: sendErr})

	err := svc.HandleMessageCreated(context.Background(), events.MessageCreated{
		MatchID:   "m-1",
		MessageID: "msg-1",
		From:      "u1",
		Recipient: "u2",
		Preview:   "שלום",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
	assert.Contains(t, err.Error(), "m-1")
}
