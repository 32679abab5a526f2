// internal/notification/push.go
package notification

import (
	"context"
	"errors"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// PushSender delivers push notifications to device tokens.
type PushSender interface {
	SendPush(ctx context.Context, notification *PushNotification) error
}

// FCMPushSender implements push delivery over Firebase Cloud Messaging.
type FCMPushSender struct {
	client *messaging.Client
}

// NewFCMPushSender initializes the Firebase app from either a credentials
// file path or inline JSON credentials.
func NewFCMPushSender(ctx context.Context, credentialsPath, credentialsJSON string) (*FCMPushSender, error) {
	var opt option.ClientOption
	switch {
	case credentialsPath != "":
		opt = option.WithCredentialsFile(credentialsPath)
	case credentialsJSON != "":
		opt = option.WithCredentialsJSON([]byte(credentialsJSON))
	default:
		return nil, errors.New("no Firebase credentials configured")
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %v", err)
	}

	return &FCMPushSender{client: client}, nil
}

// SendPush sends one notification to every token it carries.
func (s *FCMPushSender) SendPush(ctx context.Context, notification *PushNotification) error {
	if len(notification.Tokens) == 0 {
		return errors.New("no tokens provided")
	}

	data := notification.Data
	if data == nil {
		data = make(map[string]string)
	}

	message := &messaging.MulticastMessage{
		Tokens: notification.Tokens,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
		},
	}

	batchResponse, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		log.Printf("Failed to send push notification: %v", err)
		return err
	}

	if batchResponse.FailureCount > 0 {
		for idx, resp := range batchResponse.Responses {
			if resp.Error != nil {
				log.Printf("Failed to send to token %s: %v",
					notification.Tokens[idx], resp.Error)
			}
		}
	}

	log.Printf("Successfully sent %d push notifications", batchResponse.SuccessCount)
	return nil
}

// MockPushSender records notifications instead of sending them. Used in
// tests and when push delivery is disabled.
type MockPushSender struct {
	SentNotifications []*PushNotification
}

func NewMockPushSender() *MockPushSender {
	return &MockPushSender{
		SentNotifications: make([]*PushNotification, 0),
	}
}

func (m *MockPushSender) SendPush(ctx context.Context, notification *PushNotification) error {
	m.SentNotifications = append(m.SentNotifications, notification)
	log.Printf("Mock: would send push %q to %d tokens", notification.Title, len(notification.Tokens))
	return nil
}
