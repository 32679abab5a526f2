// internal/notification/models.go
package notification

import "time"

// PushNotification is a single outbound push payload aimed at one or
// more device tokens.
type PushNotification struct {
	Tokens []string          `json:"tokens"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// PushToken is a registered device token for a user.
type PushToken struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Token     string    `db:"token" json:"token"`
	Platform  string    `db:"platform" json:"platform"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
