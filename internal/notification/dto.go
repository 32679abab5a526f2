// internal/notification/dto.go
package notification

// SendPushDTO is the payload for a direct push send.
type SendPushDTO struct {
	UserID string                 `json:"userId"`
	Token  string                 `json:"token"`
	Title  string                 `json:"title" validate:"required"`
	Body   string                 `json:"body" validate:"required"`
	Data   map[string]interface{} `json:"data"`
}

// RegisterTokenDTO registers a device token for the caller.
type RegisterTokenDTO struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,oneof=ios android web"`
}
