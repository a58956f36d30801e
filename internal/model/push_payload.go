package model

import "github.com/deppfellow/restaurant-backend/internal/validation"

// PushSubscribePayload mirrors the browser's PushSubscription.toJSON().
type PushSubscribePayload struct {
	Endpoint string `json:"endpoint" validate:"required,url,max=2048"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required,max=200"`
		Auth   string `json:"auth" validate:"required,max=100"`
	} `json:"keys"`
	UserAgent string `json:"user_agent" validate:"max=300"`
}

func (p *PushSubscribePayload) Validate() error {
	return validation.Struct(p)
}

type PushUnsubscribePayload struct {
	Endpoint string `json:"endpoint" validate:"required,max=2048"`
}

func (p *PushUnsubscribePayload) Validate() error {
	return validation.Struct(p)
}
