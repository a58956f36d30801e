package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/lib/email"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TaskPushNotify         = "push:notify"
	TaskReservationEmail   = "email:reservation"
	TaskMaintenanceNotices = "maintenance:notices"
	TaskMaintenanceNoShows = "maintenance:no-shows"
)

// PushNotifyPayload targets every subscription of a restaurant, or only
// UserID's subscriptions when set.
type PushNotifyPayload struct {
	RestaurantID uuid.UUID         `json:"restaurant_id"`
	UserID       string            `json:"user_id,omitempty"`
	Message      model.PushMessage `json:"message"`
}

func NewPushNotifyTask(p PushNotifyPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	// Sender already retries each subscription; task retries cover
	// database failures only.
	return asynq.NewTask(
		TaskPushNotify,
		payload,
		asynq.MaxRetry(2),
		asynq.Queue(QueueCritical),
		asynq.Timeout(30*time.Second),
	), nil
}

type ReservationEmailPayload struct {
	To       string                `json:"to"`
	Template email.Template        `json:"template"`
	Data     email.ReservationData `json:"data"`
}

func NewReservationEmailTask(p ReservationEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskReservationEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewMaintenanceTask builds one of the payload-less maintenance tasks.
// Unique keeps instances that tick together from doubling the work.
func NewMaintenanceTask(taskType string) *asynq.Task {
	return asynq.NewTask(
		taskType,
		nil,
		asynq.MaxRetry(1),
		asynq.Queue(QueueLow),
		asynq.Timeout(2*time.Minute),
		asynq.Unique(4*time.Minute),
	)
}
