// Package job runs background work on Asynq: push notifications,
// reservation emails and periodic maintenance.
package job

import (
	"context"

	"github.com/deppfellow/restaurant-backend/internal/config"
	"github.com/deppfellow/restaurant-backend/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// JobService holds the Asynq client (enqueue), the worker server and the
// maintenance scheduler.
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	cron   *cron.Cron
	logger *zerolog.Logger

	push        PushDispatcher
	maintenance Maintainer
	mailer      Mailer
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				QueueCritical: 6, // push notifications
				QueueDefault:  3, // guest emails
				QueueLow:      1, // maintenance
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// EnqueueContext satisfies the services' Enqueuer interface.
func (j *JobService) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return j.Client.EnqueueContext(ctx, task, opts...)
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskPushNotify, j.handlePushNotifyTask)
	mux.HandleFunc(TaskReservationEmail, j.handleReservationEmailTask)
	mux.HandleFunc(TaskMaintenanceNotices, j.handleNoticeMaintenanceTask)
	mux.HandleFunc(TaskMaintenanceNoShows, j.handleNoShowMaintenanceTask)
	return mux
}

// Start launches the workers and the scheduler and returns immediately.
// InitHandlers must have been called first.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.mux()); err != nil {
		return err
	}

	return j.startScheduler()
}

// Stop halts the scheduler, waits for running tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
	j.server.Shutdown()
	_ = j.Client.Close()
}

// Mailer is what the email task needs from the email client.
type Mailer interface {
	SendReservationEmail(ctx context.Context, to string, name email.Template, data email.ReservationData) error
}
