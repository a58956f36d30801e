package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const maintenanceSpec = "@every 5m"

func (j *JobService) startScheduler() error {
	logger := cronLogger{logger: j.logger}
	j.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := j.cron.AddFunc(maintenanceSpec, j.enqueueMaintenance); err != nil {
		return err
	}

	j.cron.Start()
	return nil
}

func (j *JobService) enqueueMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, taskType := range []string{TaskMaintenanceNotices, TaskMaintenanceNoShows} {
		_, err := j.Client.EnqueueContext(ctx, NewMaintenanceTask(taskType))
		if err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
			j.logger.Error().Err(err).Str("type", taskType).Msg("failed to enqueue maintenance task")
		}
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger *zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

// asynqLogger adapts zerolog to asynq.Logger.
type asynqLogger struct {
	logger zerolog.Logger
}

func newAsynqLogger(logger *zerolog.Logger) asynqLogger {
	return asynqLogger{logger: logger.With().Str("component", "asynq").Logger()}
}

func (l asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...any) { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...any) { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
