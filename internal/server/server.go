// Package server composes the application's shared dependencies and owns
// their lifecycle: config, loggers, database pool, Redis, background jobs,
// the realtime hub and the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/config"
	"github.com/deppfellow/restaurant-backend/internal/database"
	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/deppfellow/restaurant-backend/internal/lib/job"
	"github.com/deppfellow/restaurant-backend/internal/lib/realtime"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/restaurant-backend/internal/logger"
)

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database

	// Redis is nil when the initial ping failed; callers must degrade.
	Redis *redis.Client

	Job      *job.JobService
	Realtime *realtime.Hub

	// Events fans domain events out to the realtime broker and Kafka.
	Events events.Publisher

	broker         *realtime.Broker
	kafka          *events.KafkaPublisher
	stopBackground context.CancelFunc
	httpServer     *http.Server
}

// New connects to Postgres and Redis and builds the job service and event
// pipeline. Workers are not started here; call StartBackground once
// handlers are wired.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to Redis, continuing without cache and cross-instance realtime")
		_ = redisClient.Close()
		redisClient = nil
	}

	hub := realtime.NewHub(logger)
	broker := realtime.NewBroker(redisClient, hub, logger)

	publishers := events.Multi{broker}
	var kafkaPublisher *events.KafkaPublisher
	if cfg.Integration.KafkaEnabled() {
		kafkaPublisher = events.NewKafkaPublisher(cfg.Integration.KafkaBrokers, cfg.Integration.KafkaTopic)
		publishers = append(publishers, kafkaPublisher)
		logger.Info().Str("topic", cfg.Integration.KafkaTopic).Msg("exporting domain events to kafka")
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           job.NewJobService(logger, cfg),
		Realtime:      hub,
		Events:        publishers,
		broker:        broker,
		kafka:         kafkaPublisher,
	}, nil
}

// StartBackground starts the Asynq workers, the maintenance scheduler and
// the realtime relay. It returns once they are running.
func (s *Server) StartBackground() error {
	if err := s.Job.Start(); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stopBackground = cancel

	go func() {
		if err := s.broker.Run(ctx); err != nil {
			s.Logger.Error().Err(err).Msg("realtime broker stopped")
		}
	}()

	return nil
}

// SetupHTTPServer configures the net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains HTTP, disconnects websocket clients, stops background
// work and closes every connection. The first error is returned after
// everything has been attempted.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	s.Realtime.Close()
	if s.stopBackground != nil {
		s.stopBackground()
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.kafka != nil {
		if err := s.kafka.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close kafka writer: %w", err))
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
	}

	return errors.Join(errs...)
}
