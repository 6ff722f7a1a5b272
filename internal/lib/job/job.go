// Package job runs background work on Asynq.
//
// Asynq is a Redis-backed queue: the asynq.Client enqueues tasks and the
// asynq.Server runs the handlers that consume them. The portfolio uses it
// to e-mail the site owner when a record changes.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio/internal/config"
	"github.com/deppfellow/portfolio/internal/lib/email"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	client enqueuer
	server *asynq.Server
	logger *zerolog.Logger

	mailer   Mailer
	notifyTo string
	now      func() time.Time
}

// NewJobService creates a JobService backed by the Redis in cfg.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		client:   asynq.NewClient(redisOpt),
		server:   server,
		logger:   logger,
		notifyTo: cfg.Integration.NotifyEmail,
		now:      time.Now,
	}
}

// InitHandlers sets up the dependencies task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
}

// EnqueueRecordChanged queues a change notification for the record.
func (j *JobService) EnqueueRecordChanged(ctx context.Context, entity, action string, id int) error {
	task, err := NewRecordChangedTask(RecordChangedPayload{
		Entity:     entity,
		Action:     action,
		ID:         id,
		OccurredAt: j.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("building %s task: %w", TaskRecordChanged, err)
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueueing %s task: %w", TaskRecordChanged, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued record changed task")

	return nil
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskRecordChanged, j.handleRecordChangedTask)
	return mux
}

// Start starts the worker server. It returns once workers are running.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.mux()); err != nil {
		return err
	}
	return nil
}

// Stop waits for running tasks and closes the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("closing job client")
	}
}
