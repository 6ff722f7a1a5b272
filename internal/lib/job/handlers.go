package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/portfolio/internal/lib/email"
)

// Mailer delivers the notification e-mail. *email.Client implements it.
type Mailer interface {
	SendRecordChangedEmail(to string, change email.RecordChange) error
}

func (j *JobService) handleRecordChangedTask(ctx context.Context, t *asynq.Task) error {
	var p RecordChangedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a bad payload.
		return fmt.Errorf("failed to unmarshal record changed payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskRecordChanged).
		Str("entity", p.Entity).
		Str("action", p.Action).
		Int("id", p.ID).
		Logger()

	logger.Info().Msg("processing record changed task")

	err := j.mailer.SendRecordChangedEmail(j.notifyTo, email.RecordChange{
		Entity:     p.Entity,
		Action:     p.Action,
		ID:         p.ID,
		OccurredAt: p.OccurredAt,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to send record changed email")
		return err
	}

	logger.Info().Msg("sent record changed email")
	return nil
}
