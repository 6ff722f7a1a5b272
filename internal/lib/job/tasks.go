package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskRecordChanged is the task type stored in Redis.
	TaskRecordChanged = "record:changed"
)

// RecordChangedPayload describes a create, update or delete of a record.
type RecordChangedPayload struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         int       `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewRecordChangedTask builds the notification task. It goes to the low
// queue: a late notification is harmless.
func NewRecordChangedTask(p RecordChangedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRecordChanged,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
