package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio/internal/lib/email"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "low"}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

type fakeMailer struct {
	to      string
	changes []email.RecordChange
	err     error
}

func (f *fakeMailer) SendRecordChangedEmail(to string, change email.RecordChange) error {
	f.to = to
	f.changes = append(f.changes, change)
	return f.err
}

func newTestJobService(enq *fakeEnqueuer, mailer *fakeMailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{
		client:   enq,
		logger:   &logger,
		mailer:   mailer,
		notifyTo: "owner@example.dev",
		now:      func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) },
	}
}

func TestEnqueueRecordChanged(t *testing.T) {
	enq := &fakeEnqueuer{}
	j := newTestJobService(enq, &fakeMailer{})

	require.NoError(t, j.EnqueueRecordChanged(context.Background(), "Skills", "created", 7))
	require.Len(t, enq.tasks, 1)
	require.Equal(t, TaskRecordChanged, enq.tasks[0].Type())

	var p RecordChangedPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	require.Equal(t, RecordChangedPayload{
		Entity:     "Skills",
		Action:     "created",
		ID:         7,
		OccurredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}, p)
}

func TestEnqueueRecordChangedFailure(t *testing.T) {
	enq := &fakeEnqueuer{err: errors.New("redis down")}
	j := newTestJobService(enq, &fakeMailer{})

	err := j.EnqueueRecordChanged(context.Background(), "Education", "deleted", 3)
	require.ErrorIs(t, err, enq.err)
}

func TestHandleRecordChangedTask(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(&fakeEnqueuer{}, mailer)

	task, err := NewRecordChangedTask(RecordChangedPayload{Entity: "Experience", Action: "updated", ID: 5})
	require.NoError(t, err)

	require.NoError(t, j.handleRecordChangedTask(context.Background(), task))
	require.Equal(t, "owner@example.dev", mailer.to)
	require.Equal(t, []email.RecordChange{{Entity: "Experience", Action: "updated", ID: 5}}, mailer.changes)
}

func TestHandleRecordChangedTaskMailerError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("resend unavailable")}
	j := newTestJobService(&fakeEnqueuer{}, mailer)

	task, err := NewRecordChangedTask(RecordChangedPayload{Entity: "Skills", Action: "deleted", ID: 1})
	require.NoError(t, err)

	require.ErrorIs(t, j.handleRecordChangedTask(context.Background(), task), mailer.err)
}

func TestHandleRecordChangedTaskBadPayload(t *testing.T) {
	j := newTestJobService(&fakeEnqueuer{}, &fakeMailer{})

	err := j.handleRecordChangedTask(context.Background(), asynq.NewTask(TaskRecordChanged, []byte("{")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestMuxRoutesRecordChanged(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(&fakeEnqueuer{}, mailer)

	task, err := NewRecordChangedTask(RecordChangedPayload{Entity: "Skills", Action: "created", ID: 9})
	require.NoError(t, err)

	require.NoError(t, j.mux().ProcessTask(context.Background(), task))
	require.Len(t, mailer.changes, 1)
}
