package services

import (
	"context"
	"testing"

	"gamenight/internal/models"
	"gamenight/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTaskRepo struct {
	repositories.TaskRepository
	statuses map[uuid.UUID]models.TaskState
}

func (r *recordingTaskRepo) SetStatus(
	_ context.Context,
	taskID uuid.UUID,
	status models.TaskState,
) error {
	r.statuses[taskID] = status
	return nil
}

type recordingNightRepo struct {
	repositories.GameNightRepository
	firedHandles []uuid.UUID
}

func (r *recordingNightRepo) MarkFeedbackFired(_ context.Context, handle uuid.UUID) error {
	r.firedHandles = append(r.firedHandles, handle)
	return nil
}

type recordingMailer struct {
	subjects   []string
	recipients [][]string
}

func (m *recordingMailer) Send(
	_ context.Context,
	subject, _ string,
	recipients []string,
) error {
	m.subjects = append(m.subjects, subject)
	m.recipients = append(m.recipients, recipients)
	return nil
}

func TestDispatchService_Fire(t *testing.T) {
	taskRepo := &recordingTaskRepo{statuses: make(map[uuid.UUID]models.TaskState)}
	nightRepo := &recordingNightRepo{}
	mailer := &recordingMailer{}

	dispatch := &DispatchService{
		taskRepo:      taskRepo,
		gameNightRepo: nightRepo,
		mailer:        mailer,
		log:           logger.New("dispatch"),
	}

	handle := uuid.New()
	payload := models.NotificationPayload{
		Subject:    "How was game night?",
		Body:       "Leave your feedback",
		Recipients: []string{"ada@example.com", "alan@example.com"},
	}

	dispatch.fire(handle, payload)

	require.Len(t, mailer.subjects, 1)
	assert.Equal(t, payload.Subject, mailer.subjects[0])
	assert.Equal(t, payload.Recipients, mailer.recipients[0])

	assert.Equal(t, models.TaskFired, taskRepo.statuses[handle])
	assert.Equal(t, []uuid.UUID{handle}, nightRepo.firedHandles,
		"delivery must close the gamenight's task reference too")
}
