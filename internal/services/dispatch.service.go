package services

import (
	"context"
	"encoding/json"
	"time"

	"gamenight/internal/metrics"
	"gamenight/internal/models"
	"gamenight/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dispatcher is the deferred-notification collaborator consumed by the
// gamenight lifecycle: hand it a payload and a fire-at timestamp, get back an
// opaque handle; revoke by handle, idempotently.
type Dispatcher interface {
	Schedule(ctx context.Context, payload models.NotificationPayload, fireAt time.Time) (uuid.UUID, error)
	Revoke(ctx context.Context, handle uuid.UUID) error
}

// DispatchService implements Dispatcher over the shared gocron scheduler,
// persisting every request as a ScheduledTask row so pending timers can be
// resynced from the store after a restart.
type DispatchService struct {
	scheduler     *SchedulerService
	taskRepo      repositories.TaskRepository
	gameNightRepo repositories.GameNightRepository
	db            *gorm.DB
	mailer        Mailer
	log           logger.Logger
}

func NewDispatchService(
	scheduler *SchedulerService,
	taskRepo repositories.TaskRepository,
	gameNightRepo repositories.GameNightRepository,
	db *gorm.DB,
	mailer Mailer,
) *DispatchService {
	return &DispatchService{
		scheduler:     scheduler,
		taskRepo:      taskRepo,
		gameNightRepo: gameNightRepo,
		db:            db,
		mailer:        mailer,
		log:           logger.New("dispatch"),
	}
}

func (d *DispatchService) Schedule(
	ctx context.Context,
	payload models.NotificationPayload,
	fireAt time.Time,
) (uuid.UUID, error) {
	log := d.log.Function("Schedule")

	raw, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, log.Err("failed to marshal notification payload", err)
	}

	task := &models.ScheduledTask{
		FireAt:  fireAt,
		Payload: raw,
		Status:  models.TaskScheduled,
	}
	if err := d.taskRepo.Create(ctx, d.db, task); err != nil {
		return uuid.Nil, err
	}

	if err := d.registerTimer(task.ID, payload, fireAt); err != nil {
		return uuid.Nil, err
	}

	metrics.NotificationsScheduled.Inc()
	log.Info("deferred notification scheduled", "handle", task.ID, "fireAt", fireAt)
	return task.ID, nil
}

// Revoke cancels a pending task. Revoking a handle that already fired or was
// already revoked is a no-op.
func (d *DispatchService) Revoke(ctx context.Context, handle uuid.UUID) error {
	log := d.log.Function("Revoke")

	d.scheduler.RemoveByTag(handle.String())

	if err := d.taskRepo.SetStatus(ctx, handle, models.TaskRevoked); err != nil {
		return err
	}

	metrics.NotificationsRevoked.Inc()
	log.Info("deferred notification revoked", "handle", handle)
	return nil
}

// Resync re-registers timers for tasks that were pending when the process
// last stopped.
func (d *DispatchService) Resync(ctx context.Context) error {
	log := d.log.Function("Resync")

	tasks, err := d.taskRepo.Pending(ctx)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		var payload models.NotificationPayload
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			log.Warn("skipping task with unreadable payload", "handle", task.ID, "error", err)
			continue
		}
		if err := d.registerTimer(task.ID, payload, task.FireAt); err != nil {
			return err
		}
	}

	log.Info("pending notifications resynced", "count", len(tasks))
	return nil
}

func (d *DispatchService) registerTimer(
	handle uuid.UUID,
	payload models.NotificationPayload,
	fireAt time.Time,
) error {
	return d.scheduler.ScheduleOnce(handle.String(), fireAt, func() {
		d.fire(handle, payload)
	})
}

func (d *DispatchService) fire(handle uuid.UUID, payload models.NotificationPayload) {
	log := d.log.Function("fire")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := d.mailer.Send(ctx, payload.Subject, payload.Body, payload.Recipients); err != nil {
		log.Er("failed to deliver deferred notification", err, "handle", handle)
	}

	metrics.NotificationsFired.Inc()
	if err := d.taskRepo.SetStatus(ctx, handle, models.TaskFired); err != nil {
		log.Er("failed to mark task fired", err, "handle", handle)
	}

	// The owning gamenight tracks the handle too; close its reference so a
	// later date change does not reschedule an already-delivered request.
	if err := d.gameNightRepo.MarkFeedbackFired(ctx, handle); err != nil {
		log.Er("failed to mark feedback request fired", err, "handle", handle)
	}
}
