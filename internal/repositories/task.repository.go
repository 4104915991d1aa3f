package repositories

import (
	"context"
	"time"

	"gamenight/internal/database"
	. "gamenight/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(ctx context.Context, tx *gorm.DB, task *ScheduledTask) error
	SetStatus(ctx context.Context, taskID uuid.UUID, status TaskState) error
	Pending(ctx context.Context) ([]*ScheduledTask, error)
	PurgeFinished(ctx context.Context, olderThan time.Time) (int64, error)
}

type taskRepository struct {
	db  database.DB
	log logger.Logger
}

func NewTaskRepository(db database.DB) TaskRepository {
	return &taskRepository{
		db:  db,
		log: logger.New("taskRepository"),
	}
}

func (r *taskRepository) Create(ctx context.Context, tx *gorm.DB, task *ScheduledTask) error {
	log := r.log.Function("Create")

	if err := gorm.G[ScheduledTask](tx).Create(ctx, task); err != nil {
		return log.Err("failed to create scheduled task", err, "fireAt", task.FireAt)
	}

	return nil
}

// SetStatus moves a task out of the scheduled state. Fired and revoked are
// terminal, so a row that already left scheduled is never overwritten.
func (r *taskRepository) SetStatus(ctx context.Context, taskID uuid.UUID, status TaskState) error {
	log := r.log.Function("SetStatus")

	err := r.db.SQL.WithContext(ctx).
		Model(&ScheduledTask{}).
		Where("id = ? AND status = ?", taskID, TaskScheduled).
		Update("status", status).Error
	if err != nil {
		return log.Err("failed to update task status", err, "taskID", taskID, "status", status)
	}

	return nil
}

// Pending returns scheduled tasks that have not fired yet, so the dispatcher
// can resync its timers after a restart.
func (r *taskRepository) Pending(ctx context.Context) ([]*ScheduledTask, error) {
	log := r.log.Function("Pending")

	tasks, err := gorm.G[*ScheduledTask](r.db.SQL).
		Where("status = ? AND fire_at > ?", TaskScheduled, time.Now()).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list pending tasks", err)
	}

	return tasks, nil
}

// PurgeFinished deletes fired and revoked tasks whose fire time is older than
// the cutoff.
func (r *taskRepository) PurgeFinished(ctx context.Context, olderThan time.Time) (int64, error) {
	log := r.log.Function("PurgeFinished")

	rowsAffected, err := gorm.G[*ScheduledTask](r.db.SQL).
		Where("status IN ? AND fire_at < ?", []TaskState{TaskFired, TaskRevoked}, olderThan).
		Delete(ctx)
	if err != nil {
		return 0, log.Err("failed to purge finished tasks", err)
	}

	return int64(rowsAffected), nil
}
