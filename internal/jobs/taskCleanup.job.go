package jobs

import (
	"context"
	"time"

	"gamenight/internal/repositories"
	"gamenight/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const taskRetention = 30 * 24 * time.Hour

// TaskCleanupJob purges fired and revoked notification tasks past the
// retention window.
type TaskCleanupJob struct {
	taskRepo repositories.TaskRepository
	log      logger.Logger
}

func NewTaskCleanupJob(taskRepo repositories.TaskRepository) *TaskCleanupJob {
	return &TaskCleanupJob{
		taskRepo: taskRepo,
		log:      logger.New("taskCleanupJob"),
	}
}

func (j *TaskCleanupJob) Name() string {
	return "scheduled-task-cleanup"
}

func (j *TaskCleanupJob) Schedule() services.Schedule {
	return services.Daily
}

func (j *TaskCleanupJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	cutoff := time.Now().Add(-taskRetention)
	purged, err := j.taskRepo.PurgeFinished(ctx, cutoff)
	if err != nil {
		return err
	}

	log.Info("purged finished notification tasks", "count", purged, "cutoff", cutoff)
	return nil
}
