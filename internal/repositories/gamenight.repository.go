package repositories

import (
	"context"
	"errors"
	"fmt"

	"gamenight/internal/database"
	"gamenight/internal/errs"
	. "gamenight/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameNightRepository interface {
	Create(ctx context.Context, tx *gorm.DB, gamenight *GameNight) error
	RIDExists(ctx context.Context, rid string) (bool, error)
	GetByRID(ctx context.Context, rid string) (*GameNight, error)
	GetByRIDScoped(ctx context.Context, userID uuid.UUID, rid string) (*GameNight, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*GameNight, error)
	FinalizedByUser(ctx context.Context, userID uuid.UUID) ([]*GameNight, error)
	AppendMember(ctx context.Context, tx *gorm.DB, gamenight *GameNight, association string, value any) error
	RemoveMember(ctx context.Context, tx *gorm.DB, gamenight *GameNight, association string, value any) error
	SaveLifecycle(ctx context.Context, tx *gorm.DB, gamenight *GameNight) error
	MarkFeedbackFired(ctx context.Context, handle uuid.UUID) error
	CountAttendanceByContacts(ctx context.Context, contactIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type gamenightRepository struct {
	db  database.DB
	log logger.Logger
}

func NewGameNightRepository(db database.DB) GameNightRepository {
	return &gamenightRepository{
		db:  db,
		log: logger.New("gamenightRepository"),
	}
}

func (r *gamenightRepository) Create(ctx context.Context, tx *gorm.DB, gamenight *GameNight) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(gamenight).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("gamenight rid=%s: %w", gamenight.RID, errs.ErrConflict)
		}
		return log.Err("failed to create gamenight", err, "userID", gamenight.UserID)
	}

	return nil
}

func (r *gamenightRepository) RIDExists(ctx context.Context, rid string) (bool, error) {
	log := r.log.Function("RIDExists")

	var count int64
	err := r.db.SQL.WithContext(ctx).
		Model(&GameNight{}).
		Where("rid = ?", rid).
		Count(&count).Error
	if err != nil {
		return false, log.Err("failed to check rid", err, "rid", rid)
	}

	return count > 0, nil
}

func (r *gamenightRepository) preloadAll(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Invitees").
		Preload("Attendees").
		Preload("Options").
		Preload("Games").
		Preload("RSVPs.Invitee").
		Preload("Votes").
		Preload("GeneralFeedback").
		Preload("GameFeedback")
}

func (r *gamenightRepository) GetByRID(ctx context.Context, rid string) (*GameNight, error) {
	log := r.log.Function("GetByRID")

	var gamenight GameNight
	err := r.preloadAll(r.db.SQL.WithContext(ctx)).
		Where("rid = ?", rid).
		First(&gamenight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("gamenight %s: %w", rid, errs.ErrNotFound)
		}
		return nil, log.Err("failed to get gamenight", err, "rid", rid)
	}

	return &gamenight, nil
}

// GetByRIDScoped fetches a gamenight only when userID hosts it.
func (r *gamenightRepository) GetByRIDScoped(
	ctx context.Context,
	userID uuid.UUID,
	rid string,
) (*GameNight, error) {
	log := r.log.Function("GetByRIDScoped")

	var gamenight GameNight
	err := r.preloadAll(r.db.SQL.WithContext(ctx)).
		Where("rid = ? AND user_id = ?", rid, userID).
		First(&gamenight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("gamenight %s: %w", rid, errs.ErrNotFound)
		}
		return nil, log.Err("failed to get gamenight", err, "rid", rid)
	}

	return &gamenight, nil
}

func (r *gamenightRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*GameNight, error) {
	log := r.log.Function("ListByUser")

	var gamenights []*GameNight
	err := r.db.SQL.WithContext(ctx).
		Preload("Invitees").
		Preload("Attendees").
		Preload("Options").
		Preload("Games").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&gamenights).Error
	if err != nil {
		return nil, log.Err("failed to list gamenights", err, "userID", userID)
	}

	return gamenights, nil
}

// FinalizedByUser loads the nights the statistics reporter aggregates over,
// with membership sets and feedback preloaded. Reports always recompute from
// this query; results are never cached.
func (r *gamenightRepository) FinalizedByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*GameNight, error) {
	log := r.log.Function("FinalizedByUser")

	var gamenights []*GameNight
	err := r.db.SQL.WithContext(ctx).
		Preload("Invitees").
		Preload("Attendees").
		Preload("Games").
		Preload("GeneralFeedback").
		Preload("GameFeedback").
		Where("user_id = ? AND status = ?", userID, StatusFinalized).
		Order("date").
		Find(&gamenights).Error
	if err != nil {
		return nil, log.Err("failed to list finalized gamenights", err, "userID", userID)
	}

	return gamenights, nil
}

func (r *gamenightRepository) AppendMember(
	ctx context.Context,
	tx *gorm.DB,
	gamenight *GameNight,
	association string,
	value any,
) error {
	log := r.log.Function("AppendMember")

	err := tx.WithContext(ctx).Model(gamenight).Omit(association + ".*").
		Association(association).Append(value)
	if err != nil {
		return log.Err("failed to append member", err,
			"gamenightID", gamenight.ID, "association", association)
	}

	return nil
}

func (r *gamenightRepository) RemoveMember(
	ctx context.Context,
	tx *gorm.DB,
	gamenight *GameNight,
	association string,
	value any,
) error {
	log := r.log.Function("RemoveMember")

	err := tx.WithContext(ctx).Model(gamenight).
		Association(association).Delete(value)
	if err != nil {
		return log.Err("failed to remove member", err,
			"gamenightID", gamenight.ID, "association", association)
	}

	return nil
}

// SaveLifecycle persists the mutable lifecycle columns without touching the
// membership associations, which move only through Append/RemoveMember.
func (r *gamenightRepository) SaveLifecycle(
	ctx context.Context,
	tx *gorm.DB,
	gamenight *GameNight,
) error {
	log := r.log.Function("SaveLifecycle")

	updates := map[string]any{
		"date":                        gamenight.Date,
		"start_time":                  gamenight.StartTime,
		"end_time":                    gamenight.EndTime,
		"location":                    gamenight.Location,
		"status":                      gamenight.Status,
		"feedback_task_handle":        gamenight.FeedbackTask.Handle,
		"feedback_task_scheduled_for": gamenight.FeedbackTask.ScheduledFor,
		"feedback_task_state":         gamenight.FeedbackTask.State,
	}

	err := tx.WithContext(ctx).
		Model(&GameNight{}).
		Where("id = ?", gamenight.ID).
		Updates(updates).Error
	if err != nil {
		return log.Err("failed to save gamenight lifecycle", err, "gamenightID", gamenight.ID)
	}

	return nil
}

// MarkFeedbackFired records that the deferred feedback request identified by
// handle was delivered. Only a still-scheduled task transitions; a night whose
// task was revoked or rescheduled in the meantime is left alone.
func (r *gamenightRepository) MarkFeedbackFired(ctx context.Context, handle uuid.UUID) error {
	log := r.log.Function("MarkFeedbackFired")

	err := r.db.SQL.WithContext(ctx).
		Model(&GameNight{}).
		Where("feedback_task_handle = ? AND feedback_task_state = ?", handle, TaskScheduled).
		Update("feedback_task_state", TaskFired).Error
	if err != nil {
		return log.Err("failed to mark feedback request fired", err, "handle", handle)
	}

	return nil
}

// CountAttendanceByContacts returns each contact's attendance count across all
// gamenights, not only the caller's. Feeds the most-common-players report.
func (r *gamenightRepository) CountAttendanceByContacts(
	ctx context.Context,
	contactIDs []uuid.UUID,
) (map[uuid.UUID]int, error) {
	log := r.log.Function("CountAttendanceByContacts")

	counts := make(map[uuid.UUID]int, len(contactIDs))
	if len(contactIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ContactID uuid.UUID `gorm:"column:contact_id"`
		Total     int       `gorm:"column:total"`
	}

	var rows []row
	err := r.db.SQL.WithContext(ctx).
		Table("gamenight_attendees").
		Select("contact_id, COUNT(*) AS total").
		Where("contact_id IN ?", contactIDs).
		Group("contact_id").
		Scan(&rows).Error
	if err != nil {
		return nil, log.Err("failed to count attendance", err)
	}

	for _, r := range rows {
		counts[r.ContactID] = r.Total
	}

	return counts, nil
}
