package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type TaskState string

const (
	TaskNone      TaskState = ""
	TaskScheduled TaskState = "scheduled"
	TaskFired     TaskState = "fired"
	TaskRevoked   TaskState = "revoked"
)

var (
	ErrTaskAlreadyScheduled = errors.New("task already scheduled")
	ErrTaskNotScheduled     = errors.New("no scheduled task")
)

// FeedbackTask is the reference a GameNight keeps to its deferred
// feedback-request notification. Legal transitions: none -> scheduled ->
// fired or revoked -> scheduled again. The dispatcher owns the timer; this
// value object only tracks the handle so revoke-then-reschedule is auditable.
type FeedbackTask struct {
	Handle       *uuid.UUID `gorm:"type:uuid"  json:"handle,omitempty"`
	ScheduledFor *time.Time `gorm:"type:timestamptz" json:"scheduledFor,omitempty"`
	State        TaskState  `gorm:"type:text;default:''" json:"state"`
}

func (t *FeedbackTask) Live() bool {
	return t.State == TaskScheduled
}

func (t *FeedbackTask) Schedule(handle uuid.UUID, fireAt time.Time) error {
	if t.Live() {
		return ErrTaskAlreadyScheduled
	}
	t.Handle = &handle
	t.ScheduledFor = &fireAt
	t.State = TaskScheduled
	return nil
}

func (t *FeedbackTask) Revoke() (uuid.UUID, error) {
	if !t.Live() || t.Handle == nil {
		return uuid.Nil, ErrTaskNotScheduled
	}
	handle := *t.Handle
	t.State = TaskRevoked
	return handle, nil
}

func (t *FeedbackTask) MarkFired() error {
	if !t.Live() {
		return ErrTaskNotScheduled
	}
	t.State = TaskFired
	return nil
}
