package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScheduledTask persists a deferred notification request handed to the
// dispatcher. The row's ID doubles as the opaque handle stored on the owning
// GameNight, so a restart can resync pending timers from the store.
type ScheduledTask struct {
	BaseUUIDModel
	FireAt  time.Time      `gorm:"type:timestamptz;not null;index" json:"fireAt"`
	Payload datatypes.JSON `gorm:"type:jsonb"                      json:"payload"`
	Status  TaskState      `gorm:"type:text;default:'scheduled'"   json:"status"`
}

// NotificationPayload is the JSON body of a ScheduledTask.
type NotificationPayload struct {
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Recipients []string `json:"recipients"`
}
