package models

import "github.com/google/uuid"

// Tag is a per-user label, unlike Category which is global.
type Tag struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_tag_user_name" json:"userId"`
	User   User      `gorm:"foreignKey:UserID"                                      json:"-"`
	Name   string    `gorm:"type:text;not null;uniqueIndex:idx_tag_user_name"       json:"name"`
}
