package models

import (
	"strings"

	"github.com/google/uuid"
)

// Contact is one of the host's invitable people. Contacts are scoped to the
// owning user; the same person invited by two hosts is two rows.
type Contact struct {
	BaseUUIDModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_contact_identity" json:"userId"`
	User      User      `gorm:"foreignKey:UserID"                                         json:"-"`
	FirstName string    `gorm:"type:text;not null;uniqueIndex:idx_contact_identity"       json:"firstName"`
	LastName  string    `gorm:"type:text;not null;uniqueIndex:idx_contact_identity"       json:"lastName"`
	Email     string    `gorm:"type:text;not null;uniqueIndex:idx_contact_identity"       json:"email"`
}

func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
