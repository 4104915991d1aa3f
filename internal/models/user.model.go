package models

type User struct {
	BaseUUIDModel
	Username    string  `gorm:"type:text;uniqueIndex;not null" json:"username"`
	DisplayName string  `gorm:"type:text"                      json:"displayName"`
	Email       *string `gorm:"type:text;uniqueIndex"          json:"email,omitempty"`
	Avatar      string  `gorm:"type:text"                      json:"avatar,omitempty"`
	IsActive    bool    `gorm:"type:bool;default:true"         json:"isActive"`
}

// UserProfile is the public shape returned by the API.
type UserProfile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar,omitempty"`
}

func (u *User) ToProfile() UserProfile {
	displayName := u.DisplayName
	if displayName == "" {
		displayName = u.Username
	}
	return UserProfile{
		ID:          u.ID.String(),
		Username:    u.Username,
		DisplayName: displayName,
		Avatar:      u.Avatar,
	}
}
