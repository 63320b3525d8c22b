package models

import "gorm.io/gorm"

// Settings holds the user's dashboard preferences.
type Settings struct {
	Notifications  bool   `json:"notifications"`
	DarkMode       bool   `json:"dark_mode"`
	EmailFrequency string `json:"email_frequency" validate:"omitempty,oneof=daily weekly important none"`
}

// User represents the storefront's profile record.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Role         string `json:"role" gorm:"type:varchar(50)"`
	AvatarURL    string `json:"avatar_url"`
	Bio          string `json:"bio" validate:"omitempty,max=500"`
	Location     string `json:"location" validate:"omitempty,max=100"`
	JoinDate     string `json:"join_date"`
	PasswordHash string `gorm:"type:varchar(255)"` // No json tag for security
	Settings     `json:"settings" gorm:"embedded;embeddedPrefix:settings_"`
	gorm.Model   // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
