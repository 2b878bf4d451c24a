package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:50;not null" json:"name"`
	Email           string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash    string         `gorm:"size:255" json:"-"`
	Country         string         `gorm:"size:100;not null;index" json:"country"`
	HeightCm        int            `gorm:"not null" json:"height"`
	PersonalityTags StringList     `gorm:"type:text" json:"personality_tags"`
	AvatarURL       string         `gorm:"size:512" json:"avatar_url"`
	GoogleID        *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	IsCompanion     bool           `gorm:"default:false;index" json:"is_companion"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Preferences Preferences `gorm:"foreignKey:UserID" json:"preferences"`
}

type Preferences struct {
	ID                 uint           `gorm:"primaryKey" json:"-"`
	UserID             uint           `gorm:"uniqueIndex;not null" json:"-"`
	Interests          StringList     `gorm:"type:text" json:"interests"`
	CommunicationStyle string         `gorm:"size:20;default:friendly" json:"communication_style"` // casual | formal | friendly | professional
	RelationshipGoal   string         `gorm:"size:20;default:friendship" json:"relationship_goal"` // friendship | romance | networking | casual
	AgeMin             int            `gorm:"default:18" json:"age_min"`
	AgeMax             int            `gorm:"default:100" json:"age_max"`
	HeightMin          int            `gorm:"default:150" json:"height_min"`
	HeightMax          int            `gorm:"default:200" json:"height_max"`
	CreatedAt          time.Time      `json:"-"`
	UpdatedAt          time.Time      `json:"-"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Preferences) TableName() string {
	return "preferences"
}
