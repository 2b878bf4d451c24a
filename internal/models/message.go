package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SenderID      uint           `gorm:"not null;index" json:"sender_id"`
	ReceiverID    uint           `gorm:"not null;index" json:"receiver_id"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	MessageType   string         `gorm:"size:10;not null;default:text" json:"message_type"` // text | ai | system
	EmotionalTone string         `gorm:"size:10" json:"emotional_tone,omitempty"`           // set on ai messages only
	IsRead        bool           `gorm:"default:false;index" json:"is_read"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
