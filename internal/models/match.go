package models

import (
	"time"

	"gorm.io/gorm"
)

// MatchRequest is a proposal from User1 to User2. The compatibility score and
// shared interests are snapshotted at creation and never recomputed; later
// profile edits do not touch existing requests.
type MatchRequest struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	User1ID            uint           `gorm:"not null;index:idx_match_pair,unique" json:"user1_id"`
	User2ID            uint           `gorm:"not null;index:idx_match_pair,unique" json:"user2_id"`
	CompatibilityScore int            `gorm:"not null" json:"compatibility_score"`
	SharedInterests    StringList     `gorm:"type:text" json:"shared_interests"`
	Status             string         `gorm:"size:20;not null;default:pending;index" json:"status"` // pending | accepted | rejected
	RespondedAt        *time.Time     `json:"responded_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	User1 User `gorm:"foreignKey:User1ID" json:"-"`
	User2 User `gorm:"foreignKey:User2ID" json:"-"`
}

func (MatchRequest) TableName() string {
	return "match_requests"
}

func (m *MatchRequest) IsPending() bool { return m.Status == "pending" }
