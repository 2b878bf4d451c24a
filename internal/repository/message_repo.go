package repository

import (
	"charmly/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(m *models.Message) error {
	return r.db.Create(m).Error
}

// ListConversation returns the newest page of messages between two users,
// oldest first within the page.
func (r *MessageRepository) ListConversation(userID, otherID uint, limit, offset int) ([]models.Message, error) {
	var list []models.Message
	err := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, otherID, otherID, userID,
	).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	if err != nil {
		return nil, err
	}
	// reverse into chronological order for display
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

// RecentHistory returns the last n messages between two users in
// chronological order, for replay as AI context.
func (r *MessageRepository) RecentHistory(userID, otherID uint, n int) ([]models.Message, error) {
	return r.ListConversation(userID, otherID, n, 0)
}

func (r *MessageRepository) CountConversation(userID, otherID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Message{}).Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, otherID, otherID, userID,
	).Count(&c).Error
	return c, err
}

// MarkRead flips an unread message addressed to userID. Returns
// gorm.ErrRecordNotFound when no such unread message exists.
func (r *MessageRepository) MarkRead(messageID, userID uint) (*models.Message, error) {
	var m models.Message
	err := r.db.Where("id = ? AND receiver_id = ? AND is_read = ?", messageID, userID, false).First(&m).Error
	if err != nil {
		return nil, err
	}
	m.IsRead = true
	if err := r.db.Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepository) CountUnread(userID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Message{}).Where("receiver_id = ? AND is_read = ?", userID, false).Count(&c).Error
	return c, err
}
