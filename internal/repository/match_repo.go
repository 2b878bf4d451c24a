package repository

import (
	"charmly/internal/models"

	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(m *models.MatchRequest) error {
	return r.db.Create(m).Error
}

func (r *MatchRepository) GetByID(id uint) (*models.MatchRequest, error) {
	var m models.MatchRequest
	err := r.db.First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByPair looks up a request between two users regardless of who initiated
// it. The pair is unique unordered, so both column orders are checked.
func (r *MatchRepository) GetByPair(a, b uint) (*models.MatchRequest, error) {
	var m models.MatchRequest
	err := r.db.Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", a, b, b, a).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MatchRepository) Update(m *models.MatchRequest) error {
	return r.db.Save(m).Error
}

// ListByUserID returns requests the user is on either side of, newest first.
// status filters when non-empty.
func (r *MatchRepository) ListByUserID(userID uint, status string) ([]models.MatchRequest, error) {
	q := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Preload("User1").Preload("User1.Preferences").
		Preload("User2").Preload("User2.Preferences").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.MatchRequest
	err := q.Find(&list).Error
	return list, err
}
