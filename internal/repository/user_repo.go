package repository

import (
	"charmly/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.Preload("Preferences").First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Preload("Preferences").Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByGoogleID(googleID string) (*models.User, error) {
	var u models.User
	err := r.db.Preload("Preferences").Where("google_id = ?", googleID).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(u).Error
}

// ListCandidates returns the candidate pool for match discovery: everyone but
// the requester and the AI companion, with height inside the given bounds, in
// natural store order.
func (r *UserRepository) ListCandidates(excludeID uint, heightMin, heightMax, limit int) ([]models.User, error) {
	var list []models.User
	err := r.db.Preload("Preferences").
		Where("id != ? AND is_companion = ?", excludeID, false).
		Where("height_cm BETWEEN ? AND ?", heightMin, heightMax).
		Limit(limit).
		Find(&list).Error
	return list, err
}
