package database

import (
	"errors"

	"charmly/config"
	"charmly/internal/domain"
	"charmly/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Preferences{},
		&models.MatchRequest{},
		&models.Message{},
		&models.Notification{},
	)
}

const companionEmail = "charm@charmly.app"

// SeedCompanion ensures the AI companion user exists so chat messages always
// have a real sender row. Returns its user ID.
func SeedCompanion(db *gorm.DB) (uint, error) {
	var u models.User
	err := db.Where("email = ?", companionEmail).First(&u).Error
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	u = models.User{
		Name:            "Charm",
		Email:           companionEmail,
		Country:         "Worldwide",
		HeightCm:        170,
		IsCompanion:     true,
		PersonalityTags: models.StringList{"warm", "witty", "attentive"},
		Preferences: models.Preferences{
			CommunicationStyle: domain.StyleFriendly,
			RelationshipGoal:   domain.GoalFriendship,
		},
	}
	if err := db.Create(&u).Error; err != nil {
		return 0, err
	}
	return u.ID, nil
}
