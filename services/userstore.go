package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

// GormUserStore implements UserStore over the MySQL-backed gorm handle.
type GormUserStore struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewGormUserStore(db *gorm.DB, logger *zap.SugaredLogger) *GormUserStore {
	return &GormUserStore{db: db, logger: logger}
}

func (s *GormUserStore) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormUserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) Create(ctx context.Context, user models.User) (*models.User, error) {
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		s.logger.Errorw("user create failed", "email", user.Email, "error", err)
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) Update(ctx context.Context, id uint, user models.User) (*models.User, error) {
	user.ID = id
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		s.logger.Errorw("user update failed", "userID", id, "error", err)
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) Delete(ctx context.Context, id uint) bool {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		s.logger.Errorw("user delete failed", "userID", id, "error", res.Error)
		return false
	}
	return res.RowsAffected > 0
}
