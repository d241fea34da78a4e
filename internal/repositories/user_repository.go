package repositories

import (
	"errors"

	"github.com/noelps-git/tastemates/internal/models"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserByID resolves an internal user id to its record.
func (r *UserRepository) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, userID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// UserExists is the membership check used by the identity middleware.
func (r *UserRepository) UserExists(userID uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Count(&count)

	if result.Error != nil {
		return false, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to check user")
	}

	return count > 0, nil
}
