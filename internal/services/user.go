package services

import (
	"github.com/MoamenFouad/UniQuest/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, models.ErrNotFound("user not found")
	}
	return &user, nil
}

type UpdateProfileInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	StudentID       string `json:"student_id"`
	OldPassword     string `json:"old_password"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (s *UserService) UpdateProfile(userID uint, in UpdateProfileInput) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, models.ErrNotFound("user not found")
	}

	if in.Username != "" && in.Username != user.Username {
		var existing models.User
		if err := s.db.Where("username = ? AND id != ?", in.Username, userID).First(&existing).Error; err == nil {
			return nil, models.ErrConflict("username already taken")
		}
		user.Username = in.Username
	}
	if in.Email != "" && in.Email != user.Email {
		var existing models.User
		if err := s.db.Where("email = ? AND id != ?", in.Email, userID).First(&existing).Error; err == nil {
			return nil, models.ErrConflict("email already registered")
		}
		user.Email = in.Email
	}
	if in.StudentID != "" {
		user.StudentID = in.StudentID
	}

	if in.Password != "" {
		if in.Password != in.ConfirmPassword {
			return nil, models.ErrValidation("passwords do not match")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
			return nil, models.ErrPermissionDenied("old password is incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
