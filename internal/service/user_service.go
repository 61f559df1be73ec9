package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type ProfileUpdateRequest struct {
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Phone string `json:"phone"`
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	user.Bio = req.Bio
	user.Phone = req.Phone

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UploadAvatar(userID uint, file *multipart.FileHeader) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	objectName := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
