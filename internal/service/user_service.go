package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, wrapDBError(err)
	}
	return user, nil
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Bio      string `json:"bio"`
}

func (s *UserService) UpdateProfile(userID string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, wrapDBError(err)
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	user.Bio = req.Bio

	if err := s.UserRepo.Update(user); err != nil {
		return nil, wrapDBError(err)
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID, avatarURL string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return wrapDBError(err)
	}
	user.AvatarURL = avatarURL
	if err := s.UserRepo.Update(user); err != nil {
		return wrapDBError(err)
	}
	return nil
}
