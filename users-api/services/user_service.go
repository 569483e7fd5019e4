package services

import (
	"roomrental/users-api/domain"
	"roomrental/users-api/repositories"
)

// UserService exposes the admin-facing user operations.
type UserService interface {
	GetAllUsers() ([]domain.User, error)
	GetUserByID(id uint) (*domain.User, error)
	UpdateUserRole(id uint, role domain.UserRole) (*domain.User, error)
	DeleteUser(id uint) error
}

type userService struct {
	repo repositories.UserRepository
}

// NewUserService wires the service with its repository.
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetAllUsers() ([]domain.User, error) {
	return s.repo.GetAll()
}

func (s *userService) GetUserByID(id uint) (*domain.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) UpdateUserRole(id uint, role domain.UserRole) (*domain.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
