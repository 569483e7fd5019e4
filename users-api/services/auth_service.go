package services

import (
	"errors"

	"roomrental/users-api/domain"
	"roomrental/users-api/dto"
	"roomrental/users-api/repositories"
	"roomrental/users-api/utils"

	"github.com/rs/zerolog"
)

// AuthService handles registration and authentication.
type AuthService interface {
	Register(req dto.RegisterRequest) (*domain.User, error)
	Login(req dto.LoginRequest) (*dto.JwtResponse, error)
}

type authService struct {
	repo repositories.UserRepository
}

// NewAuthService wires the service with its repository.
func NewAuthService(repo repositories.UserRepository) AuthService {
	return &authService{repo: repo}
}

// Register creates a new account. Username and email must be unique.
// The role defaults to TENANT; only TENANT and LANDLORD can be picked at
// signup, admins are promoted through the admin endpoints.
func (s *authService) Register(req dto.RegisterRequest) (*domain.User, error) {
	taken, err := s.repo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.New("username is already taken")
	}

	taken, err = s.repo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.New("email is already in use")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.New("error hashing password")
	}

	role := domain.RoleTenant
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok || parsed == domain.RoleAdmin {
			return nil, errors.New("invalid role")
		}
		role = parsed
	}

	user := &domain.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    hashedPassword,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Role:        role,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks credentials and issues a JWT.
func (s *authService) Login(req dto.LoginRequest) (*dto.JwtResponse, error) {
	user, err := s.repo.GetByUsername(req.Username)
	if err != nil {
		// Same error for unknown user and wrong password.
		return nil, errors.New("invalid credentials")
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, errors.New("error generating token")
	}

	return &dto.JwtResponse{
		Token:     token,
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}, nil
}

// EnsureAdminUser seeds the default admin account on startup if it is
// missing, so a fresh database is immediately manageable.
func EnsureAdminUser(repo repositories.UserRepository, logger zerolog.Logger) error {
	exists, err := repo.ExistsByUsername("admin")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:    "admin",
		Email:       "admin@roomrental.local",
		Password:    hashed,
		FirstName:   "System",
		LastName:    "Administrator",
		PhoneNumber: "1234567890",
		Role:        domain.RoleAdmin,
	}

	if err := repo.Create(admin); err != nil {
		return err
	}

	logger.Info().Str("username", admin.Username).Msg("admin user created")
	return nil
}
