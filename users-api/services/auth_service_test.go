package services

import (
	"testing"

	"roomrental/users-api/domain"
	"roomrental/users-api/dto"
	"roomrental/users-api/repositories"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepository struct {
	users map[uint]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uint]*domain.User)}
}

func (m *mockUserRepository) Create(user *domain.User) error {
	user.ID = uint(len(m.users) + 1)
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(id uint) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetByUsername(username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(username string) (bool, error) {
	_, err := m.GetByUsername(username)
	return err == nil, nil
}

func (m *mockUserRepository) ExistsByEmail(email string) (bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) Update(user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) Delete(id uint) error {
	if _, ok := m.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) GetAll() ([]domain.User, error) {
	users := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:  "testuser",
		Email:     "test@example.com",
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
	}
}

func TestRegister_Success(t *testing.T) {
	service := NewAuthService(newMockUserRepository())

	user, err := service.Register(registerRequest())

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, domain.RoleTenant, user.Role)
	assert.NotEqual(t, "password123", user.Password, "password must be hashed")
}

func TestRegister_LandlordRole(t *testing.T) {
	service := NewAuthService(newMockUserRepository())

	req := registerRequest()
	req.Role = "landlord"
	user, err := service.Register(req)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleLandlord, user.Role)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	service := NewAuthService(newMockUserRepository())

	req := registerRequest()
	req.Role = "ADMIN"
	user, err := service.Register(req)

	require.Error(t, err)
	assert.Nil(t, user)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	service := NewAuthService(newMockUserRepository())

	_, err := service.Register(registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Email = "other@example.com"
	user, err := service.Register(req)

	require.Error(t, err)
	assert.Nil(t, user)
	assert.EqualError(t, err, "username is already taken")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := NewAuthService(newMockUserRepository())

	_, err := service.Register(registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Username = "otheruser"
	user, err := service.Register(req)

	require.Error(t, err)
	assert.Nil(t, user)
	assert.EqualError(t, err, "email is already in use")
}

func TestLogin_Success(t *testing.T) {
	service := NewAuthService(newMockUserRepository())

	_, err := service.Register(registerRequest())
	require.NoError(t, err)

	resp, err := service.Login(dto.LoginRequest{Username: "testuser", Password: "password123"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "testuser", resp.Username)
	assert.Equal(t, domain.RoleTenant, resp.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	service := NewAuthService(newMockUserRepository())

	_, err := service.Register(registerRequest())
	require.NoError(t, err)

	resp, err := service.Login(dto.LoginRequest{Username: "testuser", Password: "wrongpassword"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.EqualError(t, err, "invalid credentials")
}

func TestLogin_UserNotFound(t *testing.T) {
	service := NewAuthService(newMockUserRepository())

	resp, err := service.Login(dto.LoginRequest{Username: "nobody", Password: "password123"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.EqualError(t, err, "invalid credentials")
}

func TestEnsureAdminUser_CreatesOnce(t *testing.T) {
	repo := newMockUserRepository()

	require.NoError(t, EnsureAdminUser(repo, zerolog.Nop()))
	require.NoError(t, EnsureAdminUser(repo, zerolog.Nop()))

	admin, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	users, _ := repo.GetAll()
	assert.Len(t, users, 1)
}

func TestUserService_UpdateUserRole(t *testing.T) {
	repo := newMockUserRepository()
	auth := NewAuthService(repo)
	service := NewUserService(repo)

	created, err := auth.Register(registerRequest())
	require.NoError(t, err)

	updated, err := service.UpdateUserRole(created.ID, domain.RoleLandlord)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleLandlord, updated.Role)

	_, err = service.UpdateUserRole(999, domain.RoleAdmin)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := newMockUserRepository()
	auth := NewAuthService(repo)
	service := NewUserService(repo)

	created, err := auth.Register(registerRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(created.ID))
	assert.ErrorIs(t, service.DeleteUser(created.ID), repositories.ErrUserNotFound)
}
