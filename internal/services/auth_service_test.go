package services_test

import (
	"fmt"
	"testing"

	"onlinestore/internal/errs"
	"onlinestore/internal/models"
	"onlinestore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func registerRequest() services.RegisterRequest {
	return services.RegisterRequest{
		Username:  "testuser",
		Email:     "test@example.com",
		Password:  "password123",
		Password2: "password123",
	}
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	req := registerRequest()
	mockRepo.On("GetByUsername", req.Username).Return(nil, errs.ErrNotFound).Once()
	mockRepo.On("GetByEmail", req.Email).Return(nil, errs.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.RegisterUser(req)
	assert.NoError(t, err)
	assert.Equal(t, req.Username, user.Username)
	assert.False(t, user.IsStaff)
	// Stored password must be a bcrypt hash of the submitted one.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_PasswordMismatch(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	req := registerRequest()
	req.Password2 = "different"

	_, err := authService.RegisterUser(req)
	var vErr *errs.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "password2")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_RegisterUser_Duplicates(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")
	req := registerRequest()

	// Username taken.
	mockRepo.On("GetByUsername", req.Username).Return(&models.User{ID: "1"}, nil).Once()
	_, err := authService.RegisterUser(req)
	var vErr *errs.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "username")

	// Email registered.
	mockRepo.On("GetByUsername", req.Username).Return(nil, errs.ErrNotFound).Once()
	mockRepo.On("GetByEmail", req.Email).Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser(req)
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "email")

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashed),
		IsStaff:  true,
	}

	// Successful login returns both tokens and the user.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	pair, loggedIn, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.Equal(t, user.ID, loggedIn.ID)

	// The access token carries the identity including the staff flag.
	identity, err := authService.IdentityFromToken(pair.Access)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", identity.UserID)
	assert.Equal(t, "testuser", identity.Username)
	assert.True(t, identity.Staff)

	// A refresh token is not accepted where an access token is expected.
	_, err = authService.IdentityFromToken(pair.Refresh)
	assert.Error(t, err)

	// Wrong password.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, _, err = authService.LoginUser("testuser", "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	// Unknown user yields the same generic error.
	mockRepo.On("GetByUsername", "nobody").Return(nil, fmt.Errorf("user %q: %w", "nobody", errs.ErrNotFound)).Once()
	_, _, err = authService.LoginUser("nobody", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	mockRepo.AssertExpectations(t)
}

func TestAuthService_RefreshTokens(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Username: "testuser", Password: string(hashed)}

	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	pair, _, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)

	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	fresh, err := authService.RefreshTokens(pair.Refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.Access)
	assert.NotEmpty(t, fresh.Refresh)

	// An access token cannot be used to refresh.
	_, err = authService.RefreshTokens(pair.Access)
	assert.Error(t, err)

	// Garbage is rejected.
	_, err = authService.RefreshTokens("not.a.token")
	assert.Error(t, err)

	mockRepo.AssertExpectations(t)
}
