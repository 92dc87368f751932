package services_test

import (
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"lotto/internal/models"
	"lotto/internal/repositories"
	"lotto/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
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

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func validInput() services.RegistrationInput {
	return services.RegistrationInput{
		Username:    "testuser",
		Password:    "password123",
		Birthday:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		PhoneNumber: "5551234567",
		Email:       "test@example.com",
	}
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Successful registration stores the user with the user role and
	// the password exactly as submitted.
	in := validInput()
	mockRepo.On("GetByUsername", in.Username).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.RegisterUser(in)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "password123", user.Password)
	mockRepo.AssertExpectations(t)

	// Username already taken short-circuits before any other check,
	// even when later fields are also invalid.
	taken := validInput()
	taken.PhoneNumber = "123" // would fail the phone check next
	mockRepo.On("GetByUsername", taken.Username).Return(&models.User{ID: 1}, nil).Once()
	_, err = authService.RegisterUser(taken)
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_ValidatorOrder(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Phone number shorter than 10 digits.
	in := validInput()
	in.PhoneNumber = "555123"
	mockRepo.On("GetByUsername", in.Username).Return(nil, repositories.ErrNotFound).Once()
	_, err := authService.RegisterUser(in)
	assert.ErrorIs(t, err, services.ErrInvalidPhone)

	// Phone number longer than 15 digits.
	in = validInput()
	in.PhoneNumber = "5551234567890123"
	mockRepo.On("GetByUsername", in.Username).Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.RegisterUser(in)
	assert.ErrorIs(t, err, services.ErrInvalidPhone)

	// Email without an @.
	in = validInput()
	in.Email = "not-an-email"
	mockRepo.On("GetByUsername", in.Username).Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.RegisterUser(in)
	assert.ErrorIs(t, err, services.ErrInvalidEmail)

	// No Create call was ever made.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_LookupFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// A failing username lookup must abort registration, not be read as
	// "username free".
	in := validInput()
	mockRepo.On("GetByUsername", in.Username).Return(nil, errors.New("connection refused")).Once()
	_, err := authService.RegisterUser(in)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_AgeBoundary(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")
	today := time.Now()

	// Exactly 18 years minus one day old: rejected.
	in := validInput()
	in.Birthday = today.AddDate(-18, 0, 1)
	mockRepo.On("GetByUsername", in.Username).Return(nil, repositories.ErrNotFound).Once()
	_, err := authService.RegisterUser(in)
	assert.ErrorIs(t, err, services.ErrUnderage)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)

	// Exactly 18 years old today: accepted.
	in = validInput()
	in.Birthday = today.AddDate(-18, 0, 0)
	mockRepo.On("GetByUsername", in.Username).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	_, err = authService.RegisterUser(in)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterAdmin_SkipsAgeCheck(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	in := validInput()
	in.Birthday = time.Now().AddDate(-16, 0, 0) // underage for signup
	mockRepo.On("GetByUsername", in.Username).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	admin, err := authService.RegisterAdmin(in)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	mockRepo.AssertExpectations(t)
}

func TestAgeOn(t *testing.T) {
	birthday := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 17, services.AgeOn(birthday, time.Date(2018, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 18, services.AgeOn(birthday, time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 18, services.AgeOn(birthday, time.Date(2018, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 17, services.AgeOn(birthday, time.Date(2018, 5, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 19, services.AgeOn(birthday, time.Date(2019, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{
		ID:       42,
		Username: "testuser",
		Password: "password123",
		Role:     models.RoleUser,
	}

	// Successful login issues a token carrying id, username, and role.
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	token, loggedIn, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, float64(user.ID), claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])
	assert.Equal(t, string(models.RoleUser), claims["role"])
	mockRepo.AssertExpectations(t)

	// Wrong password and unknown username fail with the same generic
	// error, so callers cannot learn whether the username exists.
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, _, err = authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.On("GetByUsername", "nobody").Return(nil, repositories.ErrNotFound).Once()
	_, _, err2 := authService.LoginUser("nobody", "password123")
	assert.ErrorIs(t, err2, services.ErrInvalidCredentials)
	assert.Equal(t, err.Error(), err2.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken_Rejects(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	_, err := authService.ValidateToken("not-a-token")
	assert.Error(t, err)

	// A token signed with a different secret is invalid.
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forged, signErr := other.SignedString([]byte("another_secret"))
	assert.NoError(t, signErr)
	_, err = authService.ValidateToken(forged)
	assert.Error(t, err)
}
