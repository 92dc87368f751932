package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lotto/internal/models"
	"lotto/internal/repositories"

	"github.com/dgrijalva/jwt-go"
)

// AuthService handles registration, sign-in, and session tokens.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which a session token is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// RegistrationInput carries the signup form fields.
type RegistrationInput struct {
	Username    string
	Password    string
	Birthday    time.Time
	PhoneNumber string
	Email       string
}

// RegisterUser creates an ordinary account. The checks run in fixed
// order, each short-circuiting with its own message: username free,
// phone length, email shape, then the age floor.
func (s *AuthService) RegisterUser(in RegistrationInput) (*models.User, error) {
	if err := s.validateAccount(in); err != nil {
		return nil, err
	}
	if AgeOn(in.Birthday, time.Now()) < 18 {
		return nil, ErrUnderage
	}
	return s.createAccount(in, models.RoleUser)
}

// RegisterAdmin creates an administrator account. Admin creation runs
// the same checks as signup except the age floor.
func (s *AuthService) RegisterAdmin(in RegistrationInput) (*models.User, error) {
	if err := s.validateAccount(in); err != nil {
		return nil, err
	}
	return s.createAccount(in, models.RoleAdmin)
}

func (s *AuthService) validateAccount(in RegistrationInput) error {
	existingUser, err := s.userRepo.GetByUsername(in.Username)
	if err == nil && existingUser != nil {
		return ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check username availability: %w", err)
	}
	if l := len(in.PhoneNumber); l < 10 || l > 15 {
		return ErrInvalidPhone
	}
	if !strings.Contains(in.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func (s *AuthService) createAccount(in RegistrationInput, role models.Role) (*models.User, error) {
	user := &models.User{
		Username:    in.Username,
		Password:    in.Password, // stored as submitted, no hashing
		Birthday:    in.Birthday,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Role:        role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// AgeOn computes age in whole years on the given day, subtracting one
// when that day's month/day has not yet reached the birthday's.
func AgeOn(birthday, on time.Time) int {
	age := on.Year() - birthday.Year()
	if on.Month() < birthday.Month() || (on.Month() == birthday.Month() && on.Day() < birthday.Day()) {
		age--
	}
	return age
}

// LoginUser authenticates by username and password equality against the
// stored value and returns a session token plus the account. Failures
// never reveal whether the username existed.
func (s *AuthService) LoginUser(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.Password != password {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, user, nil
}

// ValidateToken parses and validates a session token, returning the
// claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// GetProfile returns the stored account for a user id.
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// ListUsers returns every registered account.
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// RemoveUser deletes an account. Tickets the user bought stay behind.
func (s *AuthService) RemoveUser(id uint) error {
	return s.userRepo.Delete(id)
}
