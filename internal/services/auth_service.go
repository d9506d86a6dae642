package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"onlinestore/internal/errs"
	"onlinestore/internal/models"
	"onlinestore/internal/policy"
	"onlinestore/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the payload for user registration. Password2 must
// repeat Password.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Password  string `json:"password" validate:"required,min=6"`
	Password2 string `json:"password2" validate:"required"`
}

// TokenPair is an access/refresh JWT pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService handles registration, login and token validation.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  time.Hour,
		refreshTTL: 7 * 24 * time.Hour,
	}
}

// RegisterUser validates the registration payload against existing accounts,
// hashes the password and stores the new user. Confirmation mismatch and
// duplicate username/email surface as field-level validation errors.
func (s *AuthService) RegisterUser(req RegisterRequest) (*models.User, error) {
	if req.Password != req.Password2 {
		return nil, errs.Validation("password2", "passwords do not match")
	}
	if existing, err := s.userRepo.GetByUsername(req.Username); err == nil && existing != nil {
		return nil, errs.Validation("username", fmt.Sprintf("username %q is already taken", req.Username))
	}
	if existing, err := s.userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, errs.Validation("email", fmt.Sprintf("email %q is already registered", req.Email))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser authenticates a user and returns a token pair on success. The
// error is the same whether the username is unknown or the password is
// wrong.
func (s *AuthService) LoginUser(username, password string) (*TokenPair, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("invalid credentials")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// RefreshTokens exchanges a valid refresh token for a fresh pair.
func (s *AuthService) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, fmt.Errorf("invalid token: not a refresh token")
	}
	userID, _ := claims["user_id"].(string)
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return s.issueTokens(user)
}

// IdentityFromToken validates an access token and returns the identity it
// carries.
func (s *AuthService) IdentityFromToken(tokenString string) (*policy.Identity, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if typ, _ := claims["typ"].(string); typ != "access" {
		return nil, fmt.Errorf("invalid token: not an access token")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, fmt.Errorf("invalid token: missing user_id claim")
	}
	username, _ := claims["username"].(string)
	isStaff, _ := claims["is_staff"].(bool)
	return &policy.Identity{UserID: userID, Username: username, Staff: isStaff}, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ":      "access",
		"user_id":  user.ID,
		"username": user.Username,
		"is_staff": user.IsStaff,
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	})
	accessStr, err := access.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ":     "refresh",
		"user_id": user.ID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.refreshTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{Access: accessStr, Refresh: refreshStr}, nil
}

func (s *AuthService) parseToken(tokenString string) (jwt.MapClaims, error) {
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
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
