package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/noted/internal/auth"
	"github.com/Varun5711/noted/internal/logger"
	usermodel "github.com/Varun5711/noted/internal/models/user"
	"github.com/Varun5711/noted/internal/storage"
	"github.com/Varun5711/noted/internal/validation"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password, so login failures cannot be used to enumerate users.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Burned when the username lookup comes up empty, to keep failed logins in
// the same timing ballpark as a real password check.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type UserService struct {
	userStorage storage.UserStorage
	jwtManager  *auth.JWTManager
	bcryptCost  int
	log         *logger.Logger
}

func NewUserService(userStorage storage.UserStorage, jwtManager *auth.JWTManager, bcryptCost int) *UserService {
	return &UserService{
		userStorage: userStorage,
		jwtManager:  jwtManager,
		bcryptCost:  bcryptCost,
		log:         logger.New("user-service"),
	}
}

func (s *UserService) Register(ctx context.Context, username, password string) (*usermodel.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPasswordCost(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userStorage.CreateUser(ctx, username, passwordHash)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, storage.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("User registered username=%s", user.Username)
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (string, time.Time, *usermodel.User, error) {
	user, err := s.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		auth.CheckPassword(dummyHash, password)
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info("User logged in username=%s", user.Username)
	return token, expiresAt, user, nil
}
