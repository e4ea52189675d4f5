package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Varun5711/noted/internal/database"
	usermodel "github.com/Varun5711/noted/internal/models/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresUserStorage struct {
	db *database.DBManager
}

func NewPostgresUserStorage(db *database.DBManager) *PostgresUserStorage {
	return &PostgresUserStorage{db: db}
}

func (s *PostgresUserStorage) CreateUser(ctx context.Context, username, passwordHash string) (*usermodel.User, error) {
	userID := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, created_at, updated_at
	`

	var user usermodel.User
	err := s.db.Write().QueryRow(ctx, query,
		userID,
		username,
		passwordHash,
		now,
		now,
	).Scan(
		&user.ID,
		&user.Username,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *PostgresUserStorage) GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var user usermodel.User
	err := s.db.Read().QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *PostgresUserStorage) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	query := `
		SELECT id, username, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user usermodel.User
	err := s.db.Read().QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
