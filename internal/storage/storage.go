package storage

import (
	"context"
	"errors"

	"github.com/Varun5711/noted/internal/models"
	usermodel "github.com/Varun5711/noted/internal/models/user"
)

var (
	// ErrNoteNotFound is returned both when a note id does not exist and
	// when it exists under a different owner. Callers must not be able to
	// tell the two apart.
	ErrNoteNotFound = errors.New("note not found")

	ErrUserExists = errors.New("username already registered")
)

type NoteStorage interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id int64, userID string) (*models.Note, error)
	ListByUserID(ctx context.Context, userID string, skip, limit int) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id int64, userID string) error
}

type UserStorage interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*usermodel.User, error)
	GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error)
	GetUserByID(ctx context.Context, userID string) (*usermodel.User, error)
}
