package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Varun5711/noted/internal/models"
	usermodel "github.com/Varun5711/noted/internal/models/user"
	"github.com/google/uuid"
)

// MemoryNoteStorage keeps notes in process memory. Used in tests and when
// no database DSN is configured.
type MemoryNoteStorage struct {
	mu    sync.RWMutex
	notes map[int64]*models.Note
}

func NewMemoryNoteStorage() *MemoryNoteStorage {
	return &MemoryNoteStorage{
		notes: make(map[int64]*models.Note),
	}
}

func (s *MemoryNoteStorage) Create(ctx context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *note
	s.notes[note.ID] = &stored
	return nil
}

func (s *MemoryNoteStorage) GetByID(ctx context.Context, id int64, userID string) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, exists := s.notes[id]
	if !exists || note.UserID != userID {
		return nil, ErrNoteNotFound
	}

	found := *note
	return &found, nil
}

func (s *MemoryNoteStorage) ListByUserID(ctx context.Context, userID string, skip, limit int) ([]*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make([]*models.Note, 0)
	for _, note := range s.notes {
		if note.UserID == userID {
			found := *note
			owned = append(owned, &found)
		}
	}

	// Snowflake ids are time-ordered, so sorting by id gives creation order.
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	if skip >= len(owned) {
		return []*models.Note{}, nil
	}
	owned = owned[skip:]
	if limit > 0 && limit < len(owned) {
		owned = owned[:limit]
	}

	return owned, nil
}

func (s *MemoryNoteStorage) Update(ctx context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.notes[note.ID]
	if !exists || existing.UserID != note.UserID {
		return ErrNoteNotFound
	}

	stored := *note
	s.notes[note.ID] = &stored
	return nil
}

func (s *MemoryNoteStorage) Delete(ctx context.Context, id int64, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.notes[id]
	if !exists || existing.UserID != userID {
		return ErrNoteNotFound
	}

	delete(s.notes, id)
	return nil
}

// MemoryUserStorage is the in-memory counterpart of PostgresUserStorage.
type MemoryUserStorage struct {
	mu         sync.RWMutex
	byID       map[string]*usermodel.User
	byUsername map[string]*usermodel.User
}

func NewMemoryUserStorage() *MemoryUserStorage {
	return &MemoryUserStorage{
		byID:       make(map[string]*usermodel.User),
		byUsername: make(map[string]*usermodel.User),
	}
}

func (s *MemoryUserStorage) CreateUser(ctx context.Context, username, passwordHash string) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return nil, ErrUserExists
	}

	now := time.Now()
	stored := &usermodel.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.byID[stored.ID] = stored
	s.byUsername[username] = stored

	created := *stored
	return &created, nil
}

func (s *MemoryUserStorage) GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, exists := s.byUsername[username]
	if !exists {
		return nil, nil
	}

	found := *stored
	return &found, nil
}

func (s *MemoryUserStorage) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, exists := s.byID[userID]
	if !exists {
		return nil, nil
	}

	found := *stored
	return &found, nil
}
