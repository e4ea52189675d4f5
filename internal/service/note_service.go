package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Varun5711/noted/internal/idgen"
	"github.com/Varun5711/noted/internal/logger"
	"github.com/Varun5711/noted/internal/models"
	"github.com/Varun5711/noted/internal/storage"
	"github.com/Varun5711/noted/internal/validation"
)

// NoteService is the single path through which note data is reached. Every
// method takes the verified user id from the auth middleware and scopes the
// storage call with it; no note operation accepts an owner from anywhere
// else in the request.
type NoteService struct {
	store storage.NoteStorage
	idGen *idgen.Generator
	log   *logger.Logger
}

func NewNoteService(store storage.NoteStorage, idGen *idgen.Generator) *NoteService {
	return &NoteService{
		store: store,
		idGen: idGen,
		log:   logger.New("note-service"),
	}
}

func (s *NoteService) CreateNote(ctx context.Context, userID, title, body string) (*models.Note, error) {
	if err := validation.ValidateNoteTitle(title); err != nil {
		return nil, err
	}

	id, err := s.idGen.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate note id: %w", err)
	}

	now := time.Now()
	note := &models.Note{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}

	s.log.Info("Note created id=%d user_id=%s", note.ID, userID)
	return note, nil
}

func (s *NoteService) GetNote(ctx context.Context, userID string, id int64) (*models.Note, error) {
	return s.store.GetByID(ctx, id, userID)
}

func (s *NoteService) ListNotes(ctx context.Context, userID string, skip, limit int) ([]*models.Note, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	return s.store.ListByUserID(ctx, userID, skip, limit)
}

func (s *NoteService) UpdateNote(ctx context.Context, userID string, id int64, req *models.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.store.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := validation.ValidateNoteTitle(*req.Title); err != nil {
			return nil, err
		}
		note.Title = *req.Title
	}
	if req.Body != nil {
		note.Body = *req.Body
	}
	note.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, note); err != nil {
		return nil, err
	}

	s.log.Info("Note updated id=%d user_id=%s", id, userID)
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, userID string, id int64) error {
	if err := s.store.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.log.Info("Note deleted id=%d user_id=%s", id, userID)
	return nil
}
