package storage

import (
	"context"
	"fmt"

	"github.com/Varun5711/noted/internal/database"
	"github.com/Varun5711/noted/internal/models"
	"github.com/jackc/pgx/v5"
)

type PostgresNoteStorage struct {
	db *database.DBManager
}

func NewPostgresNoteStorage(db *database.DBManager) *PostgresNoteStorage {
	return &PostgresNoteStorage{db: db}
}

func (s *PostgresNoteStorage) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (id, user_id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Write().Exec(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Body,
		note.CreatedAt,
		note.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (s *PostgresNoteStorage) GetByID(ctx context.Context, id int64, userID string) (*models.Note, error) {
	query := `
		SELECT id, user_id, title, body, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2
	`

	var note models.Note
	err := s.db.Read().QueryRow(ctx, query, id, userID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Body,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNoteNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

func (s *PostgresNoteStorage) ListByUserID(ctx context.Context, userID string, skip, limit int) ([]*models.Note, error) {
	query := `
		SELECT id, user_id, title, body, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`

	rows, err := s.db.Read().Query(ctx, query, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Body,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		notes = append(notes, &note)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

func (s *PostgresNoteStorage) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes
		SET title = $1, body = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`

	cmdTag, err := s.db.Write().Exec(ctx, query,
		note.Title,
		note.Body,
		note.UpdatedAt,
		note.ID,
		note.UserID,
	)

	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (s *PostgresNoteStorage) Delete(ctx context.Context, id int64, userID string) error {
	query := `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2
	`

	cmdTag, err := s.db.Write().Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}
