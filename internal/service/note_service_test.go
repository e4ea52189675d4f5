package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Varun5711/noted/internal/idgen"
	"github.com/Varun5711/noted/internal/models"
	"github.com/Varun5711/noted/internal/storage"
	"github.com/Varun5711/noted/internal/validation"
)

func newNoteService(t *testing.T) *NoteService {
	t.Helper()
	gen, err := idgen.NewGenerator(0, 0)
	if err != nil {
		t.Fatalf("Failed to create id generator: %v", err)
	}
	return NewNoteService(storage.NewMemoryNoteStorage(), gen)
}

func TestCreateAndGetNote(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "alice", "groceries", "milk, eggs")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if note.ID == 0 {
		t.Error("Expected generated note id")
	}
	if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	got, err := svc.GetNote(ctx, "alice", note.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got.Title != "groceries" || got.Body != "milk, eggs" {
		t.Errorf("Round-trip mismatch: got title=%q body=%q", got.Title, got.Body)
	}
}

func TestCreateNote_EmptyTitle(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	if _, err := svc.CreateNote(ctx, "alice", "", "body"); !errors.Is(err, validation.ErrTitleEmpty) {
		t.Errorf("Expected ErrTitleEmpty, got %v", err)
	}
	if _, err := svc.CreateNote(ctx, "alice", "   ", "body"); !errors.Is(err, validation.ErrTitleEmpty) {
		t.Errorf("Expected ErrTitleEmpty for blank title, got %v", err)
	}
}

func TestGetNote_CrossUser(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "alice", "private", "do not share")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	_, err = svc.GetNote(ctx, "bob", note.ID)
	if !errors.Is(err, storage.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound for another user's note, got %v", err)
	}
}

func TestListNotes_Isolation(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateNote(ctx, "alice", "alice note", ""); err != nil {
			t.Fatalf("CreateNote failed: %v", err)
		}
	}
	if _, err := svc.CreateNote(ctx, "bob", "bob note", ""); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	aliceNotes, err := svc.ListNotes(ctx, "alice", 0, 0)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(aliceNotes) != 3 {
		t.Errorf("Expected 3 notes for alice, got %d", len(aliceNotes))
	}

	bobNotes, err := svc.ListNotes(ctx, "bob", 0, 0)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(bobNotes) != 1 {
		t.Errorf("Expected 1 note for bob, got %d", len(bobNotes))
	}
}

func TestListNotes_CreationOrder(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := svc.CreateNote(ctx, "alice", title, ""); err != nil {
			t.Fatalf("CreateNote failed: %v", err)
		}
	}

	notes, err := svc.ListNotes(ctx, "alice", 0, 0)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("Expected 3 notes, got %d", len(notes))
	}
	for i, title := range titles {
		if notes[i].Title != title {
			t.Errorf("Expected notes[%d].Title=%q, got %q", i, title, notes[i].Title)
		}
	}
}

func TestUpdateNote_Partial(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "alice", "draft", "original body")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	newTitle := "final"
	updated, err := svc.UpdateNote(ctx, "alice", note.ID, &models.UpdateNoteRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}
	if updated.Title != "final" {
		t.Errorf("Expected title 'final', got '%s'", updated.Title)
	}
	if updated.Body != "original body" {
		t.Errorf("Body changed on title-only update: %q", updated.Body)
	}

	newBody := "new body"
	updated, err = svc.UpdateNote(ctx, "alice", note.ID, &models.UpdateNoteRequest{Body: &newBody})
	if err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}
	if updated.Title != "final" {
		t.Errorf("Title changed on body-only update: %q", updated.Title)
	}
	if updated.Body != "new body" {
		t.Errorf("Expected body 'new body', got '%s'", updated.Body)
	}
}

func TestUpdateNote_CrossUser(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "alice", "mine", "")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	title := "hijacked"
	_, err = svc.UpdateNote(ctx, "bob", note.ID, &models.UpdateNoteRequest{Title: &title})
	if !errors.Is(err, storage.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound, got %v", err)
	}

	got, err := svc.GetNote(ctx, "alice", note.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got.Title != "mine" {
		t.Errorf("Note modified by another user: %q", got.Title)
	}
}

func TestDeleteNote(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "alice", "temp", "")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	if err := svc.DeleteNote(ctx, "bob", note.ID); !errors.Is(err, storage.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound deleting another user's note, got %v", err)
	}

	if err := svc.DeleteNote(ctx, "alice", note.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}

	if _, err := svc.GetNote(ctx, "alice", note.ID); !errors.Is(err, storage.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound after delete, got %v", err)
	}
}

func TestListNotes_Bounds(t *testing.T) {
	svc := newNoteService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.CreateNote(ctx, "alice", "note", ""); err != nil {
			t.Fatalf("CreateNote failed: %v", err)
		}
	}

	notes, err := svc.ListNotes(ctx, "alice", -10, -1)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 5 {
		t.Errorf("Expected defaults to apply for negative skip/limit, got %d notes", len(notes))
	}

	notes, err = svc.ListNotes(ctx, "alice", 2, 2)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("Expected 2 notes with skip=2 limit=2, got %d", len(notes))
	}
}
