package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Varun5711/noted/internal/logger"
	"github.com/Varun5711/noted/internal/middleware"
	"github.com/Varun5711/noted/internal/models"
	"github.com/Varun5711/noted/internal/service"
)

type NoteHandler struct {
	noteService *service.NoteService
	log         *logger.Logger
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		log:         logger.New("note-handler"),
	}
}

// Notes serves the collection routes: POST /api/notes and GET /api/notes.
func (h *NoteHandler) Notes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createNote(w, r)
	case http.MethodGet:
		h.listNotes(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// NoteByID serves /api/notes/{id}: GET, PUT, DELETE.
func (h *NoteHandler) NoteByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/notes/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusNotFound, "note not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getNote(w, r, id)
	case http.MethodPut:
		h.updateNote(w, r, id)
	case http.MethodDelete:
		h.deleteNote(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *NoteHandler) createNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), userID, req.Title, req.Body)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) listNotes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	skip := parseIntParam(r, "skip", 0)
	limit := parseIntParam(r, "limit", 100)

	notes, err := h.noteService.ListNotes(r.Context(), userID, skip, limit)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ListNotesResponse{
		Notes: notes,
		Total: len(notes),
	})
}

func (h *NoteHandler) getNote(w http.ResponseWriter, r *http.Request, id int64) {
	userID := middleware.GetUserID(r.Context())

	note, err := h.noteService.GetNote(r.Context(), userID, id)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) updateNote(w http.ResponseWriter, r *http.Request, id int64) {
	userID := middleware.GetUserID(r.Context())

	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.noteService.UpdateNote(r.Context(), userID, id, &req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) deleteNote(w http.ResponseWriter, r *http.Request, id int64) {
	userID := middleware.GetUserID(r.Context())

	if err := h.noteService.DeleteNote(r.Context(), userID, id); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseIntParam(r *http.Request, name string, defaultValue int) int {
	if value := r.URL.Query().Get(name); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
