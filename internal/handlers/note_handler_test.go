package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Varun5711/noted/internal/auth"
	"github.com/Varun5711/noted/internal/idgen"
	"github.com/Varun5711/noted/internal/middleware"
	"github.com/Varun5711/noted/internal/models"
	usermodel "github.com/Varun5711/noted/internal/models/user"
	"github.com/Varun5711/noted/internal/service"
	"github.com/Varun5711/noted/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// newTestServer wires the full handler stack over in-memory storage, the
// same way the api binary does.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gen, err := idgen.NewGenerator(0, 0)
	if err != nil {
		t.Fatalf("Failed to create id generator: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret-key", 30*time.Minute)
	userService := service.NewUserService(storage.NewMemoryUserStorage(), jwtManager, bcrypt.MinCost)
	noteService := service.NewNoteService(storage.NewMemoryNoteStorage(), gen)

	authHandler := NewAuthHandler(userService)
	noteHandler := NewNoteHandler(noteService)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/notes", authMiddleware.RequireAuth(noteHandler.Notes))
	mux.HandleFunc("/api/notes/", authMiddleware.RequireAuth(noteHandler.NoteByID))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func registerAndLogin(t *testing.T, server *httptest.Server, username string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Register returned status %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Login returned status %d", resp.StatusCode)
	}

	var authResp usermodel.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	return authResp.Token
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("Health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", body["status"])
	}
}

func TestRegister_Conflict(t *testing.T) {
	server := newTestServer(t)

	payload := map[string]string{"username": "alice", "password": "password123"}

	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409 on duplicate username, got %d", resp.StatusCode)
	}
}

func TestRegister_InvalidPayload(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", map[string]string{
		"username": "alice",
		"password": "x",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for short password, got %d", resp.StatusCode)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	server := newTestServer(t)
	registerAndLogin(t, server, "alice")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrongpassword",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for wrong password, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"username": "ghost",
		"password": "password123",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for unknown user, got %d", resp.StatusCode)
	}
}

func TestNotes_RequireAuth(t *testing.T) {
	server := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/notes", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without token, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/notes", "garbage-token", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401 with bad token, got %d", resp.StatusCode)
	}
}

func TestNotes_CreateAndList(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/notes", token, models.CreateNoteRequest{
		Title: "groceries",
		Body:  "milk, eggs",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var created models.Note
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode created note: %v", err)
	}
	resp.Body.Close()
	if created.ID == 0 {
		t.Error("Expected generated note id")
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/notes", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var list models.ListNotesResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if list.Total != 1 || len(list.Notes) != 1 {
		t.Fatalf("Expected 1 note, got total=%d len=%d", list.Total, len(list.Notes))
	}
	if list.Notes[0].Title != "groceries" {
		t.Errorf("Expected title 'groceries', got '%s'", list.Notes[0].Title)
	}
}

func TestNotes_CreateEmptyTitle(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/notes", token, models.CreateNoteRequest{
		Title: "",
		Body:  "body",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty title, got %d", resp.StatusCode)
	}
}

func TestNotes_CrossUserIsolation(t *testing.T) {
	server := newTestServer(t)
	aliceToken := registerAndLogin(t, server, "alice")
	bobToken := registerAndLogin(t, server, "bob")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/notes", aliceToken, models.CreateNoteRequest{
		Title: "private",
	})
	var note models.Note
	if err := json.NewDecoder(resp.Body).Decode(&note); err != nil {
		t.Fatalf("Failed to decode note: %v", err)
	}
	resp.Body.Close()

	noteURL := fmt.Sprintf("%s/api/notes/%d", server.URL, note.ID)

	resp = doJSON(t, http.MethodGet, noteURL, bobToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 for bob reading alice's note, got %d", resp.StatusCode)
	}

	title := "hijacked"
	resp = doJSON(t, http.MethodPut, noteURL, bobToken, models.UpdateNoteRequest{Title: &title})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 for bob updating alice's note, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, noteURL, bobToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 for bob deleting alice's note, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, noteURL, aliceToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Alice's note damaged by bob's attempts: status %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/notes", bobToken, nil)
	defer resp.Body.Close()
	var list models.ListNotesResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("Alice's note leaked into bob's list: total=%d", list.Total)
	}
}

func TestNotes_UpdateAndDelete(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/notes", token, models.CreateNoteRequest{
		Title: "draft",
		Body:  "original",
	})
	var note models.Note
	if err := json.NewDecoder(resp.Body).Decode(&note); err != nil {
		t.Fatalf("Failed to decode note: %v", err)
	}
	resp.Body.Close()

	noteURL := fmt.Sprintf("%s/api/notes/%d", server.URL, note.ID)

	title := "final"
	resp = doJSON(t, http.MethodPut, noteURL, token, models.UpdateNoteRequest{Title: &title})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var updated models.Note
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("Failed to decode updated note: %v", err)
	}
	resp.Body.Close()
	if updated.Title != "final" || updated.Body != "original" {
		t.Errorf("Partial update wrong: title=%q body=%q", updated.Title, updated.Body)
	}

	resp = doJSON(t, http.MethodDelete, noteURL, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, noteURL, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", resp.StatusCode)
	}
}

func TestNotes_InvalidID(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/notes/not-a-number", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 for malformed id, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/notes/999999999", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown id, got %d", resp.StatusCode)
	}
}

func TestNotes_Pagination(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	for i := 0; i < 5; i++ {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/notes", token, models.CreateNoteRequest{
			Title: fmt.Sprintf("note %d", i),
		})
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Create returned status %d", resp.StatusCode)
		}
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/notes?skip=2&limit=2", token, nil)
	defer resp.Body.Close()

	var list models.ListNotesResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if len(list.Notes) != 2 {
		t.Fatalf("Expected 2 notes with skip=2&limit=2, got %d", len(list.Notes))
	}
	if list.Notes[0].Title != "note 2" {
		t.Errorf("Expected 'note 2' first, got '%s'", list.Notes[0].Title)
	}
}

func TestNotes_MethodNotAllowed(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "alice")

	req, _ := http.NewRequest(http.MethodPatch, server.URL+"/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", resp.StatusCode)
	}
}
