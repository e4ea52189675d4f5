package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Varun5711/noted/internal/logger"
	usermodel "github.com/Varun5711/noted/internal/models/user"
	"github.com/Varun5711/noted/internal/service"
)

type AuthHandler struct {
	userService *service.UserService
	log         *logger.Logger
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		log:         logger.New("auth-handler"),
	}
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt int64  `json:"created_at"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req usermodel.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Unix(),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req usermodel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, expiresAt, user, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, usermodel.AuthResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	})
}
