package handlers

import (
	"net/http"

	"CATALOG_BACK-END/internal/dto"
	"CATALOG_BACK-END/internal/logging"
	"CATALOG_BACK-END/internal/services"
	"CATALOG_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth *services.AuthService
	log  logging.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(auth *services.AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new account and return an access token for it
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 200 {object} dto.TokenResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	token, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: token})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password and return an access token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "User login credentials"
// @Success 200 {object} dto.TokenResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	token, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: token})
}
