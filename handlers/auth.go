package handlers

import (
	"context"
	"net/http"

	"wisewallet/backend/middleware"
	"wisewallet/backend/models"
	"wisewallet/backend/services"
)

// AuthService is implemented by services.AuthService.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Verify(ctx context.Context, token string) (*models.User, error)
}

type registerRequest struct {
	Email          string     `json:"email"`
	Password       string     `json:"password"`
	Name           string     `json:"name"`
	University     string     `json:"university"`
	Major          string     `json:"major"`
	GraduationYear flexString `json:"graduationYear"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// AuthHandler serves /auth.
type AuthHandler struct {
	svc AuthService
	err errorResponder
}

func NewAuthHandler(svc AuthService, showDetail bool) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		err: errorResponder{providerStatus: http.StatusBadGateway, showDetail: showDetail},
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.err.badRequest(w, "Invalid request body", err)
		return
	}

	result, err := h.svc.Register(r.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Profile: models.Profile{
			Name:           req.Name,
			University:     req.University,
			Major:          req.Major,
			GraduationYear: string(req.GraduationYear),
		},
	})
	if err != nil {
		h.err.respond(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   result.Token,
		User:    result.User,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.err.badRequest(w, "Invalid request body", err)
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.err.respond(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// Verify handles GET /auth/verify. RequireAuth has already re-read the user.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid or expired token", nil, false)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}
