package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/marketwire/marketwire-server/internal/auth"
	"github.com/marketwire/marketwire-server/internal/core"
	"github.com/marketwire/marketwire-server/internal/proto"
)

// APIHandlers provides HTTP handlers for the panel-facing REST API.
type APIHandlers struct {
	hub         *core.Hub
	authService *auth.Service
	log         *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(hub *core.Hub, authService *auth.Service, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		hub:         hub,
		authService: authService,
		log:         logger,
	}
}

// SignupRequest represents the signup request body.
type SignupRequest struct {
	Role     string `json:"role" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response body.
type AuthResponse struct {
	Token string `json:"token"`
}

// PresenceResponse is the live registry snapshot for panel bootstrap.
type PresenceResponse struct {
	Sellers     []proto.PresenceEntry `json:"sellers"`
	Customers   []proto.PresenceEntry `json:"customers"`
	AdminOnline bool                  `json:"admin_online"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Signup handles account creation for customers and sellers.
// POST /api/signup
func (h *APIHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid signup request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Signup(c.Request.Context(), req.Role, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAccountExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "account already exists"})
		case errors.Is(err, auth.ErrInvalidRole),
			errors.Is(err, auth.ErrInvalidName),
			errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrInvalidPassword):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			h.log.Error().Err(err).Str("email", req.Email).Msg("failed to sign up account")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	h.log.Info().Str("email", req.Email).Str("role", req.Role).Msg("account created")
	c.JSON(http.StatusCreated, AuthResponse{Token: token})
}

// Login handles account login.
// POST /api/login
func (h *APIHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
			return
		}
		h.log.Error().Err(err).Str("email", req.Email).Msg("failed to log in account")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

// Presence returns the current connected sellers, customers and admin
// flag, read from the live registry.
// GET /api/presence
func (h *APIHandlers) Presence(c *gin.Context) {
	snap, err := h.hub.CurrentSnapshot(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read presence snapshot")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "presence unavailable"})
		return
	}

	c.JSON(http.StatusOK, PresenceResponse{
		Sellers:     presenceEntries(snap.Sellers),
		Customers:   presenceEntries(snap.Customers),
		AdminOnline: snap.AdminOnline,
	})
}
