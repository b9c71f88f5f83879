package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"budgetbook/internal/config"
	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/middleware"
)

// AuthHandler issues tokens for the household. There are no per-user
// accounts: access is an email allowlist plus one shared password.
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// LoginRequest represents the request payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks the email against the household allowlist and the password
// against the configured bcrypt hash, then issues an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cfg := config.Get()
	// Unknown emails and wrong passwords get the same answer.
	if !cfg.EmailAllowed(req.Email) {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(req.Password)); err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := middleware.GenerateAccessToken(req.Email)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "email": req.Email})
}
