package handler

import (
	"errors"
	"net/http"

	"yamdb/internal/metrics"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the public signup and token routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/signup", h.Signup)
	router.POST("/token", h.Token)
}

// Signup registers the user if needed and mails a confirmation code
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		metrics.ObserveSignup("invalid")
		return
	}

	user, err := h.authService.RequestSignup(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		metrics.ObserveSignup(outcome(err))
		respondError(c, err)
		return
	}

	metrics.ObserveSignup("ok")
	c.JSON(http.StatusOK, dto.SignupResponse{Username: user.Username, Email: user.Email})
}

// Token exchanges a confirmation code for an access token
// POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if !bindJSON(c, &req) {
		metrics.ObserveTokenExchange("invalid")
		return
	}

	token, err := h.authService.ExchangeToken(c.Request.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		metrics.ObserveTokenExchange(outcome(err))
		respondError(c, err)
		return
	}

	metrics.ObserveTokenExchange("ok")
	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(h.authService.AccessTokenTTL().Seconds()),
	})
}

// outcome buckets an error into a low-cardinality metric label.
func outcome(err error) string {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return "invalid"
	case errors.Is(err, service.ErrConflict):
		return "conflict"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "bad_code"
	case errors.Is(err, service.ErrNotFound):
		return "unknown_user"
	case errors.Is(err, service.ErrMailDelivery):
		return "mail_failed"
	}
	return "error"
}
