package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/eaglebank/expense-ledger/internal/query"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/middleware"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/gin-gonic/gin"
)

// AuthCommander defines the write-side operations used by AuthHandler.
type AuthCommander interface {
	Register(ctx context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error)
}

// AuthQuerier defines the read-side operations used by AuthHandler.
type AuthQuerier interface {
	Login(ctx context.Context, cmd cqrs.LoginCommand) (*query.LoginResult, error)
	Profile(ctx context.Context, q cqrs.GetProfileQuery) (*models.UserView, error)
}

// CookieOptions controls the session cookie written on login.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

// AuthHandler handles registration and the cookie session lifecycle.
type AuthHandler struct {
	commands AuthCommander
	queries  AuthQuerier
	verifier middleware.TokenVerifier
	cookie   CookieOptions
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	User models.UserView `json:"user"`
}

type SessionResponse struct {
	User *models.Identity `json:"user"`
}

type SessionErrorResponse struct {
	Error string           `json:"error"`
	User  *models.Identity `json:"user"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func NewAuthHandler(commands AuthCommander, queries AuthQuerier, verifier middleware.TokenVerifier, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{commands: commands, queries: queries, verifier: verifier, cookie: cookie}
}

// Register godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "New account"
// @Success 201 {object} models.UserView
// @Failure 400 {object} middleware.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.commands.Register(c.Request.Context(), cqrs.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, user.View())
}

// Login godoc
// @Summary Log in
// @Description Sets the auth-token session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} UserResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.queries.Login(c.Request.Context(), cqrs.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to log in")
		return
	}

	h.setSessionCookie(c, result.Token, int(h.cookie.TTL.Seconds()))
	c.JSON(http.StatusOK, UserResponse{User: result.User})
}

// Logout godoc
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Session godoc
// @Summary Current session
// @Description Decodes the session token without touching the store.
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} SessionErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, SessionErrorResponse{Error: "Authentication required"})
		return
	}
	identity, err := h.verifier.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, SessionErrorResponse{Error: "Invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, SessionResponse{User: &identity})
}

// Me godoc
// @Summary Stored profile of the caller
// @Tags auth
// @Produce json
// @Success 200 {object} models.UserView
// @Failure 404 {object} middleware.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	view, err := h.queries.Profile(c.Request.Context(), cqrs.GetProfileQuery{Viewer: identity})
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.cookie.Secure, true)
}
