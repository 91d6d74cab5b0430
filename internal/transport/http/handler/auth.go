package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/estate-listings/internal/transport/http/middleware"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"    binding:"required,max=254"`
	Password string `json:"password" binding:"required,max=128"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,max=128"`
}

type authResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type meResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func toAuthResponse(res *usecase.AuthResult) authResponse {
	return authResponse{
		ID:      res.User.ID,
		Email:   res.User.Email,
		Access:  res.Tokens.Access,
		Refresh: res.Tokens.Refresh,
	}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind register", err)
		return
	}
	if err := checkEmail(req.Email); err != nil {
		respondError(c, h.logger, "check email", err)
		return
	}

	res, err := h.authUsecase.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "register", err)
		return
	}

	c.JSON(http.StatusOK, toAuthResponse(res))
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind login", err)
		return
	}

	res, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "login", err)
		return
	}

	c.JSON(http.StatusOK, toAuthResponse(res))
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, meResponse{ID: user.ID, Email: user.Email})
}

// POST /api/auth/token/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind refresh", err)
		return
	}

	access, err := h.authUsecase.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, h.logger, "refresh token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

// POST /api/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind change password", err)
		return
	}

	err := h.authUsecase.ChangePassword(c.Request.Context(), middleware.UserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		respondError(c, h.logger, "change password", err)
		return
	}

	c.Status(http.StatusNoContent)
}
