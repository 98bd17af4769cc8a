package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectboard/internal/model"
	"projectboard/internal/server/service"
)

// AuthService is the seam the handler is tested through.
type AuthService interface {
	Register(ctx context.Context, name, email, milestone, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
}

type AuthHandler struct {
	svc    AuthService
	logger *zap.Logger
}

func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Milestone string `json:"milestone"`
	Password  string `json:"password"`
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	fieldErrors := map[string][]string{}
	if req.Email == "" {
		fieldErrors["email"] = append(fieldErrors["email"], "Email is required")
	}
	if req.Password == "" {
		fieldErrors["password"] = append(fieldErrors["password"], "Password is required")
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"access_token": token,
		"user":         user,
	}})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	fieldErrors := map[string][]string{}
	if req.Name == "" {
		fieldErrors["name"] = append(fieldErrors["name"], "Name is required")
	}
	if req.Email == "" {
		fieldErrors["email"] = append(fieldErrors["email"], "Email is required")
	}
	if req.Password == "" {
		fieldErrors["password"] = append(fieldErrors["password"], "Password is required")
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Milestone, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": user})
}
