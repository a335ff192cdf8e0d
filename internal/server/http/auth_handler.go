package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authapp "remind/internal/auth/app"
	authdomain "remind/internal/auth/domain"
	"remind/internal/logging"
)

// AuthHandler manages registration, login and identity lookup.
type AuthHandler struct {
	service *authapp.Service
	logger  logging.Logger
}

// NewAuthHandler builds a new authentication handler.
func NewAuthHandler(service *authapp.Service) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logging.NewComponentLogger("AuthHandler"),
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        userDTO   `json:"user"`
}

type userDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

func toUserDTO(user authdomain.User) userDTO {
	return userDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
	}
}

// HandleRegister serves POST /auth/register.
func (h *AuthHandler) HandleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserExists) {
			c.JSON(http.StatusConflict, errorResponse{Error: "email already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	h.logger.Info("registered user %s", user.ID)
	c.JSON(http.StatusCreated, toUserDTO(user))
}

// HandleLogin serves POST /auth/login.
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	pair, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
			return
		}
		h.logger.Error("login: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "login failed"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.ExpiresAt,
		User:        toUserDTO(pair.User),
	})
}

// HandleMe serves GET /auth/me.
func (h *AuthHandler) HandleMe(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "authorization required"})
		return
	}
	c.JSON(http.StatusOK, toUserDTO(user))
}
