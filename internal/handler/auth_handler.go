package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/response"
)

// AuthHandler handles registration and sign-in.
type AuthHandler struct {
	users      *application.UserService
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *application.UserService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{users: users, jwtManager: jwtManager}
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	ExpiresAt   time.Time            `json:"expires_at"`
	User        *application.UserDTO `json:"user"`
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(h.jwtManager), h.Me)
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, user)
}

// Login handles POST /api/v1/auth/login. Unknown email and wrong password
// produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, ok, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ok {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, auth.Role(user.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, LoginResponse{AccessToken: token, ExpiresAt: expiresAt, User: user})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}
