package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/response"
)

// FavoriteHandler serves an adopter's liked pets.
type FavoriteHandler struct {
	service *application.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *application.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// RegisterRoutes registers favorite routes.
func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	favorites := r.Group("/api/v1/favorites")
	favorites.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdopter))
	{
		favorites.GET("", h.List)
		favorites.PUT("/:petId", h.Like)
		favorites.DELETE("/:petId", h.Unlike)
	}
}

// List handles GET /api/v1/favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	favs, err := h.service.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, favs)
}

// Like handles PUT /api/v1/favorites/:petId.
func (h *FavoriteHandler) Like(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	petID, err := parseIDParam(c, "petId")
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.service.Like(c.Request.Context(), userID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if created {
		response.Created(c, gin.H{"pet_id": petID, "liked": true})
		return
	}
	response.Success(c, gin.H{"pet_id": petID, "liked": true})
}

// Unlike handles DELETE /api/v1/favorites/:petId.
func (h *FavoriteHandler) Unlike(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	petID, err := parseIDParam(c, "petId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Unlike(c.Request.Context(), userID, petID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"pet_id": petID, "liked": false})
}
