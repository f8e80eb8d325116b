package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/response"
)

// AdoptionHandler handles adopter-facing adoption requests.
type AdoptionHandler struct {
	service *application.AdoptionService
}

// NewAdoptionHandler creates a new AdoptionHandler.
func NewAdoptionHandler(service *application.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{service: service}
}

// RegisterRoutes registers adoption routes. Every route requires a session.
func (h *AdoptionHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	adoptions := r.Group("/api/v1/adoptions")
	adoptions.Use(middleware.AuthMiddleware(jwtManager))
	{
		adoptions.POST("", middleware.RequireRole(auth.RoleAdopter), h.SubmitRequest)
		adoptions.GET("/mine", middleware.RequireRole(auth.RoleAdopter), h.ListMine)
		adoptions.GET("/:id", h.GetRequest)
	}
}

// SubmitRequest handles POST /api/v1/adoptions.
func (h *AdoptionHandler) SubmitRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.SubmitAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	requestID, err := h.service.SubmitRequest(c.Request.Context(), req.PetID, userID, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListMine handles GET /api/v1/adoptions/mine.
func (h *AdoptionHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	requests, err := h.service.ListByAdopter(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, requests)
}

// GetRequest handles GET /api/v1/adoptions/:id. Adopters see only their own
// requests; admins see all.
func (h *AdoptionHandler) GetRequest(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.GetRequest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if role != auth.RoleAdmin && result.AdopterID != userID {
		response.Forbidden(c, "not your adoption request")
		return
	}

	response.Success(c, result)
}

