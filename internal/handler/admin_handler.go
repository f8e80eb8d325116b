package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/response"
)

// AdminHandler handles shelter administration.
type AdminHandler struct {
	catalog   *application.CatalogService
	adoptions *application.AdoptionService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalog *application.CatalogService, adoptions *application.AdoptionService) *AdminHandler {
	return &AdminHandler{catalog: catalog, adoptions: adoptions}
}

// DashboardDTO is the admin overview: pending requests and the whole catalog.
type DashboardDTO struct {
	PendingRequests []application.AdoptionRequestDTO `json:"pending_requests"`
	Pets            []application.PetDTO             `json:"pets"`
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/dashboard", h.Dashboard)

		admin.GET("/pets", h.SearchPets)
		admin.POST("/pets", h.CreatePet)
		admin.PUT("/pets/:id", h.UpdatePet)
		admin.DELETE("/pets/:id", h.DeletePet)

		admin.GET("/adoptions/pending", h.ListPending)
		admin.POST("/adoptions/:id/approve", h.ApproveRequest)
		admin.POST("/adoptions/:id/reject", h.RejectRequest)
	}
}

// Dashboard handles GET /api/v1/admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	pending, err := h.adoptions.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	pets, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, DashboardDTO{PendingRequests: pending, Pets: pets})
}

// SearchPets handles GET /api/v1/admin/pets. Unlike the public listing, any
// status may be requested.
func (h *AdminHandler) SearchPets(c *gin.Context) {
	filter, page, size, err := parseSearchParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.catalog.Search(c.Request.Context(), filter, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreatePet handles POST /api/v1/admin/pets.
func (h *AdminHandler) CreatePet(c *gin.Context) {
	var req application.PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pet, err := h.catalog.CreatePet(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, pet)
}

// UpdatePet handles PUT /api/v1/admin/pets/:id.
func (h *AdminHandler) UpdatePet(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pet, err := h.catalog.UpdatePet(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, pet)
}

// DeletePet handles DELETE /api/v1/admin/pets/:id.
func (h *AdminHandler) DeletePet(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.catalog.DeletePet(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "pet deleted"})
}

// ListPending handles GET /api/v1/admin/adoptions/pending.
func (h *AdminHandler) ListPending(c *gin.Context) {
	pending, err := h.adoptions.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, pending)
}

// ApproveRequest handles POST /api/v1/admin/adoptions/:id/approve.
func (h *AdminHandler) ApproveRequest(c *gin.Context) {
	h.resolve(c, h.adoptions.ApproveRequest)
}

// RejectRequest handles POST /api/v1/admin/adoptions/:id/reject.
func (h *AdminHandler) RejectRequest(c *gin.Context) {
	h.resolve(c, h.adoptions.RejectRequest)
}

func (h *AdminHandler) resolve(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := apply(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.adoptions.GetRequest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
