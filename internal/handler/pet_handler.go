package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/response"
)

// PetHandler serves the public catalog.
type PetHandler struct {
	catalog *application.CatalogService
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(catalog *application.CatalogService) *PetHandler {
	return &PetHandler{catalog: catalog}
}

// RegisterRoutes registers public catalog routes.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup) {
	pets := r.Group("/api/v1/pets")
	{
		pets.GET("", h.ListPets)
		pets.GET("/:id", h.GetPet)
	}
}

// ListPets handles GET /api/v1/pets. Only available pets are listed.
func (h *PetHandler) ListPets(c *gin.Context) {
	filter, page, size, err := parseSearchParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	available := petDomain.StatusAvailable
	filter.Status = &available

	result, err := h.catalog.Search(c.Request.Context(), filter, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetPet handles GET /api/v1/pets/:id.
func (h *PetHandler) GetPet(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	pet, err := h.catalog.GetPet(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, pet)
}
