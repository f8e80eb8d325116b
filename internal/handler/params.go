package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

const (
	defaultPage     = 0
	defaultPageSize = 5
)

// parseSearchParams reads the catalog query string. Malformed pagination
// falls back to the defaults; malformed filters are validation errors.
//
//	q=name substring  type=species  breed=substring  ageMin, ageMax  status  page, size
func parseSearchParams(c *gin.Context) (petDomain.SearchFilter, int, int, error) {
	var filter petDomain.SearchFilter

	page := parseIntDefault(c.Query("page"), defaultPage, 0)
	size := parseIntDefault(c.Query("size"), defaultPageSize, 1)

	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		species, err := petDomain.ParseSpecies(raw)
		if err != nil {
			return filter, 0, 0, apperr.NewValidationError(err.Error())
		}
		filter.Species = &species
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := petDomain.ParseStatus(raw)
		if err != nil {
			return filter, 0, 0, apperr.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	var err error
	if filter.AgeMin, err = parseAge(c.Query("ageMin"), "ageMin"); err != nil {
		return filter, 0, 0, err
	}
	if filter.AgeMax, err = parseAge(c.Query("ageMax"), "ageMax"); err != nil {
		return filter, 0, 0, err
	}

	filter.Breed = c.Query("breed")
	filter.Name = c.Query("q")
	return filter, page, size, nil
}

func parseIntDefault(raw string, def, min int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < min {
		return def
	}
	return n
}

func parseAge(raw, field string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, apperr.NewValidationError(field + " must be a non-negative integer")
	}
	return &n, nil
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.NewValidationError("invalid " + name)
	}
	return id, nil
}
