package pet

import (
	"strings"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// SearchFilter narrows a catalog search. Every field is optional; the set
// fields combine with AND. Breed and Name are case-insensitive substring
// matches; blank values impose no constraint.
type SearchFilter struct {
	Status  *Status
	Species *Species
	AgeMin  *int
	AgeMax  *int
	Breed   string
	Name    string
}

// Validate rejects negative age bounds and unknown enum values.
func (f SearchFilter) Validate() error {
	if f.AgeMin != nil && *f.AgeMin < 0 {
		return apperr.NewValidationError("ageMin must be a non-negative integer")
	}
	if f.AgeMax != nil && *f.AgeMax < 0 {
		return apperr.NewValidationError("ageMax must be a non-negative integer")
	}
	if f.Status != nil && !f.Status.IsValid() {
		return apperr.NewValidationError("invalid pet status: " + string(*f.Status))
	}
	if f.Species != nil && !f.Species.IsValid() {
		return apperr.NewValidationError("invalid species: " + string(*f.Species))
	}
	return nil
}

// BreedPattern returns the lower-cased breed substring, or "" when unset.
func (f SearchFilter) BreedPattern() string {
	return normalizedPattern(f.Breed)
}

// NamePattern returns the lower-cased name substring, or "" when unset.
func (f SearchFilter) NamePattern() string {
	return normalizedPattern(f.Name)
}

// Matches evaluates the filter against a single pet in memory, with the same
// semantics as the SQL predicates.
func (f SearchFilter) Matches(p *Pet) bool {
	if f.Status != nil && p.status != *f.Status {
		return false
	}
	if f.Species != nil && p.species != *f.Species {
		return false
	}
	if f.AgeMin != nil && p.ageYears < *f.AgeMin {
		return false
	}
	if f.AgeMax != nil && p.ageYears > *f.AgeMax {
		return false
	}
	if q := f.BreedPattern(); q != "" && !strings.Contains(strings.ToLower(p.breed), q) {
		return false
	}
	if q := f.NamePattern(); q != "" && !strings.Contains(strings.ToLower(p.name), q) {
		return false
	}
	return true
}

func normalizedPattern(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return strings.ToLower(s)
}
