package pet

import (
	"fmt"
	"strings"
)

// Species is the closed set of pet kinds. Each kind carries a fixed adoption fee.
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// AdoptionFee returns the fee charged for adopting a pet of this species.
func (s Species) AdoptionFee() float64 {
	switch s {
	case SpeciesDog:
		return 2500.0
	case SpeciesCat:
		return 2000.0
	default:
		return 1500.0
	}
}

func (s Species) IsValid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	default:
		return false
	}
}

func (s Species) String() string {
	return string(s)
}

// ParseSpecies converts a string to a Species, ignoring case.
func ParseSpecies(s string) (Species, error) {
	species := Species(strings.ToLower(strings.TrimSpace(s)))
	if !species.IsValid() {
		return "", fmt.Errorf("invalid species: %s", s)
	}
	return species, nil
}
