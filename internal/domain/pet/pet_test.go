package pet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

func TestSpecies_AdoptionFee(t *testing.T) {
	assert.Equal(t, 2500.0, SpeciesDog.AdoptionFee())
	assert.Equal(t, 2000.0, SpeciesCat.AdoptionFee())
	assert.Equal(t, 1500.0, SpeciesOther.AdoptionFee())
}

func TestParseSpecies(t *testing.T) {
	s, err := ParseSpecies(" Dog ")
	require.NoError(t, err)
	assert.Equal(t, SpeciesDog, s)

	_, err = ParseSpecies("hamster")
	assert.Error(t, err)
}

func TestNewPet_DefaultsToAvailable(t *testing.T) {
	p, err := NewPet(Attributes{Name: "Rex", Species: SpeciesDog, Breed: "Labrador", AgeYears: 3})
	require.NoError(t, err)

	assert.Equal(t, StatusAvailable, p.Status())
	assert.Equal(t, 2500.0, p.AdoptionFee())
	assert.False(t, p.CreatedAt().IsZero())
}

func TestNewPet_Validation(t *testing.T) {
	cases := map[string]Attributes{
		"missing name":  {Species: SpeciesCat},
		"bad species":   {Name: "Milo", Species: "hamster"},
		"negative age":  {Name: "Milo", Species: SpeciesCat, AgeYears: -1},
		"unknown state": {Name: "Milo", Species: SpeciesCat, Status: "lost"},
	}
	for name, attrs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewPet(attrs)
			assert.True(t, apperr.IsValidationFailed(err))
		})
	}
}

func TestPet_ReplaceOverridesStatus(t *testing.T) {
	p, err := NewPet(Attributes{Name: "Rex", Species: SpeciesDog, ImageRef: "rex.jpg"})
	require.NoError(t, err)

	require.NoError(t, p.Replace(Attributes{
		Name:     "Rex II",
		Species:  SpeciesOther,
		AgeYears: 4,
		Status:   StatusAdopted,
	}))

	assert.Equal(t, "Rex II", p.Name())
	assert.Equal(t, StatusAdopted, p.Status())
	assert.Equal(t, "rex.jpg", p.ImageRef())
}

func TestStatus_WorkflowTransitions(t *testing.T) {
	assert.True(t, StatusAvailable.CanTransitionTo(StatusPending))
	assert.True(t, StatusPending.CanTransitionTo(StatusAdopted))
	assert.True(t, StatusPending.CanTransitionTo(StatusAvailable))
	assert.False(t, StatusAdopted.CanTransitionTo(StatusPending))
	assert.False(t, StatusAvailable.CanTransitionTo(StatusAdopted))
}
