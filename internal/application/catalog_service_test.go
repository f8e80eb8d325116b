package application

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

func TestCatalogService_SearchPagination(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 7; i++ {
		f.createPet(t, fmt.Sprintf("Pet %d", i), "dog", "")
	}

	first, err := f.catalog.Search(ctx, petDomain.SearchFilter{}, 0, 5)
	require.NoError(t, err)
	require.Len(t, first.Items, 5)
	assert.True(t, first.HasNext)
	assert.Equal(t, "Pet 6", first.Items[0].Name)
	for i := 1; i < len(first.Items); i++ {
		assert.False(t, first.Items[i].CreatedAt.After(first.Items[i-1].CreatedAt))
	}

	second, err := f.catalog.Search(ctx, petDomain.SearchFilter{}, 1, 5)
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)
	assert.False(t, second.HasNext)
	assert.Equal(t, 1, second.Page)
	assert.Equal(t, 5, second.PageSize)
}

func TestCatalogService_SearchHasNextOnExactlyFullPage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.createPet(t, fmt.Sprintf("Pet %d", i), "cat", "")
	}

	page, err := f.catalog.Search(ctx, petDomain.SearchFilter{}, 0, 5)
	require.NoError(t, err)
	assert.True(t, page.HasNext)

	next, err := f.catalog.Search(ctx, petDomain.SearchFilter{}, 1, 5)
	require.NoError(t, err)
	assert.Empty(t, next.Items)
	assert.False(t, next.HasNext)
}

func TestCatalogService_SearchFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.catalog.CreatePet(ctx, PetRequest{Name: "Rex", Species: "dog", Breed: "Golden Retriever", AgeYears: 3})
	require.NoError(t, err)
	_, err = f.catalog.CreatePet(ctx, PetRequest{Name: "Rexy", Species: "cat", Breed: "Persian", AgeYears: 8})
	require.NoError(t, err)
	_, err = f.catalog.CreatePet(ctx, PetRequest{Name: "Goldie", Species: "other", Breed: "goldfish", AgeYears: 1, Status: "adopted"})
	require.NoError(t, err)

	available := petDomain.StatusAvailable
	cat := petDomain.SpeciesCat
	two := 2

	cases := []struct {
		name   string
		filter petDomain.SearchFilter
		want   []string
	}{
		{"name substring ignores case", petDomain.SearchFilter{Name: "REX"}, []string{"Rexy", "Rex"}},
		{"breed substring matches inside", petDomain.SearchFilter{Breed: "gold"}, []string{"Goldie", "Rex"}},
		{"status", petDomain.SearchFilter{Status: &available}, []string{"Rexy", "Rex"}},
		{"species and min age", petDomain.SearchFilter{Species: &cat, AgeMin: &two}, []string{"Rexy"}},
		{"max age", petDomain.SearchFilter{AgeMax: &two}, []string{"Goldie"}},
		{"literal percent", petDomain.SearchFilter{Name: "%"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := f.catalog.Search(ctx, tc.filter, 0, 10)
			require.NoError(t, err)
			got := make([]string, len(page.Items))
			for i, p := range page.Items {
				got[i] = p.Name
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCatalogService_SearchRejectsNegativeInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	neg := -1

	_, err := f.catalog.Search(ctx, petDomain.SearchFilter{}, -1, 5)
	assert.True(t, apperr.IsValidationFailed(err))
	_, err = f.catalog.Search(ctx, petDomain.SearchFilter{}, 0, -5)
	assert.True(t, apperr.IsValidationFailed(err))
	_, err = f.catalog.Search(ctx, petDomain.SearchFilter{AgeMin: &neg}, 0, 5)
	assert.True(t, apperr.IsValidationFailed(err))
}

func TestCatalogService_SearchRejectsOverflowingOffset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createPet(t, "Rex", "dog", "")

	_, err := f.catalog.Search(ctx, petDomain.SearchFilter{}, math.MaxInt/5+1, 5)
	assert.True(t, apperr.IsValidationFailed(err))

	last, err := f.catalog.Search(ctx, petDomain.SearchFilter{}, math.MaxInt/5, 5)
	require.NoError(t, err)
	assert.Empty(t, last.Items)
	assert.False(t, last.HasNext)

	_, err = f.catalog.Search(ctx, petDomain.SearchFilter{}, math.MaxInt, 0)
	assert.NoError(t, err)
}

func TestCatalogService_CreatePetValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cases := map[string]PetRequest{
		"unknown species": {Name: "Nemo", Species: "fish"},
		"unknown status":  {Name: "Nemo", Species: "other", Status: "lost"},
		"negative age":    {Name: "Nemo", Species: "other", AgeYears: -2},
		"blank name":      {Name: "  ", Species: "other"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.catalog.CreatePet(ctx, req)
			assert.True(t, apperr.IsValidationFailed(err))
		})
	}
}

func TestCatalogService_CreatePetComputesFee(t *testing.T) {
	f := newFixture(t)

	dog := f.createPet(t, "Rex", "Dog", "")
	cat := f.createPet(t, "Milo", "cat", "")
	other := f.createPet(t, "Nemo", "other", "")

	assert.Equal(t, "available", dog.Status)
	assert.Equal(t, 2500.0, dog.AdoptionFee)
	assert.Equal(t, 2000.0, cat.AdoptionFee)
	assert.Equal(t, 1500.0, other.AdoptionFee)
}

func TestCatalogService_UpdatePet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pet, err := f.catalog.CreatePet(ctx, PetRequest{Name: "Rex", Species: "dog", ImageRef: "img/rex.jpg"})
	require.NoError(t, err)

	updated, err := f.catalog.UpdatePet(ctx, pet.ID, PetRequest{Name: "Rex II", Species: "cat", AgeYears: 4, Status: "adopted"})
	require.NoError(t, err)
	assert.Equal(t, "Rex II", updated.Name)
	assert.Equal(t, "cat", updated.Species)
	assert.Equal(t, "adopted", updated.Status)
	assert.Equal(t, "img/rex.jpg", updated.ImageRef)

	kept, err := f.catalog.UpdatePet(ctx, pet.ID, PetRequest{Name: "Rex II", Species: "cat"})
	require.NoError(t, err)
	assert.Equal(t, "adopted", kept.Status)

	_, err = f.catalog.UpdatePet(ctx, uuid.New(), PetRequest{Name: "Ghost", Species: "dog"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCatalogService_DeleteAndListAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.createPet(t, "A", "dog", "")
	b := f.createPet(t, "B", "cat", "adopted")

	all, err := f.catalog.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID)

	require.NoError(t, f.catalog.DeletePet(ctx, a.ID))
	assert.True(t, apperr.IsNotFound(f.catalog.DeletePet(ctx, a.ID)))

	_, err = f.catalog.GetPet(ctx, a.ID)
	assert.True(t, apperr.IsNotFound(err))
}
