package application

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

func TestAdoptionService_SubmitAndApprove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	adopter := uuid.New()
	rex := f.createPet(t, "Rex", "dog", "")

	requestID, err := f.adoptions.SubmitRequest(ctx, rex.ID, adopter, "please")
	require.NoError(t, err)

	req, err := f.adoptions.GetRequest(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, "pending", req.Status)
	assert.Equal(t, "please", req.Message)
	assert.Nil(t, req.ProcessedAt)

	pet, err := f.catalog.GetPet(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", pet.Status)

	require.NoError(t, f.adoptions.ApproveRequest(ctx, requestID))

	req, err = f.adoptions.GetRequest(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, "approved", req.Status)
	require.NotNil(t, req.ProcessedAt)
	assert.True(t, req.ProcessedAt.After(req.RequestedAt))

	pet, err = f.catalog.GetPet(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, "adopted", pet.Status)
}

func TestAdoptionService_SubmitAgainstUnavailablePet(t *testing.T) {
	for _, status := range []string{"pending", "adopted"} {
		t.Run(status, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			adopter := uuid.New()
			pet := f.createPet(t, "Luna", "cat", status)

			_, err := f.adoptions.SubmitRequest(ctx, pet.ID, adopter, "")
			require.Error(t, err)
			assert.True(t, apperr.IsInvalidState(err))
			assert.Equal(t, "pet is not available for adoption", err.Error())

			mine, err := f.adoptions.ListByAdopter(ctx, adopter)
			require.NoError(t, err)
			assert.Empty(t, mine)
			assert.Empty(t, f.publisher.recorded())

			got, err := f.catalog.GetPet(ctx, pet.ID)
			require.NoError(t, err)
			assert.Equal(t, status, got.Status)
		})
	}
}

func TestAdoptionService_SubmitUnknownPet(t *testing.T) {
	f := newFixture(t)

	_, err := f.adoptions.SubmitRequest(context.Background(), uuid.New(), uuid.New(), "")
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.WorkflowFailuresTotal.WithLabelValues("submit", "not_found")))
}

func TestAdoptionService_ConcurrentSubmissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	milo := f.createPet(t, "Milo", "cat", "")

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.adoptions.SubmitRequest(ctx, milo.ID, uuid.New(), "")
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperr.IsInvalidState(err):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, rejected)

	pending, err := f.adoptions.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestAdoptionService_Reject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pet := f.createPet(t, "Bella", "dog", "")

	requestID, err := f.adoptions.SubmitRequest(ctx, pet.ID, uuid.New(), "")
	require.NoError(t, err)
	require.NoError(t, f.adoptions.RejectRequest(ctx, requestID))

	req, err := f.adoptions.GetRequest(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", req.Status)
	assert.NotNil(t, req.ProcessedAt)

	got, err := f.catalog.GetPet(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "available", got.Status)

	// The pet is eligible again.
	_, err = f.adoptions.SubmitRequest(ctx, pet.ID, uuid.New(), "")
	assert.NoError(t, err)
}

func TestAdoptionService_ApproveOverridesAdminEdit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pet := f.createPet(t, "Rex", "dog", "")

	requestID, err := f.adoptions.SubmitRequest(ctx, pet.ID, uuid.New(), "")
	require.NoError(t, err)

	_, err = f.catalog.UpdatePet(ctx, pet.ID, PetRequest{Name: "Rex", Species: "dog", Status: "available"})
	require.NoError(t, err)

	require.NoError(t, f.adoptions.ApproveRequest(ctx, requestID))

	got, err := f.catalog.GetPet(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "adopted", got.Status)
}

func TestAdoptionService_ResolvedRequestIsGuarded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pet := f.createPet(t, "Rex", "dog", "")

	requestID, err := f.adoptions.SubmitRequest(ctx, pet.ID, uuid.New(), "")
	require.NoError(t, err)
	require.NoError(t, f.adoptions.ApproveRequest(ctx, requestID))

	before, err := f.adoptions.GetRequest(ctx, requestID)
	require.NoError(t, err)
	f.publisher.reset()

	err = f.adoptions.RejectRequest(ctx, requestID)
	assert.True(t, apperr.IsInvalidState(err))
	err = f.adoptions.ApproveRequest(ctx, requestID)
	assert.True(t, apperr.IsInvalidState(err))

	after, err := f.adoptions.GetRequest(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, "approved", after.Status)
	assert.Equal(t, before.ProcessedAt, after.ProcessedAt)

	got, err := f.catalog.GetPet(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "adopted", got.Status)
	assert.Empty(t, f.publisher.recorded())
}

func TestAdoptionService_UnknownRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.True(t, apperr.IsNotFound(f.adoptions.ApproveRequest(ctx, uuid.New())))
	assert.True(t, apperr.IsNotFound(f.adoptions.RejectRequest(ctx, uuid.New())))
}

func TestAdoptionService_ApproveRollsBackWhenPetDeleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pet := f.createPet(t, "Rex", "dog", "")

	requestID, err := f.adoptions.SubmitRequest(ctx, pet.ID, uuid.New(), "")
	require.NoError(t, err)
	require.NoError(t, f.catalog.DeletePet(ctx, pet.ID))

	err = f.adoptions.ApproveRequest(ctx, requestID)
	assert.True(t, apperr.IsNotFound(err))

	req, err := f.adoptions.GetRequest(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, "pending", req.Status)
	assert.Nil(t, req.ProcessedAt)
}

func TestAdoptionService_ListPending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	empty, err := f.adoptions.ListPending(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first := f.createPet(t, "A", "dog", "")
	second := f.createPet(t, "B", "cat", "")
	third := f.createPet(t, "C", "other", "")

	r1, err := f.adoptions.SubmitRequest(ctx, first.ID, uuid.New(), "")
	require.NoError(t, err)
	r2, err := f.adoptions.SubmitRequest(ctx, second.ID, uuid.New(), "")
	require.NoError(t, err)
	r3, err := f.adoptions.SubmitRequest(ctx, third.ID, uuid.New(), "")
	require.NoError(t, err)
	require.NoError(t, f.adoptions.RejectRequest(ctx, r2))

	pending, err := f.adoptions.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, r3, pending[0].ID)
	assert.Equal(t, r1, pending[1].ID)
	for _, r := range pending {
		assert.Equal(t, "pending", r.Status)
	}
}

func TestAdoptionService_EmitsTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pet := f.createPet(t, "Rex", "dog", "")

	requestID, err := f.adoptions.SubmitRequest(ctx, pet.ID, uuid.New(), "")
	require.NoError(t, err)
	require.NoError(t, f.adoptions.ApproveRequest(ctx, requestID))

	events := f.publisher.recorded()
	require.Len(t, events, 4)

	assert.Equal(t, EntityAdoptionRequest, events[0].Entity)
	assert.Equal(t, requestID, events[0].ID)
	assert.Equal(t, "", events[0].From)
	assert.Equal(t, "pending", events[0].To)

	assert.Equal(t, EntityPet, events[1].Entity)
	assert.Equal(t, pet.ID, events[1].ID)
	assert.Equal(t, "available", events[1].From)
	assert.Equal(t, "pending", events[1].To)

	assert.Equal(t, "approved", events[2].To)
	assert.Equal(t, "pending", events[3].From)
	assert.Equal(t, "adopted", events[3].To)
	for _, evt := range events {
		assert.False(t, evt.At.IsZero())
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TransitionsTotal.WithLabelValues(EntityPet, "pending", "adopted")))
}

func TestAdoptionService_PublishFailureDoesNotFailWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.publisher.err = errPublish
	pet := f.createPet(t, "Rex", "dog", "")

	_, err := f.adoptions.SubmitRequest(ctx, pet.ID, uuid.New(), "")
	require.NoError(t, err)

	got, err := f.catalog.GetPet(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PublishFailuresTotal.WithLabelValues(EntityPet)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PublishFailuresTotal.WithLabelValues(EntityAdoptionRequest)))
}
