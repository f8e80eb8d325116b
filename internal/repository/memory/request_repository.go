package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	adoptionDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/adoption"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// RequestRepository implements adoption.RequestRepository over a Store.
type RequestRepository struct {
	store *Store
	undo  *undoLog
}

func (r *RequestRepository) Save(_ context.Context, req *adoptionDomain.Request) error {
	return r.store.write(r.undo, func() error {
		if _, exists := r.store.requests[req.ID()]; exists {
			return apperr.NewConflictError("adoption request already exists: " + req.ID().String())
		}
		r.undo.noteRequest(r.store, req.ID())
		r.store.requests[req.ID()] = requestEntry{req: req.Clone(), seq: r.store.nextSeq()}
		return nil
	})
}

func (r *RequestRepository) FindByID(_ context.Context, id uuid.UUID) (*adoptionDomain.Request, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.requests[id]
	if !ok {
		return nil, apperr.NewNotFoundError("AdoptionRequest", id.String())
	}
	return e.req.Clone(), nil
}

func (r *RequestRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to adoptionDomain.Status, processedAt time.Time) error {
	return r.store.write(r.undo, func() error {
		e, ok := r.store.requests[id]
		if !ok {
			return apperr.NewNotFoundError("AdoptionRequest", id.String())
		}
		if e.req.Status() != from {
			return apperr.NewInvalidStateError(string(e.req.Status()), string(to))
		}

		at := processedAt.UTC()
		updated := adoptionDomain.ReconstructRequest(
			e.req.ID(), e.req.PetID(), e.req.AdopterID(), e.req.Message(),
			to, e.req.RequestedAt(), &at,
		)
		r.undo.noteRequest(r.store, id)
		r.store.requests[id] = requestEntry{req: updated, seq: e.seq}
		return nil
	})
}

func (r *RequestRepository) FindByStatus(_ context.Context, status adoptionDomain.Status) ([]*adoptionDomain.Request, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.sorted(func(req *adoptionDomain.Request) bool { return req.Status() == status }), nil
}

func (r *RequestRepository) FindByAdopter(_ context.Context, adopterID uuid.UUID) ([]*adoptionDomain.Request, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.sorted(func(req *adoptionDomain.Request) bool { return req.AdopterID() == adopterID }), nil
}

// sorted returns clones of matching requests, most recent first.
func (r *RequestRepository) sorted(keep func(*adoptionDomain.Request) bool) []*adoptionDomain.Request {
	entries := make([]requestEntry, 0)
	for _, e := range r.store.requests {
		if keep(e.req) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].req.RequestedAt(), entries[j].req.RequestedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})

	out := make([]*adoptionDomain.Request, len(entries))
	for i, e := range entries {
		out[i] = e.req.Clone()
	}
	return out
}
