package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/apperr"
)

// PetRepository implements pet.PetRepository over a Store.
type PetRepository struct {
	store *Store
	undo  *undoLog
}

func (r *PetRepository) FindByID(_ context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.pets[id]
	if !ok {
		return nil, apperr.NewNotFoundError("Pet", id.String())
	}
	return e.pet.Clone(), nil
}

func (r *PetRepository) FindAll(_ context.Context) ([]*petDomain.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.sorted(func(*petDomain.Pet) bool { return true }), nil
}

func (r *PetRepository) FindFiltered(_ context.Context, filter petDomain.SearchFilter, offset, limit int) ([]*petDomain.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := r.sorted(filter.Matches)
	if offset < 0 || offset >= len(matched) || limit <= 0 {
		return []*petDomain.Pet{}, nil
	}
	end := offset + limit
	if end > len(matched) || end < offset {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// sorted returns clones of matching pets, newest first. Pets created at the
// same instant are ordered by insertion, latest first.
func (r *PetRepository) sorted(keep func(*petDomain.Pet) bool) []*petDomain.Pet {
	entries := make([]petEntry, 0, len(r.store.pets))
	for _, e := range r.store.pets {
		if keep(e.pet) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].pet.CreatedAt(), entries[j].pet.CreatedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})

	out := make([]*petDomain.Pet, len(entries))
	for i, e := range entries {
		out[i] = e.pet.Clone()
	}
	return out
}

func (r *PetRepository) Save(_ context.Context, pet *petDomain.Pet) error {
	return r.store.write(r.undo, func() error {
		if _, exists := r.store.pets[pet.ID()]; exists {
			return apperr.NewConflictError("pet already exists: " + pet.ID().String())
		}
		r.undo.notePet(r.store, pet.ID())
		r.store.pets[pet.ID()] = petEntry{pet: pet.Clone(), seq: r.store.nextSeq()}
		return nil
	})
}

func (r *PetRepository) Update(_ context.Context, pet *petDomain.Pet) error {
	return r.store.write(r.undo, func() error {
		e, ok := r.store.pets[pet.ID()]
		if !ok {
			return apperr.NewNotFoundError("Pet", pet.ID().String())
		}
		r.undo.notePet(r.store, pet.ID())
		r.store.pets[pet.ID()] = petEntry{pet: pet.Clone(), seq: e.seq}
		return nil
	})
}

func (r *PetRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.write(r.undo, func() error {
		if _, ok := r.store.pets[id]; !ok {
			return apperr.NewNotFoundError("Pet", id.String())
		}
		r.undo.notePet(r.store, id)
		delete(r.store.pets, id)
		return nil
	})
}

func (r *PetRepository) UpdateStatus(_ context.Context, id uuid.UUID, status petDomain.Status) error {
	return r.store.write(r.undo, func() error {
		e, ok := r.store.pets[id]
		if !ok {
			return apperr.NewNotFoundError("Pet", id.String())
		}
		r.undo.notePet(r.store, id)
		r.store.pets[id] = petEntry{pet: withStatus(e.pet, status), seq: e.seq}
		return nil
	})
}

func (r *PetRepository) CompareAndSetStatus(_ context.Context, id uuid.UUID, from, to petDomain.Status) error {
	return r.store.write(r.undo, func() error {
		e, ok := r.store.pets[id]
		if !ok {
			return apperr.NewNotFoundError("Pet", id.String())
		}
		if e.pet.Status() != from {
			return apperr.NewInvalidStateError(string(e.pet.Status()), string(to))
		}
		r.undo.notePet(r.store, id)
		r.store.pets[id] = petEntry{pet: withStatus(e.pet, to), seq: e.seq}
		return nil
	})
}

func withStatus(p *petDomain.Pet, status petDomain.Status) *petDomain.Pet {
	return petDomain.Reconstruct(
		p.ID(), p.Name(), p.Species(), p.Breed(), p.AgeYears(),
		p.Description(), p.ImageRef(), status, p.CreatedAt(), time.Now().UTC(),
	)
}
