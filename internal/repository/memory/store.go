// Package memory is an in-process storage adapter used for local development
// and unit tests. It honors the same contracts as the GORM repositories.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	adoptionDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/adoption"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
)

type petEntry struct {
	pet *petDomain.Pet
	seq int64
}

type requestEntry struct {
	req *adoptionDomain.Request
	seq int64
}

// Store holds every table in maps guarded by one mutex.
type Store struct {
	mu        sync.RWMutex
	seq       int64
	pets      map[uuid.UUID]petEntry
	requests  map[uuid.UUID]requestEntry
	users     map[uuid.UUID]*userDomain.User
	favorites map[favoriteKey]favoriteEntry

	// txMu is held for the whole of a transaction and around every write
	// made outside one, so a rollback only ever undoes its own writes.
	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		pets:      make(map[uuid.UUID]petEntry),
		requests:  make(map[uuid.UUID]requestEntry),
		users:     make(map[uuid.UUID]*userDomain.User),
		favorites: make(map[favoriteKey]favoriteEntry),
	}
}

func (s *Store) Pets() petDomain.PetRepository {
	return &PetRepository{store: s}
}

func (s *Store) Requests() adoptionDomain.RequestRepository {
	return &RequestRepository{store: s}
}

func (s *Store) Users(hasher auth.PasswordHasher) *UserRepository {
	return &UserRepository{store: s, hasher: hasher}
}

func (s *Store) Favorites() *FavoriteRepository {
	return &FavoriteRepository{store: s}
}

// Transact runs fn with repositories that record an undo log. If fn fails,
// only the keys it touched are restored.
func (s *Store) Transact(ctx context.Context, fn func(ctx context.Context, tx adoptionDomain.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &txView{store: s, undo: newUndoLog()}
	if err := fn(ctx, tx); err != nil {
		s.rollback(tx.undo)
		return err
	}
	return nil
}

// txView is the adoption.Tx handed to a transaction body.
type txView struct {
	store *Store
	undo  *undoLog
}

func (t *txView) Pets() petDomain.PetRepository {
	return &PetRepository{store: t.store, undo: t.undo}
}

func (t *txView) Requests() adoptionDomain.RequestRepository {
	return &RequestRepository{store: t.store, undo: t.undo}
}

// undoLog keeps the first prior value of every key written in a transaction.
// A nil entry means the key did not exist.
type undoLog struct {
	pets     map[uuid.UUID]*petEntry
	requests map[uuid.UUID]*requestEntry
}

func newUndoLog() *undoLog {
	return &undoLog{
		pets:     make(map[uuid.UUID]*petEntry),
		requests: make(map[uuid.UUID]*requestEntry),
	}
}

// Callers hold s.mu.
func (u *undoLog) notePet(s *Store, id uuid.UUID) {
	if u == nil {
		return
	}
	if _, seen := u.pets[id]; seen {
		return
	}
	if e, ok := s.pets[id]; ok {
		u.pets[id] = &e
		return
	}
	u.pets[id] = nil
}

// Callers hold s.mu.
func (u *undoLog) noteRequest(s *Store, id uuid.UUID) {
	if u == nil {
		return
	}
	if _, seen := u.requests[id]; seen {
		return
	}
	if e, ok := s.requests[id]; ok {
		u.requests[id] = &e
		return
	}
	u.requests[id] = nil
}

func (s *Store) rollback(u *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, prior := range u.pets {
		if prior == nil {
			delete(s.pets, id)
		} else {
			s.pets[id] = *prior
		}
	}
	for id, prior := range u.requests {
		if prior == nil {
			delete(s.requests, id)
		} else {
			s.requests[id] = *prior
		}
	}
}

// write runs fn under the write lock. Outside a transaction (undo == nil) it
// first waits for any open transaction to finish.
func (s *Store) write(undo *undoLog, fn func() error) error {
	if undo == nil {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}
