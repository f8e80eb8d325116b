package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/platform/metrics"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/repository/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []TransitionEvent
	err    error
}

func (p *recordingPublisher) PublishTransition(_ context.Context, evt TransitionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) recorded() []TransitionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]TransitionEvent(nil), p.events...)
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type fixture struct {
	store     *memory.Store
	metrics   *metrics.Metrics
	publisher *recordingPublisher
	adoptions *AdoptionService
	catalog   *CatalogService
	users     *UserService
	favorites *FavoriteService
	clock     *fakeClock
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	m := metrics.NewNop()
	pub := &recordingPublisher{}
	logger := zap.NewNop()
	hasher := auth.NewBcryptHasher(4)
	clock := &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}

	adoptions := NewAdoptionService(store, store.Requests(), pub, m, logger)
	adoptions.now = clock.Now
	favorites := NewFavoriteService(store.Favorites(), store.Pets(), logger)
	favorites.now = clock.Now

	return &fixture{
		store:     store,
		metrics:   m,
		publisher: pub,
		adoptions: adoptions,
		catalog:   NewCatalogService(store.Pets(), m, logger),
		users:     NewUserService(store.Users(hasher), hasher, 0, logger),
		favorites: favorites,
		clock:     clock,
	}
}

func (f *fixture) createPet(t *testing.T, name, species, status string) *PetDTO {
	t.Helper()
	p, err := f.catalog.CreatePet(context.Background(), PetRequest{
		Name:     name,
		Species:  species,
		Breed:    "Mixed",
		AgeYears: 2,
		Status:   status,
	})
	require.NoError(t, err)
	return p
}

var errPublish = errors.New("broker unavailable")
