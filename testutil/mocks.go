package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/reggysosa/tournament-gateway/models"
	"github.com/reggysosa/tournament-gateway/repositories"
)

// MockTeamRepository mocks repositories.TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockTeamRepository) Create(ctx context.Context, team *models.Team) (*models.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) GetInvites(ctx context.Context, id models.ID) ([]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTeamRepository) ReplaceInvites(ctx context.Context, id models.ID, current, next []string) (*models.Team, error) {
	args := m.Called(ctx, id, current, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

// MockTournamentRepository mocks repositories.TournamentRepository
type MockTournamentRepository struct {
	mock.Mock
}

func (m *MockTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) Create(ctx context.Context, t *models.Tournament) (*models.Tournament, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) GetByID(ctx context.Context, id models.ID) (*models.Tournament, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) Update(ctx context.Context, id models.ID, patch models.TournamentPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockTournamentRepository) DeleteCascade(ctx context.Context, id models.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRegistrationRepository mocks repositories.RegistrationRepository
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg models.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Delete(ctx context.Context, reg models.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

// MockPinger mocks repositories.Pinger
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStore bundles fresh mocks into a repositories.Store.
type MockStore struct {
	Teams         *MockTeamRepository
	Tournaments   *MockTournamentRepository
	Registrations *MockRegistrationRepository
	Health        *MockPinger
}

func NewMockStore() *MockStore {
	return &MockStore{
		Teams:         new(MockTeamRepository),
		Tournaments:   new(MockTournamentRepository),
		Registrations: new(MockRegistrationRepository),
		Health:        new(MockPinger),
	}
}

func (s *MockStore) Store() *repositories.Store {
	return &repositories.Store{
		Teams:         s.Teams,
		Tournaments:   s.Tournaments,
		Registrations: s.Registrations,
		Health:        s.Health,
	}
}

// AssertExpectations checks every mock of the store.
func (s *MockStore) AssertExpectations(t mock.TestingT) {
	s.Teams.AssertExpectations(t)
	s.Tournaments.AssertExpectations(t)
	s.Registrations.AssertExpectations(t)
	s.Health.AssertExpectations(t)
}

// AssertNoStoreCalls fails if any repository method was invoked.
func (s *MockStore) AssertNoStoreCalls(t mock.TestingT) {
	for _, m := range []*mock.Mock{&s.Teams.Mock, &s.Tournaments.Mock, &s.Registrations.Mock, &s.Health.Mock} {
		if len(m.Calls) != 0 {
			t.Errorf("expected no store calls, got %d", len(m.Calls))
		}
	}
}

// FakeFactory is a repositories.StoreFactory that counts Open calls.
type FakeFactory struct {
	mu    sync.Mutex
	store *repositories.Store
	err   error
	opens int
}

func NewFakeFactory(store *repositories.Store) *FakeFactory {
	return &FakeFactory{store: store}
}

// NewFailingFactory returns a factory whose Open always fails with err.
func NewFailingFactory(err error) *FakeFactory {
	return &FakeFactory{err: err}
}

func (f *FakeFactory) Open(_ context.Context) (*repositories.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	if f.err != nil {
		return nil, f.err
	}
	return f.store, nil
}

func (f *FakeFactory) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

// Event is one call recorded by RecordingPublisher.
type Event struct {
	Room    string
	Type    string
	Payload any
}

// RecordingPublisher records published events.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *RecordingPublisher) Publish(room, eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Event{Room: room, Type: eventType, Payload: payload})
}

func (p *RecordingPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}
