package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/memstore"
	"flight-booking/internal/event"
	"flight-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type testEnv struct {
	store    *memstore.Store
	svc      *Service
	events   *recordingPublisher
	flightID int64
}

// newTestEnv seeds the SFO→JFK flight on 2025-06-10 with the given seats at 200.00.
func newTestEnv(t *testing.T, seats int) *testEnv {
	t.Helper()

	store := memstore.New(zap.NewNop())
	store.AddAirport(entity.Airport{Code: "SFO", Name: "San Francisco International Airport", City: "San Francisco", Country: "USA"})
	store.AddAirport(entity.Airport{Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "USA"})
	flightID := store.AddFlight(entity.Flight{
		FlightNumber:         "UA100",
		DepartureAirportCode: "SFO",
		ArrivalAirportCode:   "JFK",
		DepartureTime:        time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
		ArrivalTime:          time.Date(2025, 6, 10, 16, 30, 0, 0, time.UTC),
		Price:                decimal.RequireFromString("200.00"),
		TotalSeats:           seats,
		AvailableSeats:       seats,
	})

	events := &recordingPublisher{}
	svc := NewService(store.Repository(), nil, events, testConfig(), zap.NewNop())

	return &testEnv{store: store, svc: svc, events: events, flightID: flightID}
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT:      utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24},
		Security: utils.SecurityConfig{BcryptCost: 4},
	}
}

func (e *testEnv) availableSeats(t *testing.T) int {
	t.Helper()
	f, ok := e.store.Flight(e.flightID)
	if !ok {
		t.Fatalf("flight %d missing", e.flightID)
	}
	return f.AvailableSeats
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// MockCatalogCache is a testify mock of CatalogCache.
type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) GetAirports(ctx context.Context) ([]*entity.Airport, bool, error) {
	args := m.Called(ctx)
	airports, _ := args.Get(0).([]*entity.Airport)
	return airports, args.Bool(1), args.Error(2)
}

func (m *MockCatalogCache) SetAirports(ctx context.Context, airports []*entity.Airport) error {
	return m.Called(ctx, airports).Error(0)
}

func (m *MockCatalogCache) GetFlightSearch(ctx context.Context, from, to, date string) ([]*entity.FlightDetail, bool, error) {
	args := m.Called(ctx, from, to, date)
	flights, _ := args.Get(0).([]*entity.FlightDetail)
	return flights, args.Bool(1), args.Error(2)
}

func (m *MockCatalogCache) SetFlightSearch(ctx context.Context, from, to, date string, flights []*entity.FlightDetail) error {
	return m.Called(ctx, from, to, date, flights).Error(0)
}

func (m *MockCatalogCache) InvalidateFlight(ctx context.Context, f *entity.Flight) error {
	return m.Called(ctx, f).Error(0)
}
