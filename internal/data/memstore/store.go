// Package memstore is an in-memory implementation of the repository
// interfaces. Transactions take exclusive row locks that are held until
// commit or rollback, and every write inside a transaction is undone on
// rollback, so the booking and payment flows behave as they do on Postgres.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Store struct {
	mu sync.Mutex

	users    map[int64]*entity.User
	airports map[string]*entity.Airport
	flights  map[int64]*entity.Flight
	bookings map[int64]*entity.Booking
	payments map[int64]*entity.Payment

	rowLocks map[string]*rowLock

	nextUserID    int64
	nextFlightID  int64
	nextBookingID int64
	nextPaymentID int64

	now func() time.Time
	log *zap.Logger
}

func New(log *zap.Logger) *Store {
	return &Store{
		users:    make(map[int64]*entity.User),
		airports: make(map[string]*entity.Airport),
		flights:  make(map[int64]*entity.Flight),
		bookings: make(map[int64]*entity.Booking),
		payments: make(map[int64]*entity.Payment),
		rowLocks: make(map[string]*rowLock),
		now:      time.Now,
		log:      log.With(zap.String("repository", "memstore")),
	}
}

// Repository exposes the store through the repository interfaces.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:    &userRepo{s: s},
		Airport: &airportRepo{s: s},
		Flight:  &flightRepo{s: s},
		Booking: &bookingRepo{s: s},
		Payment: &paymentRepo{s: s},
		Tx:      s,
		Health:  s,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// ==================== TRANSACTIONS ====================

type rowLock struct {
	ch chan struct{}
}

type txn struct {
	s    *Store
	held map[string]*rowLock
	undo []func()
}

// WithinTx runs fn with repositories bound to a new transaction. Row locks
// taken inside fn are released when fn returns; on error all writes made
// through the transaction are reverted first.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *repository.TxRepository) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	t := &txn{s: s, held: make(map[string]*rowLock)}
	defer func() {
		if p := recover(); p != nil {
			t.rollback()
			panic(p)
		}
		if err != nil {
			t.rollback()
			return
		}
		t.release()
	}()

	return fn(&repository.TxRepository{
		Flight:  &flightRepo{s: s, tx: t},
		Booking: &bookingRepo{s: s, tx: t},
		Payment: &paymentRepo{s: s, tx: t},
	})
}

// lock blocks until the row is free or ctx is done. Locks are reentrant
// within one transaction.
func (t *txn) lock(ctx context.Context, key string) error {
	if _, ok := t.held[key]; ok {
		return nil
	}

	t.s.mu.Lock()
	l, ok := t.s.rowLocks[key]
	if !ok {
		l = &rowLock{ch: make(chan struct{}, 1)}
		t.s.rowLocks[key] = l
	}
	t.s.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		t.held[key] = l
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *txn) rollback() {
	t.s.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.s.mu.Unlock()
	t.undo = nil
	t.release()
}

func (t *txn) release() {
	for key, l := range t.held {
		<-l.ch
		delete(t.held, key)
	}
}

// record registers an undo step. Callers hold s.mu.
func (t *txn) record(fn func()) {
	if t != nil {
		t.undo = append(t.undo, fn)
	}
}

func flightKey(id int64) string  { return "flight:" + itoa(id) }
func bookingKey(id int64) string { return "booking:" + itoa(id) }

// ==================== SEEDING ====================

func (s *Store) AddAirport(a entity.Airport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.Code = strings.ToUpper(a.Code)
	s.airports[a.Code] = &a
}

// AddFlight stores f and returns its new id.
func (s *Store) AddFlight(f entity.Flight) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextFlightID++
	f.ID = s.nextFlightID
	s.flights[f.ID] = &f
	return f.ID
}

// RemoveFlight deletes a flight outside any transaction.
func (s *Store) RemoveFlight(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flights, id)
}

func (s *Store) SetFlightPrice(id int64, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.flights[id]; ok {
		f.Price = price
	}
}

func (s *Store) Flight(id int64) (entity.Flight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[id]
	if !ok {
		return entity.Flight{}, false
	}
	return *f, true
}

func (s *Store) Booking(id int64) (entity.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return entity.Booking{}, false
	}
	return *b, true
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *Store) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

// SeedDemo loads a small catalog so the memory driver is usable out of the box.
func (s *Store) SeedDemo() {
	for _, a := range []entity.Airport{
		{Code: "SFO", Name: "San Francisco International Airport", City: "San Francisco", Country: "USA"},
		{Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "USA"},
		{Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles", Country: "USA"},
		{Code: "ORD", Name: "O'Hare International Airport", City: "Chicago", Country: "USA"},
	} {
		s.AddAirport(a)
	}

	day := s.now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	routes := []struct {
		number, from, to string
		offset, length   time.Duration
		price            string
		seats            int
	}{
		{"UA100", "SFO", "JFK", 8 * time.Hour, 5*time.Hour + 30*time.Minute, "200.00", 150},
		{"UA102", "SFO", "JFK", 17 * time.Hour, 5*time.Hour + 30*time.Minute, "240.00", 150},
		{"AA210", "JFK", "LAX", 9 * time.Hour, 6 * time.Hour, "310.50", 180},
		{"DL330", "LAX", "ORD", 7 * time.Hour, 4 * time.Hour, "155.25", 120},
		{"AA401", "ORD", "SFO", 12 * time.Hour, 4*time.Hour + 30*time.Minute, "180.00", 140},
	}
	for i, r := range routes {
		departure := day.Add(time.Duration(i%3) * 24 * time.Hour).Add(r.offset)
		s.AddFlight(entity.Flight{
			FlightNumber:         r.number,
			DepartureAirportCode: r.from,
			ArrivalAirportCode:   r.to,
			DepartureTime:        departure,
			ArrivalTime:          departure.Add(r.length),
			Price:                decimal.RequireFromString(r.price),
			TotalSeats:           r.seats,
			AvailableSeats:       r.seats,
		})
	}
}

// flightDetail joins f with its airports. Callers hold s.mu.
func (s *Store) flightDetail(f *entity.Flight) *entity.FlightDetail {
	d := &entity.FlightDetail{Flight: *f}
	if a, ok := s.airports[f.DepartureAirportCode]; ok {
		d.DepartureAirport = *a
	}
	if a, ok := s.airports[f.ArrivalAirportCode]; ok {
		d.ArrivalAirport = *a
	}
	return d
}

// bookingDetail joins b with its flight, or returns nil when the flight is
// gone. Callers hold s.mu.
func (s *Store) bookingDetail(b *entity.Booking) *entity.BookingDetail {
	f, ok := s.flights[b.FlightID]
	if !ok {
		return nil
	}
	return &entity.BookingDetail{Booking: *b, Flight: *s.flightDetail(f)}
}

func sortBookingsNewestFirst(list []*entity.BookingDetail) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].BookingTime.Equal(list[j].BookingTime) {
			return list[i].BookingTime.After(list[j].BookingTime)
		}
		return list[i].ID > list[j].ID
	})
}
