package memstore

import (
	"context"
	"sort"
	"strconv"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

// ==================== USERS ====================

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	user.CreatedAt = r.s.now()
	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (r *userRepo) find(match func(*entity.User) bool) *entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			found := *u
			return &found
		}
	}
	return nil
}

// ==================== AIRPORTS ====================

type airportRepo struct{ s *Store }

func (r *airportRepo) FindAll(ctx context.Context) ([]*entity.Airport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	airports := make([]*entity.Airport, 0, len(r.s.airports))
	for _, a := range r.s.airports {
		found := *a
		airports = append(airports, &found)
	}
	sort.Slice(airports, func(i, j int) bool {
		if airports[i].City != airports[j].City {
			return airports[i].City < airports[j].City
		}
		return airports[i].Name < airports[j].Name
	})
	return airports, nil
}

func (r *airportRepo) FindByCode(ctx context.Context, code string) (*entity.Airport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.airports[code]
	if !ok {
		return nil, nil
	}
	found := *a
	return &found, nil
}

// ==================== FLIGHTS ====================

type flightRepo struct {
	s  *Store
	tx *txn
}

func (r *flightRepo) Search(ctx context.Context, filter repository.FlightSearch) ([]*entity.FlightDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	flights := []*entity.FlightDetail{}
	for _, f := range r.s.flights {
		if f.DepartureAirportCode != filter.Origin || f.ArrivalAirportCode != filter.Destination {
			continue
		}
		if f.DepartureTime.Before(filter.DepartFrom) || !f.DepartureTime.Before(filter.DepartTo) {
			continue
		}
		if f.AvailableSeats <= 0 {
			continue
		}
		flights = append(flights, r.s.flightDetail(f))
	}
	sort.Slice(flights, func(i, j int) bool {
		return flights[i].DepartureTime.Before(flights[j].DepartureTime)
	})
	return flights, nil
}

func (r *flightRepo) FindDetailByID(ctx context.Context, id int64) (*entity.FlightDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.flights[id]
	if !ok {
		return nil, nil
	}
	return r.s.flightDetail(f), nil
}

func (r *flightRepo) LockByID(ctx context.Context, id int64) (*entity.Flight, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, flightKey(id)); err != nil {
			return nil, err
		}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.flights[id]
	if !ok {
		return nil, nil
	}
	found := *f
	return &found, nil
}

func (r *flightRepo) ReserveSeats(ctx context.Context, id int64, n int) (bool, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, flightKey(id)); err != nil {
			return false, err
		}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.flights[id]
	if !ok || f.AvailableSeats < n {
		return false, nil
	}
	prev := f.AvailableSeats
	f.AvailableSeats -= n
	r.tx.record(func() { f.AvailableSeats = prev })
	return true, nil
}

func (r *flightRepo) ReleaseSeats(ctx context.Context, id int64, n int) (bool, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, flightKey(id)); err != nil {
			return false, err
		}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.flights[id]
	if !ok {
		return false, nil
	}
	prev := f.AvailableSeats
	f.AvailableSeats = min(f.TotalSeats, f.AvailableSeats+n)
	r.tx.record(func() { f.AvailableSeats = prev })
	return true, nil
}

// ==================== BOOKINGS ====================

type bookingRepo struct {
	s  *Store
	tx *txn
}

func (r *bookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextBookingID++
	booking.ID = r.s.nextBookingID
	booking.BookingTime = r.s.now()
	stored := *booking
	r.s.bookings[booking.ID] = &stored

	id := booking.ID
	r.tx.record(func() { delete(r.s.bookings, id) })
	return nil
}

func (r *bookingRepo) LockByID(ctx context.Context, id int64) (*entity.Booking, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, bookingKey(id)); err != nil {
			return nil, err
		}
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	found := *b
	return &found, nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return errNoRow("booking", id)
	}
	prev := b.Status
	b.Status = status
	r.tx.record(func() { b.Status = prev })
	return nil
}

func (r *bookingRepo) FindDetailByID(ctx context.Context, id int64) (*entity.BookingDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	if d := r.s.bookingDetail(b); d != nil {
		return d, nil
	}
	return nil, nil
}

func (r *bookingRepo) FindDetailsByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.BookingDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := []*entity.BookingDetail{}
	for _, b := range r.s.bookings {
		if b.UserID != userID {
			continue
		}
		if d := r.s.bookingDetail(b); d != nil {
			all = append(all, d)
		}
	}
	sortBookingsNewestFirst(all)

	if offset >= len(all) {
		return []*entity.BookingDetail{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (r *bookingRepo) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			count++
		}
	}
	return count, nil
}

// ==================== PAYMENTS ====================

type paymentRepo struct {
	s  *Store
	tx *txn
}

func (r *paymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.payments {
		if p.BookingID == payment.BookingID || p.TransactionID == payment.TransactionID {
			return repository.ErrDuplicate
		}
	}

	r.s.nextPaymentID++
	payment.ID = r.s.nextPaymentID
	payment.PaymentTime = r.s.now()
	stored := *payment
	r.s.payments[payment.ID] = &stored

	id := payment.ID
	r.tx.record(func() { delete(r.s.payments, id) })
	return nil
}

func (r *paymentRepo) FindByBookingID(ctx context.Context, bookingID int64) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.BookingID == bookingID {
			found := *p
			return &found, nil
		}
	}
	return nil, nil
}
