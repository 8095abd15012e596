package adaptor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/pkg/apperror"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, userID int64, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, userID, bookingID int64) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetUserBookings(ctx context.Context, userID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.BookingResponse]), args.Error(1)
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, userID, bookingID int64) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func bookingRouter(h *BookingHandler, userID int64) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != 0 {
				r = r.WithContext(utils.SetUserContext(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Post("/bookings", h.CreateBooking)
	r.Get("/bookings", h.GetUserBookings)
	r.Get("/bookings/{id}", h.GetBookingByID)
	r.Delete("/bookings/{id}", h.CancelBooking)
	return r
}

func TestCreateBooking_StatusMapping(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "created",
			body:       `{"flightId":1,"numSeats":2}`,
			wantStatus: http.StatusCreated,
			wantMsg:    "Booking created successfully (pending payment).",
		},
		{
			name:       "flight not found is a bad request",
			body:       `{"flightId":9,"numSeats":1}`,
			serviceErr: apperror.NotFound("Flight not found."),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Flight not found.",
		},
		{
			name:       "insufficient inventory",
			body:       `{"flightId":1,"numSeats":3}`,
			serviceErr: apperror.InsufficientInventory("Not enough available seats on this flight."),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Not enough available seats on this flight.",
		},
		{
			name:       "pool exhausted",
			body:       `{"flightId":1,"numSeats":1}`,
			serviceErr: apperror.Unavailable("Service is busy, please retry", errors.New("pool")),
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "Service is busy, please retry",
		},
		{
			name:       "internal error hides detail",
			body:       `{"flightId":1,"numSeats":1}`,
			serviceErr: errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Server error during booking creation.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockBookingService)
			if tc.serviceErr != nil {
				svc.On("CreateBooking", mock.Anything, int64(7), mock.Anything).Return(nil, tc.serviceErr)
			} else {
				svc.On("CreateBooking", mock.Anything, int64(7), mock.Anything).Return(&response.BookingResponse{ID: 1}, nil)
			}

			req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			bookingRouter(NewBookingHandler(svc, zap.NewNop()), 7).ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantMsg)
			svc.AssertExpectations(t)
		})
	}
}

func TestCreateBooking_MalformedBody(t *testing.T) {
	svc := new(MockBookingService)

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"flightId":`))
	w := httptest.NewRecorder()
	bookingRouter(NewBookingHandler(svc, zap.NewNop()), 7).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
	svc.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_ForwardsBodyForServiceValidation(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("CreateBooking", mock.Anything, int64(7), &request.CreateBookingRequest{FlightID: 1, NumSeats: 0}).
		Return(nil, apperror.Validation("Invalid input: flightId and a positive number of seats are required."))

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"flightId":1,"numSeats":0}`))
	w := httptest.NewRecorder()
	bookingRouter(NewBookingHandler(svc, zap.NewNop()), 7).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "positive number of seats")
	svc.AssertExpectations(t)
}

func TestBookingByID_ForbiddenOnReadButBadRequestOnCancel(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("GetBookingByID", mock.Anything, int64(7), int64(3)).
		Return(nil, apperror.Forbidden("Not authorized to view this booking."))
	svc.On("CancelBooking", mock.Anything, int64(7), int64(3)).
		Return(nil, apperror.Forbidden("Not authorized to cancel this booking."))
	router := bookingRouter(NewBookingHandler(svc, zap.NewNop()), 7)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings/3", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/bookings/3", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized to cancel this booking.")

	svc.AssertExpectations(t)
}

func TestBookingByID_InvalidID(t *testing.T) {
	svc := new(MockBookingService)
	router := bookingRouter(NewBookingHandler(svc, zap.NewNop()), 7)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid booking ID provided.")
}

func TestGetUserBookings_PassesPagination(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("GetUserBookings", mock.Anything, int64(7), &request.PaginatedRequest{Page: 2, PerPage: 5}).
		Return(&response.PaginatedResponse[response.BookingResponse]{}, nil)
	router := bookingRouter(NewBookingHandler(svc, zap.NewNop()), 7)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings?page=2&per_page=5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestBookingHandlers_RequireUser(t *testing.T) {
	svc := new(MockBookingService)
	router := bookingRouter(NewBookingHandler(svc, zap.NewNop()), 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	NewHealthHandler(stubPinger{}, zap.NewNop()).Check(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	NewHealthHandler(stubPinger{err: errors.New("down")}, zap.NewNop()).Check(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
