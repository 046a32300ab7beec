package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/metinatakli/theater-reservation-system/api"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
	"github.com/metinatakli/theater-reservation-system/internal/mailer"
	"github.com/metinatakli/theater-reservation-system/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReservationHandlerSuite struct {
	suite.Suite
	app             *application
	reservationRepo *mocks.MockReservationRepo
	mailer          *mailer.MockMailer
}

func (s *ReservationHandlerSuite) SetupTest() {
	s.app = newTestApplication()
	s.reservationRepo = new(mocks.MockReservationRepo)
	s.mailer = mailer.NewMockMailer()
	s.app.reservationRepo = s.reservationRepo
	s.app.mailer = s.mailer
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerSuite))
}

func (s *ReservationHandlerSuite) TestCreateReservation() {
	detail := &domain.ReservationDetail{
		ReservationID: 11,
		UserID:        7,
		UserName:      "Ada Lovelace",
		ShowTitle:     "Hamlet",
		TheaterName:   "Grand Hall",
		SeatNumber:    14,
		ShowDate:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		ShowTime:      "19:30",
	}

	s.reservationRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			reservation := args.Get(1).(*domain.Reservation)
			reservation.ID = 11
			reservation.Status = domain.ReservationStatusReserved
			reservation.ReservedAt = time.Now()
		}).
		Return(nil)
	s.reservationRepo.On("GetDetailById", mock.Anything, 11).Return(detail, nil)

	cookie := setupTestSession(s.T(), s.app, 7, false)
	body := `{"showId": 5, "seatId": 14}`
	req := httptestRequest(http.MethodPost, "/reservations", body, cookie)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusCreated, rr.Code)

	var resp api.ReservationResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal(11, resp.Id)
	s.Equal(string(domain.ReservationStatusReserved), resp.Status)

	s.Require().Eventually(func() bool {
		return len(s.mailer.GetSentEmails()) == 1
	}, time.Second, 10*time.Millisecond)

	email := s.mailer.GetSentEmails()[0]
	s.Equal(s.app.config.adminEmail, email.Recipient)
	s.Equal("reservation_admin_alert.tmpl", email.TemplateFile)

	s.reservationRepo.AssertExpectations(s.T())
}

func (s *ReservationHandlerSuite) TestCreateReservation_SeatTaken() {
	s.reservationRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrSeatAlreadyReserved)

	cookie := setupTestSession(s.T(), s.app, 7, false)
	body := `{"showId": 5, "seatId": 14}`
	req := httptestRequest(http.MethodPost, "/reservations", body, cookie)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusConflict, "this seat is already reserved for the show")
}

func (s *ReservationHandlerSuite) TestCreateReservation_UnknownShow() {
	s.reservationRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrRecordNotFound)

	cookie := setupTestSession(s.T(), s.app, 7, false)
	body := `{"showId": 999, "seatId": 14}`
	req := httptestRequest(http.MethodPost, "/reservations", body, cookie)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusNotFound, ErrNotFound)
}

func (s *ReservationHandlerSuite) TestCreateReservation_RequiresAuthentication() {
	body := `{"showId": 5, "seatId": 14}`
	req := httptestRequest(http.MethodPost, "/reservations", body, nil)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func (s *ReservationHandlerSuite) TestGetReservationsOfUser() {
	summaries := []domain.ReservationSummary{
		{
			ReservationID: 11,
			ShowTitle:     "Hamlet",
			TheaterName:   "Grand Hall",
			SeatNumber:    14,
			ShowDate:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			ShowTime:      "19:30",
			Status:        domain.ReservationStatusReserved,
		},
	}
	metadata := domain.NewMetadata(1, 1, 20)

	s.reservationRepo.On("GetSummariesByUserId", mock.Anything, 7, domain.Pagination{Page: 1, PageSize: 20}).
		Return(summaries, metadata, nil)

	cookie := setupTestSession(s.T(), s.app, 7, false)
	req := httptestRequest(http.MethodGet, "/users/me/reservations", "", cookie)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusOK, rr.Code)

	var resp api.UserReservationsResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Require().Len(resp.Reservations, 1)
	s.Equal("Hamlet", resp.Reservations[0].ShowTitle)

	s.reservationRepo.AssertExpectations(s.T())
}

func (s *ReservationHandlerSuite) TestGetUserReservationById() {
	detail := &domain.ReservationDetail{
		ReservationID: 11,
		UserID:        7,
		ShowTitle:     "Hamlet",
		TheaterName:   "Grand Hall",
		SeatNumber:    14,
		ShowDate:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		ShowTime:      "19:30",
		Status:        domain.ReservationStatusReserved,
		Price:         decimal.NewFromInt(25),
	}

	s.reservationRepo.On("GetDetailById", mock.Anything, 11).Return(detail, nil)

	cookie := setupTestSession(s.T(), s.app, 7, false)
	req := httptestRequest(http.MethodGet, "/users/me/reservations/11", "", cookie)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusOK, rr.Code)

	var resp api.ReservationDetailResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal(11, resp.Id)
	s.True(resp.Price.Equal(decimal.NewFromInt(25)))
}

func (s *ReservationHandlerSuite) TestGetUserReservationById_OtherUsersReservation() {
	detail := &domain.ReservationDetail{ReservationID: 11, UserID: 99}

	s.reservationRepo.On("GetDetailById", mock.Anything, 11).Return(detail, nil)

	cookie := setupTestSession(s.T(), s.app, 7, false)
	req := httptestRequest(http.MethodGet, "/users/me/reservations/11", "", cookie)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusNotFound, ErrNotFound)
}

func (s *ReservationHandlerSuite) TestListReservations_RequiresAdmin() {
	cookie := setupTestSession(s.T(), s.app, 7, false)
	req := httptestRequest(http.MethodGet, "/reservations", "", cookie)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusForbidden, ErrForbiddenAccess)
}

func (s *ReservationHandlerSuite) TestListReservations() {
	metadata := domain.NewMetadata(0, 1, 20)

	s.reservationRepo.On("GetAll", mock.Anything, domain.Pagination{Page: 1, PageSize: 20}).
		Return([]domain.ReservationSummary{}, metadata, nil)

	cookie := setupTestSession(s.T(), s.app, 1, true)
	req := httptestRequest(http.MethodGet, "/reservations", "", cookie)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusOK, rr.Code)

	s.reservationRepo.AssertExpectations(s.T())
}

func (s *ReservationHandlerSuite) TestCancelReservation() {
	reservation := &domain.Reservation{ID: 11, UserID: 7, Status: domain.ReservationStatusReserved}

	s.reservationRepo.On("GetById", mock.Anything, 11).Return(reservation, nil)
	s.reservationRepo.On("Cancel", mock.Anything, 11).Return(nil)

	cookie := setupTestSession(s.T(), s.app, 7, false)
	req := httptestRequest(http.MethodDelete, "/reservations/11", "", cookie)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusNoContent, rr.Code)

	s.reservationRepo.AssertExpectations(s.T())
}

func (s *ReservationHandlerSuite) TestCancelReservation_AlreadyCancelled() {
	reservation := &domain.Reservation{ID: 11, UserID: 7, Status: domain.ReservationStatusCancelled}

	s.reservationRepo.On("GetById", mock.Anything, 11).Return(reservation, nil)
	s.reservationRepo.On("Cancel", mock.Anything, 11).Return(domain.ErrInvalidTransition)

	cookie := setupTestSession(s.T(), s.app, 7, false)
	req := httptestRequest(http.MethodDelete, "/reservations/11", "", cookie)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusConflict, "this reservation is already cancelled")
}

func (s *ReservationHandlerSuite) TestCancelReservation_OtherUsersReservation() {
	reservation := &domain.Reservation{ID: 11, UserID: 99, Status: domain.ReservationStatusReserved}

	s.reservationRepo.On("GetById", mock.Anything, 11).Return(reservation, nil)

	cookie := setupTestSession(s.T(), s.app, 7, false)
	req := httptestRequest(http.MethodDelete, "/reservations/11", "", cookie)

	rr := executeRequest(s.app, req)

	checkErrorResponse(s.T(), rr, http.StatusNotFound, ErrNotFound)
}

func (s *ReservationHandlerSuite) TestCancelReservation_AdminCanCancelAny() {
	reservation := &domain.Reservation{ID: 11, UserID: 99, Status: domain.ReservationStatusPaid}

	s.reservationRepo.On("GetById", mock.Anything, 11).Return(reservation, nil)
	s.reservationRepo.On("Cancel", mock.Anything, 11).Return(nil)

	cookie := setupTestSession(s.T(), s.app, 1, true)
	req := httptestRequest(http.MethodDelete, "/reservations/11", "", cookie)

	rr := executeRequest(s.app, req)

	s.Equal(http.StatusNoContent, rr.Code)
}
