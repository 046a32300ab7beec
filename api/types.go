// Package api holds the typed request and response payloads of the HTTP API.
// Every operation gets an explicit struct; validation tags are evaluated at the
// boundary before any request reaches the workflow.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,alpha,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,alpha,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Activated bool      `json:"activated"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int       `json:"version"`
}

type UserActivationRequest struct {
	Token string `json:"token" validate:"required,len=43"`
}

type ResendActivationTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserActivationResponse struct {
	Activated bool `json:"activated"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AlreadyLoggedInResponse struct {
	Message string `json:"message"`
}

type CreateTheaterRequest struct {
	Name       string          `json:"name" validate:"required,min=2,max=255"`
	Location   string          `json:"location" validate:"required,min=2,max=255"`
	TotalSeats int             `json:"totalSeats" validate:"required,min=1,max=1000"`
	BasePrice  decimal.Decimal `json:"basePrice" validate:"required"`
}

type TheaterResponse struct {
	Id         int       `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	TotalSeats int       `json:"totalSeats"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TheatersResponse struct {
	Theaters []TheaterResponse `json:"theaters"`
	Metadata Metadata          `json:"metadata"`
}

type CreateShowRequest struct {
	TheaterId   int                `json:"theaterId" validate:"required,min=1"`
	Title       string             `json:"title" validate:"required,min=1,max=255"`
	Description string             `json:"description" validate:"required"`
	Date        openapi_types.Date `json:"date" validate:"required"`
	Time        string             `json:"time" validate:"required,datetime=15:04"`
}

type ShowResponse struct {
	Id          int                `json:"id"`
	TheaterId   int                `json:"theaterId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time"`
}

type ShowsResponse struct {
	Shows    []ShowResponse `json:"shows"`
	Metadata Metadata       `json:"metadata"`
}

type CreateSeatRequest struct {
	TheaterId  int             `json:"theaterId" validate:"required,min=1"`
	SeatNumber int             `json:"seatNumber" validate:"required,min=1"`
	Price      decimal.Decimal `json:"price" validate:"required"`
}

type SeatResponse struct {
	Id         int             `json:"id"`
	TheaterId  int             `json:"theaterId"`
	SeatNumber int             `json:"seatNumber"`
	Price      decimal.Decimal `json:"price"`
}

type SeatMapSeat struct {
	Id         int             `json:"id"`
	SeatNumber int             `json:"seatNumber"`
	Price      decimal.Decimal `json:"price"`
	Available  bool            `json:"available"`
}

type SeatMapResponse struct {
	ShowId      int           `json:"showId"`
	ShowTitle   string        `json:"showTitle"`
	TheaterId   int           `json:"theaterId"`
	TheaterName string        `json:"theaterName"`
	Seats       []SeatMapSeat `json:"seats"`
}

type CreateReservationRequest struct {
	ShowId int `json:"showId" validate:"required,min=1"`
	SeatId int `json:"seatId" validate:"required,min=1"`
}

type ReservationResponse struct {
	Id         int       `json:"id"`
	ShowId     int       `json:"showId"`
	SeatId     int       `json:"seatId"`
	Status     string    `json:"status"`
	ReservedAt time.Time `json:"reservedAt"`
}

type ReservationSummary struct {
	Id          int                `json:"id"`
	ShowTitle   string             `json:"showTitle"`
	TheaterName string             `json:"theaterName"`
	SeatNumber  int                `json:"seatNumber"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time"`
	Status      string             `json:"status"`
	ReservedAt  time.Time          `json:"reservedAt"`
}

type UserReservationsResponse struct {
	Reservations []ReservationSummary `json:"reservations"`
	Metadata     Metadata             `json:"metadata"`
}

type ReservationDetailResponse struct {
	Id          int                `json:"id"`
	ShowTitle   string             `json:"showTitle"`
	TheaterName string             `json:"theaterName"`
	SeatNumber  int                `json:"seatNumber"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time"`
	Status      string             `json:"status"`
	Price       decimal.Decimal    `json:"price"`
	ReservedAt  time.Time          `json:"reservedAt"`
}

type CheckoutSessionResponse struct {
	RedirectUrl string `json:"redirectUrl"`
}

type TicketResponse struct {
	ReservationId int       `json:"reservationId"`
	TicketNumber  string    `json:"ticketNumber"`
	IssuedAt      time.Time `json:"issuedAt"`
}

type PaginationParams struct {
	Page     *int `validate:"omitempty,min=1"`
	PageSize *int `validate:"omitempty,min=1,max=100"`
}
