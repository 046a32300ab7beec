package payment

import (
	"strconv"

	"github.com/metinatakli/theater-reservation-system/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

type MockPaymentProvider struct {
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	user *domain.User,
	reservation *domain.ReservationDetail) (*stripe.CheckoutSession, error) {

	return &stripe.CheckoutSession{
		ID:  "cs_test_" + strconv.Itoa(reservation.ReservationID),
		URL: "https://checkout.stripe.example/cs_test_" + strconv.Itoa(reservation.ReservationID),
		Metadata: map[string]string{
			"reservation_id": strconv.Itoa(reservation.ReservationID),
			"user_id":        strconv.Itoa(user.ID),
		},
	}, nil
}
