package mocks

import (
	"context"

	"github.com/metinatakli/theater-reservation-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) Create(ctx context.Context, seat *domain.Seat, price decimal.Decimal) error {
	args := m.Called(ctx, seat, price)
	return args.Error(0)
}

func (m *MockSeatRepo) GetSeatMapByShow(ctx context.Context, showID int) (*domain.ShowSeatMap, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShowSeatMap), args.Error(1)
}
