package mocks

import (
	"context"

	"github.com/metinatakli/theater-reservation-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockTheaterRepo struct {
	mock.Mock
	domain.TheaterRepository
}

func (m *MockTheaterRepo) Create(ctx context.Context, theater *domain.Theater, basePrice decimal.Decimal) error {
	args := m.Called(ctx, theater, basePrice)
	return args.Error(0)
}

func (m *MockTheaterRepo) GetAll(
	ctx context.Context,
	location string,
	pagination domain.Pagination) ([]domain.Theater, *domain.Metadata, error) {

	args := m.Called(ctx, location, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Theater), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockTheaterRepo) GetById(ctx context.Context, id int) (*domain.Theater, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Theater), args.Error(1)
}
