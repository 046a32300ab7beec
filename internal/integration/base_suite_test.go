package integration_test

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
	"github.com/metinatakli/theater-reservation-system/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName         = "theater_reservation"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

// BaseSuite starts one Postgres and one Redis container for the whole suite
// and wires the repositories against them. Tests create their own rows and
// never assume an empty database.
type BaseSuite struct {
	suite.Suite
	db             *pgxpool.Pool
	redis          *redis.Client
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer

	userRepo        domain.UserRepository
	tokenRepo       domain.TokenRepository
	theaterRepo     domain.TheaterRepository
	showRepo        domain.ShowRepository
	seatRepo        domain.SeatRepository
	reservationRepo domain.ReservationRepository
	ticketRepo      domain.TicketRepository
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	if err != nil {
		s.T().Fatalf("failed to start container: %s", err)
	}

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		s.T().Fatalf("failed to start container: %s", err)
	}

	s.dbContainer = postgresContainer
	s.cacheContainer = redisContainer

	db, err := pgxpool.New(ctx, postgresContainer.ConnectionString)
	if err != nil {
		s.T().Fatalf("cannot create connection pool: %s", err)
	}

	s.db = db
	s.redis = redis.NewClient(&redis.Options{Addr: redisContainer.ConnectionString})

	s.userRepo = repository.NewPostgresUserRepository(db)
	s.tokenRepo = repository.NewPostgresTokenRepository(db)
	s.theaterRepo = repository.NewPostgresTheaterRepository(db)
	s.showRepo = repository.NewPostgresShowRepository(db)
	s.seatRepo = repository.NewPostgresSeatRepository(db)
	s.reservationRepo = repository.NewPostgresReservationRepository(db)
	s.ticketRepo = repository.NewPostgresTicketRepository(db)
}

func (s *BaseSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer.Container.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

var uniqueCounter atomic.Int64

// uniqueSuffix keeps rows from different tests out of each other's way.
func uniqueSuffix() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), uniqueCounter.Add(1))
}

func (s *BaseSuite) createUser(email string) *domain.User {
	user := &domain.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
	}
	s.Require().NoError(user.Password.Set("Sup3rSecret!"))

	_, err := s.userRepo.CreateWithToken(context.Background(), user, func(u *domain.User) (*domain.Token, error) {
		return domain.GenerateToken(int64(u.ID), time.Hour, domain.UserActivationScope)
	})
	s.Require().NoError(err)

	return user
}

func (s *BaseSuite) createTheaterWithSeats(totalSeats int) *domain.Theater {
	theater := &domain.Theater{
		Name:       "Theater " + uniqueSuffix(),
		Location:   "Testville",
		TotalSeats: totalSeats,
	}

	err := s.theaterRepo.Create(context.Background(), theater, decimal.NewFromInt(25))
	s.Require().NoError(err)

	return theater
}

func (s *BaseSuite) createShow(theaterID int, date time.Time, showTime string) *domain.Show {
	show := &domain.Show{
		TheaterID:   theaterID,
		Title:       "Show " + uniqueSuffix(),
		Description: "An integration test production",
		Date:        date,
		Time:        showTime,
	}

	err := s.showRepo.Create(context.Background(), show)
	s.Require().NoError(err)

	return show
}

func (s *BaseSuite) seatIdsOfShow(showID int) []int {
	seatMap, err := s.seatRepo.GetSeatMapByShow(context.Background(), showID)
	s.Require().NoError(err)

	ids := make([]int, 0, len(seatMap.Seats))
	for _, seat := range seatMap.Seats {
		ids = append(ids, seat.ID)
	}

	return ids
}
