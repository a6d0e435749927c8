//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"delivery-dispatch/internal/apperr"
	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/repository"
)

type OrderRepositorySuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *repository.OrderRepo
}

func (s *OrderRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.repo = repository.NewOrderRepo(tcPool)
}

func (s *OrderRepositorySuite) SetupTest() {
	s.Require().NoError(truncateAll(context.Background(), s.pool))
}

func newTestOrder(n int) *domain.Order {
	return &domain.Order{
		OrderNumber: fmt.Sprintf("ORD-%04d", n),
		Customer: domain.Customer{
			Name:    "Alice",
			Phone:   "+79990000000",
			Address: "1 Main St",
		},
		Area: "Downtown",
		Items: []domain.OrderItem{
			{Name: "Box", Quantity: 2, Price: decimal.RequireFromString("9.50")},
		},
		Status:       domain.OrderPending,
		ScheduledFor: domain.MustClock("12:00"),
		TotalAmount:  decimal.RequireFromString("19.00"),
	}
}

func (s *OrderRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	in := newTestOrder(1)

	id, err := s.repo.Create(ctx, in)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(id, got.ID)
	s.Equal(in.OrderNumber, got.OrderNumber)
	s.Equal(in.Customer, got.Customer)
	s.Equal(in.Area, got.Area)
	s.Equal(in.Status, got.Status)
	s.Equal(in.ScheduledFor, got.ScheduledFor)
	s.Nil(got.AssignedTo)
	s.Require().Len(got.Items, 1)
	s.Equal("Box", got.Items[0].Name)
	s.True(got.Items[0].Price.Equal(decimal.RequireFromString("9.50")))
	s.True(got.TotalAmount.Equal(decimal.RequireFromString("19.00")))
	s.False(got.CreatedAt.IsZero())
}

func (s *OrderRepositorySuite) TestCreate_DuplicateNumber() {
	ctx := context.Background()

	in1 := newTestOrder(1)
	in2 := newTestOrder(2)
	in2.OrderNumber = in1.OrderNumber

	_, err := s.repo.Create(ctx, in1)
	s.Require().NoError(err)

	_, err2 := s.repo.Create(ctx, in2)
	s.ErrorIs(err2, apperr.ErrConflict, "expected conflict for duplicate order number")
}

func (s *OrderRepositorySuite) TestGetNotFound() {
	ctx := context.Background()

	got, err := s.repo.Get(ctx, 9999)
	s.Require().NoError(err)
	s.Require().Nil(got)
}

func (s *OrderRepositorySuite) TestGetByNumber() {
	ctx := context.Background()

	in := newTestOrder(7)
	id, err := s.repo.Create(ctx, in)
	s.Require().NoError(err)

	got, err := s.repo.GetByNumber(ctx, in.OrderNumber)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(id, got.ID)

	missing, err := s.repo.GetByNumber(ctx, "ORD-MISSING")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *OrderRepositorySuite) TestList_FiltersByStatusAndArea() {
	ctx := context.Background()

	first := newTestOrder(1)
	_, err := s.repo.Create(ctx, first)
	s.Require().NoError(err)

	second := newTestOrder(2)
	second.Area = "Harbor"
	_, err = s.repo.Create(ctx, second)
	s.Require().NoError(err)

	status := domain.OrderPending
	area := "downtown"
	list, err := s.repo.List(ctx, domain.OrderFilter{Status: &status, Area: &area})
	s.Require().NoError(err)

	s.Require().Len(list, 1, "area filter must be case-insensitive")
	s.Equal(first.OrderNumber, list[0].OrderNumber)

	all, err := s.repo.List(ctx, domain.OrderFilter{})
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *OrderRepositorySuite) TestCreate_ContextCanceled_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.repo.Create(ctx, newTestOrder(9))
	s.Error(err)
	s.ErrorIs(err, context.Canceled)
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrderRepositorySuite))
}
