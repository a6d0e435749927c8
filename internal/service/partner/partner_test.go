package partner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"delivery-dispatch/internal/apperr"
	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/service/partner"
)

type stubRepo struct {
	getFn    func(context.Context, int64) (*domain.Partner, error)
	listFn   func(context.Context, *int, *int) ([]domain.Partner, error)
	createFn func(context.Context, *domain.Partner) (int64, error)
	updateFn func(context.Context, domain.PartialPartnerUpdate) (bool, error)
}

func (s *stubRepo) Get(ctx context.Context, id int64) (*domain.Partner, error) {
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(ctx, id)
}

func (s *stubRepo) List(ctx context.Context, limit, offset *int) ([]domain.Partner, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, limit, offset)
}

func (s *stubRepo) Create(ctx context.Context, p *domain.Partner) (int64, error) {
	if s.createFn == nil {
		return 0, nil
	}
	return s.createFn(ctx, p)
}

func (s *stubRepo) UpdatePartial(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error) {
	if s.updateFn == nil {
		return false, nil
	}
	return s.updateFn(ctx, u)
}

func validPartner() *domain.Partner {
	return &domain.Partner{
		Name:   "Alex",
		Email:  "alex@example.com",
		Phone:  "+79991234567",
		Status: domain.PartnerActive,
		Areas:  []string{"Downtown"},
		Shift: domain.Shift{
			Start: domain.MustClock("09:00"),
			End:   domain.MustClock("17:00"),
		},
		Metrics: domain.PartnerMetrics{Rating: 4.5},
	}
}

func TestService_Create_Valid(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		createFn: func(_ context.Context, p *domain.Partner) (int64, error) {
			require.Equal(t, domain.PartnerActive, p.Status)
			return 42, nil
		},
	}
	svc := partner.NewService(repo, time.Second)

	id, err := svc.Create(context.Background(), validPartner())
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestService_Create_DefaultsStatusToInactive(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		createFn: func(_ context.Context, p *domain.Partner) (int64, error) {
			require.Equal(t, domain.PartnerInactive, p.Status)
			return 1, nil
		},
	}
	svc := partner.NewService(repo, time.Second)

	p := validPartner()
	p.Status = ""
	_, err := svc.Create(context.Background(), p)
	require.NoError(t, err)
}

func TestService_Create_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(p *domain.Partner)
	}{
		{name: "empty name", mutate: func(p *domain.Partner) { p.Name = "  " }},
		{name: "bad email", mutate: func(p *domain.Partner) { p.Email = "not-an-email" }},
		{name: "bad phone", mutate: func(p *domain.Partner) { p.Phone = "12345" }},
		{name: "unknown status", mutate: func(p *domain.Partner) { p.Status = "paused" }},
		{name: "no areas", mutate: func(p *domain.Partner) { p.Areas = nil }},
		{name: "blank area", mutate: func(p *domain.Partner) { p.Areas = []string{" "} }},
		{name: "negative load", mutate: func(p *domain.Partner) { p.CurrentLoad = -1 }},
		{name: "load above capacity", mutate: func(p *domain.Partner) { p.CurrentLoad = domain.Capacity + 1 }},
		{name: "rating above five", mutate: func(p *domain.Partner) { p.Metrics.Rating = 5.5 }},
		{name: "negative completed", mutate: func(p *domain.Partner) { p.Metrics.CompletedOrders = -1 }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := partner.NewService(&stubRepo{}, time.Second)
			p := validPartner()
			tc.mutate(p)
			_, err := svc.Create(context.Background(), p)
			require.ErrorIs(t, err, apperr.ErrInvalid)
		})
	}
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	want := validPartner()
	want.ID = 7
	repo := &stubRepo{
		getFn: func(_ context.Context, id int64) (*domain.Partner, error) {
			require.Equal(t, int64(7), id)
			return want, nil
		},
	}
	svc := partner.NewService(repo, time.Second)

	got, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestService_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc := partner.NewService(&stubRepo{}, time.Second)
	_, err := svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_UpdatePartial(t *testing.T) {
	t.Parallel()

	name := "New Name"
	repo := &stubRepo{
		updateFn: func(_ context.Context, u domain.PartialPartnerUpdate) (bool, error) {
			require.Equal(t, int64(3), u.ID)
			require.Equal(t, &name, u.Name)
			return true, nil
		},
	}
	svc := partner.NewService(repo, time.Second)

	ok, err := svc.UpdatePartial(context.Background(), domain.PartialPartnerUpdate{ID: 3, Name: &name})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestService_UpdatePartial_Validation(t *testing.T) {
	t.Parallel()

	svc := partner.NewService(&stubRepo{}, time.Second)

	_, err := svc.UpdatePartial(context.Background(), domain.PartialPartnerUpdate{ID: 0})
	require.ErrorIs(t, err, apperr.ErrInvalid)

	// no fields set
	_, err = svc.UpdatePartial(context.Background(), domain.PartialPartnerUpdate{ID: 1})
	require.ErrorIs(t, err, apperr.ErrInvalid)

	badPhone := "nope"
	_, err = svc.UpdatePartial(context.Background(), domain.PartialPartnerUpdate{ID: 1, Phone: &badPhone})
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_UpdatePartial_NotFound(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		updateFn: func(context.Context, domain.PartialPartnerUpdate) (bool, error) {
			return false, nil
		},
	}
	svc := partner.NewService(repo, time.Second)

	name := "x"
	_, err := svc.UpdatePartial(context.Background(), domain.PartialPartnerUpdate{ID: 1, Name: &name})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_List_PropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	repo := &stubRepo{
		listFn: func(context.Context, *int, *int) ([]domain.Partner, error) {
			return nil, boom
		},
	}
	svc := partner.NewService(repo, time.Second)

	_, err := svc.List(context.Background(), nil, nil)
	require.ErrorIs(t, err, boom)
}
