package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"delivery-dispatch/internal/apperr"
	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/http/handlers"
	"delivery-dispatch/internal/logx"
)

func testLogger() logx.Logger { return logx.Nop() }

func urlParamRequest(method, target, name, value string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

type partnerResponse struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Areas      []string `json:"areas"`
	ShiftStart string   `json:"shift_start"`
	ShiftEnd   string   `json:"shift_end"`
}

type stubPartnerUsecase struct {
	getFn           func(ctx context.Context, id int64) (*domain.Partner, error)
	listFn          func(ctx context.Context, limit, offset *int) ([]domain.Partner, error)
	createFn        func(ctx context.Context, p *domain.Partner) (int64, error)
	updatePartialFn func(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error)
}

func (s *stubPartnerUsecase) Get(ctx context.Context, id int64) (*domain.Partner, error) {
	return s.getFn(ctx, id)
}

func (s *stubPartnerUsecase) List(ctx context.Context, limit, offset *int) ([]domain.Partner, error) {
	return s.listFn(ctx, limit, offset)
}

func (s *stubPartnerUsecase) Create(ctx context.Context, p *domain.Partner) (int64, error) {
	return s.createFn(ctx, p)
}

func (s *stubPartnerUsecase) UpdatePartial(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error) {
	return s.updatePartialFn(ctx, u)
}

func TestPartnerHandler_GetByID_OK(t *testing.T) {
	t.Parallel()

	expected := &domain.Partner{
		ID:    99,
		Name:  "Ravi",
		Phone: "+79990001122",
		Areas: []string{"Downtown"},
		Shift: domain.Shift{
			Start: domain.MustClock("09:00"),
			End:   domain.MustClock("17:00"),
		},
	}

	uc := &stubPartnerUsecase{
		getFn: func(ctx context.Context, id int64) (*domain.Partner, error) {
			require.Equal(t, expected.ID, id)
			return expected, nil
		},
	}

	h := handlers.NewPartnerHandler(testLogger(), uc)

	rr := httptest.NewRecorder()
	h.GetByID(rr, urlParamRequest(http.MethodGet, "/partners/99", "id", "99"))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp partnerResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, expected.ID, resp.ID)
	require.Equal(t, expected.Name, resp.Name)
	require.Equal(t, "09:00", resp.ShiftStart)
	require.Equal(t, "17:00", resp.ShiftEnd)
}

func TestPartnerHandler_GetByID_InvalidID(t *testing.T) {
	t.Parallel()

	h := handlers.NewPartnerHandler(testLogger(), &stubPartnerUsecase{
		getFn: func(ctx context.Context, id int64) (*domain.Partner, error) {
			require.FailNow(t, "usecase.Get should not be called on invalid id")
			return nil, nil
		},
	})

	rr := httptest.NewRecorder()
	h.GetByID(rr, urlParamRequest(http.MethodGet, "/partners/abc", "id", "abc"))

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPartnerHandler_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		getFn: func(ctx context.Context, id int64) (*domain.Partner, error) {
			return nil, apperr.ErrNotFound
		},
	}
	h := handlers.NewPartnerHandler(testLogger(), uc)

	rr := httptest.NewRecorder()
	h.GetByID(rr, urlParamRequest(http.MethodGet, "/partners/10", "id", "10"))

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPartnerHandler_List_OK(t *testing.T) {
	t.Parallel()

	expected := []domain.Partner{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
	}

	var gotLimit, gotOffset *int

	uc := &stubPartnerUsecase{
		listFn: func(ctx context.Context, limit, offset *int) ([]domain.Partner, error) {
			gotLimit, gotOffset = limit, offset
			return expected, nil
		},
	}
	h := handlers.NewPartnerHandler(testLogger(), uc)

	req := httptest.NewRequest(http.MethodGet, "/partners?limit=10&offset=5", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gotLimit)
	require.Equal(t, 10, *gotLimit)
	require.NotNil(t, gotOffset)
	require.Equal(t, 5, *gotOffset)

	var resp []partnerResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, len(expected))
}

func TestPartnerHandler_List_InvalidLimit(t *testing.T) {
	t.Parallel()

	h := handlers.NewPartnerHandler(testLogger(), &stubPartnerUsecase{
		listFn: func(ctx context.Context, limit, offset *int) ([]domain.Partner, error) {
			require.FailNow(t, "List should not be called when limit is invalid")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/partners?limit=abc", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPartnerHandler_Create_OK(t *testing.T) {
	t.Parallel()

	var gotModel *domain.Partner

	uc := &stubPartnerUsecase{
		createFn: func(ctx context.Context, p *domain.Partner) (int64, error) {
			gotModel = p
			return 42, nil
		},
	}
	h := handlers.NewPartnerHandler(testLogger(), uc)

	body := `{"name":"Ravi","email":"ravi@example.com","phone":"+79990001122","status":"active","areas":["Downtown"],"shift_start":"09:00","shift_end":"17:00","rating":4.5}`
	req := httptest.NewRequest(http.MethodPost, "/partners", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "/api/partners/42", rr.Header().Get("Location"))
	require.NotNil(t, gotModel)
	require.Equal(t, "Ravi", gotModel.Name)
	require.Equal(t, domain.MustClock("09:00"), gotModel.Shift.Start)
	require.Equal(t, domain.MustClock("17:00"), gotModel.Shift.End)
}

func TestPartnerHandler_Create_BadShift(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		createFn: func(ctx context.Context, p *domain.Partner) (int64, error) {
			require.FailNow(t, "Create must not be called on a malformed shift")
			return 0, nil
		},
	}
	h := handlers.NewPartnerHandler(testLogger(), uc)

	body := `{"name":"Ravi","email":"ravi@example.com","phone":"+79990001122","areas":["Downtown"],"shift_start":"9am","shift_end":"17:00"}`
	req := httptest.NewRequest(http.MethodPost, "/partners", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPartnerHandler_Create_Conflict(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		createFn: func(ctx context.Context, p *domain.Partner) (int64, error) {
			return 0, apperr.ErrConflict
		},
	}
	h := handlers.NewPartnerHandler(testLogger(), uc)

	body := `{"name":"Ravi","email":"ravi@example.com","phone":"+79990001122","areas":["Downtown"],"shift_start":"09:00","shift_end":"17:00"}`
	req := httptest.NewRequest(http.MethodPost, "/partners", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestPartnerHandler_Create_BadJSON(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		createFn: func(ctx context.Context, p *domain.Partner) (int64, error) {
			require.FailNow(t, "Create must not be called on invalid JSON")
			return 0, nil
		},
	}
	h := handlers.NewPartnerHandler(testLogger(), uc)

	body := `{"name": "Ravi",`
	req := httptest.NewRequest(http.MethodPost, "/partners", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPartnerHandler_Update_OK(t *testing.T) {
	t.Parallel()

	var gotUpdate domain.PartialPartnerUpdate

	uc := &stubPartnerUsecase{
		updatePartialFn: func(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error) {
			gotUpdate = u
			return true, nil
		},
	}
	h := handlers.NewPartnerHandler(testLogger(), uc)

	body := `{"id":1,"name":"New Name","shift_start":"10:00","shift_end":"18:00"}`
	req := httptest.NewRequest(http.MethodPut, "/partners", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, int64(1), gotUpdate.ID)
	require.NotNil(t, gotUpdate.Name)
	require.Equal(t, "New Name", *gotUpdate.Name)
	require.NotNil(t, gotUpdate.Shift)
	require.Equal(t, domain.MustClock("10:00"), gotUpdate.Shift.Start)
}

func TestPartnerHandler_Update_HalfShift(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		updatePartialFn: func(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error) {
			require.FailNow(t, "UpdatePartial must not be called with half a shift")
			return false, nil
		},
	}
	h := handlers.NewPartnerHandler(testLogger(), uc)

	body := `{"id":1,"shift_start":"10:00"}`
	req := httptest.NewRequest(http.MethodPut, "/partners", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPartnerHandler_Update_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		updatePartialFn: func(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error) {
			return false, apperr.ErrNotFound
		},
	}
	h := handlers.NewPartnerHandler(testLogger(), uc)

	body := `{"id":123,"name":"X"}`
	req := httptest.NewRequest(http.MethodPut, "/partners", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPartnerHandler_Update_InternalError(t *testing.T) {
	t.Parallel()

	uc := &stubPartnerUsecase{
		updatePartialFn: func(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error) {
			return false, errors.New("db error")
		},
	}
	h := handlers.NewPartnerHandler(testLogger(), uc)

	body := `{"id":1,"name":"X"}`
	req := httptest.NewRequest(http.MethodPut, "/partners", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
