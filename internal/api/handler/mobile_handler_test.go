package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

type stubMobileService struct {
	catalogFn func(in ports.CatalogInput) ([]*domain.Mobile, error)
	ownedFn   func(claims *domain.Claims, in ports.ListOwnedInput) ([]*domain.Mobile, error)
	getFn     func(id string) (*domain.Mobile, error)
	createFn  func(claims *domain.Claims, in ports.MobileInput) (*domain.Mobile, error)
	updateFn  func(id string, c domain.MobileChanges) error
	deleteFn  func(id string) error
}

func (s *stubMobileService) ListCatalog(_ context.Context, _ *domain.Claims, in ports.CatalogInput) ([]*domain.Mobile, error) {
	return s.catalogFn(in)
}

func (s *stubMobileService) ListOwned(_ context.Context, claims *domain.Claims, in ports.ListOwnedInput) ([]*domain.Mobile, error) {
	return s.ownedFn(claims, in)
}

func (s *stubMobileService) Get(_ context.Context, _ *domain.Claims, id string) (*domain.Mobile, error) {
	return s.getFn(id)
}

func (s *stubMobileService) Create(_ context.Context, claims *domain.Claims, in ports.MobileInput) (*domain.Mobile, error) {
	return s.createFn(claims, in)
}

func (s *stubMobileService) Update(_ context.Context, _ *domain.Claims, id string, c domain.MobileChanges) error {
	return s.updateFn(id, c)
}

func (s *stubMobileService) Delete(_ context.Context, _ *domain.Claims, id string) error {
	return s.deleteFn(id)
}

var testSeller = &domain.Claims{UserID: "seller-1", Role: domain.RoleSeller}

// authed attaches claims the way the Auth middleware does.
func authed(req *http.Request) *http.Request {
	return req.WithContext(domain.WithClaims(req.Context(), testSeller))
}

func TestMobileHandler_Catalog_SortAsString(t *testing.T) {
	e := newTestEcho()
	stub := &stubMobileService{
		catalogFn: func(in ports.CatalogInput) ([]*domain.Mobile, error) {
			if in.Search != "nova" || in.Sort != -1 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return []*domain.Mobile{{ID: "m1", Brand: "Nova"}}, nil
		},
	}
	h := NewMobileHandler(stub)

	rec := httptest.NewRecorder()
	req := authed(jsonRequest(http.MethodPost, "/mobile", `{"searchValue":"nova","sortValue":"-1"}`))
	if err := h.Catalog(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var items []domain.Mobile
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != 1 || items[0].ID != "m1" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestMobileHandler_Catalog_RequiresClaims(t *testing.T) {
	e := newTestEcho()
	h := NewMobileHandler(&stubMobileService{})

	rec := httptest.NewRecorder()
	err := h.Catalog(e.NewContext(jsonRequest(http.MethodPost, "/mobile", `{}`), rec))
	if !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestMobileHandler_SellerListing_PassesRequestedOwner(t *testing.T) {
	e := newTestEcho()
	stub := &stubMobileService{
		ownedFn: func(claims *domain.Claims, in ports.ListOwnedInput) ([]*domain.Mobile, error) {
			if claims.UserID != testSeller.UserID {
				t.Fatalf("unexpected claims: %+v", claims)
			}
			if in.RequestedOwnerID != "someone-else" || in.Sort != 1 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return nil, domain.ErrForbidden
		},
	}
	h := NewMobileHandler(stub)

	rec := httptest.NewRecorder()
	req := authed(jsonRequest(http.MethodPost, "/mobile/seller", `{"userId":"someone-else","sortValue":1}`))
	if err := h.SellerListing(e.NewContext(req, rec)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestMobileHandler_Get_NotFoundIsSoft(t *testing.T) {
	e := newTestEcho()
	stub := &stubMobileService{
		getFn: func(id string) (*domain.Mobile, error) { return nil, domain.ErrMobileNotFound },
	}
	h := NewMobileHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(authed(httptest.NewRequest(http.MethodGet, "/mobile/x", nil)), rec)
	c.SetParamNames("id")
	c.SetParamValues("x")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != MobileNotFoundMessage {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestMobileHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubMobileService{
		createFn: func(claims *domain.Claims, in ports.MobileInput) (*domain.Mobile, error) {
			if in.Brand != "Nova" || in.MobilePrice != 25000 || in.AvailableQuantity != 2 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Mobile{ID: "m1"}, nil
		},
	}
	h := NewMobileHandler(stub)

	body := `{"brand":"Nova","model":"X","description":"d","mobilePrice":25000,"availableQuantity":2}`
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(authed(jsonRequest(http.MethodPost, "/mobile/add", body)), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if msg := decodeMessage(t, rec); msg != "Mobile added successfully" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestMobileHandler_Create_Validation(t *testing.T) {
	e := newTestEcho()
	stub := &stubMobileService{
		createFn: func(*domain.Claims, ports.MobileInput) (*domain.Mobile, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewMobileHandler(stub)

	body := `{"brand":"Nova","model":"X","description":"d","mobilePrice":10,"availableQuantity":2}`
	rec := httptest.NewRecorder()
	err := h.Create(e.NewContext(authed(jsonRequest(http.MethodPost, "/mobile/add", body)), rec))

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestMobileHandler_UpdateAndDelete(t *testing.T) {
	e := newTestEcho()
	stub := &stubMobileService{
		updateFn: func(id string, c domain.MobileChanges) error {
			if id != "m1" || c.MobilePrice == nil || *c.MobilePrice != 3000 || c.Brand != nil {
				t.Fatalf("unexpected update: %s %+v", id, c)
			}
			return nil
		},
		deleteFn: func(id string) error { return domain.ErrMobileNotFound },
	}
	h := NewMobileHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(authed(jsonRequest(http.MethodPut, "/mobile/m1", `{"mobilePrice":3000,"userId":"other"}`)), rec)
	c.SetParamNames("id")
	c.SetParamValues("m1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if msg := decodeMessage(t, rec); msg != "Mobile updated successfully" {
		t.Fatalf("unexpected message: %q", msg)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(authed(httptest.NewRequest(http.MethodDelete, "/mobile/m2", nil)), rec)
	c.SetParamNames("id")
	c.SetParamValues("m2")
	if err := h.Delete(c); !errors.Is(err, domain.ErrMobileNotFound) {
		t.Fatalf("expected ErrMobileNotFound, got %v", err)
	}
}

func TestSortParam_Unmarshal(t *testing.T) {
	cases := map[string]sortParam{
		`1`:    1,
		`-1`:   -1,
		`"-1"`: -1,
		`""`:   0,
		`null`: 0,
	}
	for in, want := range cases {
		var s sortParam
		if err := json.Unmarshal([]byte(in), &s); err != nil {
			t.Fatalf("%s: unexpected error %v", in, err)
		}
		if s != want {
			t.Fatalf("%s: expected %d, got %d", in, want, s)
		}
	}

	var s sortParam
	if err := json.Unmarshal([]byte(`"desc"`), &s); err == nil {
		t.Fatalf("expected error for non-numeric sort")
	}
}
