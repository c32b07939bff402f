package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/service"
	"github.com/mobilemart/marketplace/internal/infrastructure/db/memory"
)

func newTestRouter(t *testing.T, strict bool) *echo.Echo {
	t.Helper()
	log := zerolog.Nop()
	tokens := service.NewTokenService("test-secret", time.Hour)

	return NewRouter(Dependencies{
		AuthService:      service.NewAuthService(memory.NewUserRepository(), tokens, log),
		MobileService:    service.NewMobileService(memory.NewMobileRepository(), nil, strict, log),
		Tokens:           tokens,
		Logger:           log,
		StrictAuthz:      strict,
		CORSAllowOrigins: []string{"*"},
		Registry:         prometheus.NewRegistry(),
	})
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

type session struct {
	token  string
	userID string
}

func signup(t *testing.T, e *echo.Echo, email, role string) session {
	t.Helper()
	body := `{"firstName":"Test","lastName":"User","mobileNumber":"9876543210","email":"` + email +
		`","role":"` + role + `","password":"secret1"}`
	rec := do(t, e, http.MethodPost, "/user/", "", body)
	if rec.Code != http.StatusOK || message(t, rec) != "Success" {
		t.Fatalf("register %s: %d %s", email, rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, "/user/login", "", `{"email":"`+strings.ToUpper(email)+`","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d", email, rec.Code)
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid login json: %v", err)
	}
	if resp.Token == "" || resp.User.Role != role {
		t.Fatalf("unexpected login response: %s", rec.Body.String())
	}
	return session{token: resp.Token, userID: resp.User.ID}
}

func addMobile(t *testing.T, e *echo.Echo, s session, brand string, price int) {
	t.Helper()
	body := `{"brand":"` + brand + `","model":"One","description":"handset","mobilePrice":` +
		itoa(price) + `,"availableQuantity":5}`
	rec := do(t, e, http.MethodPost, "/mobile/add", s.token, body)
	if rec.Code != http.StatusOK || message(t, rec) != "Mobile added successfully" {
		t.Fatalf("add %s: %d %s", brand, rec.Code, rec.Body.String())
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func listMobiles(t *testing.T, e *echo.Echo, path, token, body string) []domain.Mobile {
	t.Helper()
	rec := do(t, e, http.MethodPost, path, token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("list %s: %d %s", path, rec.Code, rec.Body.String())
	}
	var items []domain.Mobile
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid list json: %v", err)
	}
	return items
}

func TestRouter_LoginUnknownEmailIsSoft(t *testing.T) {
	e := newTestRouter(t, false)

	rec := do(t, e, http.MethodPost, "/user/login", "", `{"email":"ghost@example.com","password":"whatever"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := message(t, rec); msg != "Invalid Credentials" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestRouter_GarbageTokenRejected(t *testing.T) {
	e := newTestRouter(t, false)

	for _, path := range []string{"/mobile/seller", "/mobile", "/mobile/add"} {
		rec := do(t, e, http.MethodPost, path, "garbage", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}
		if msg := message(t, rec); msg != "Authentication failed" {
			t.Fatalf("%s: unexpected message %q", path, msg)
		}
	}

	rec := do(t, e, http.MethodGet, "/user", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without token, got %d", rec.Code)
	}
}

func TestRouter_SellerListingScopedToCaller(t *testing.T) {
	e := newTestRouter(t, false)
	a := signup(t, e, "a@example.com", domain.RoleSeller)
	b := signup(t, e, "b@example.com", domain.RoleSeller)
	buyer := signup(t, e, "c@example.com", domain.RoleBuyer)

	addMobile(t, e, a, "Nova", 5000)
	addMobile(t, e, a, "Zeta", 2000)
	addMobile(t, e, b, "Core", 3000)

	mine := listMobiles(t, e, "/mobile/seller", a.token, `{"sortValue":1}`)
	if len(mine) != 2 {
		t.Fatalf("expected 2 own mobiles, got %d", len(mine))
	}
	for _, m := range mine {
		if m.UserID != a.userID {
			t.Fatalf("leaked mobile owned by %s", m.UserID)
		}
	}
	if mine[0].MobilePrice != 2000 {
		t.Fatalf("expected ascending order, got %v first", mine[0].MobilePrice)
	}

	rec := do(t, e, http.MethodPost, "/mobile/seller", a.token, `{"userId":"`+b.userID+`"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign owner, got %d", rec.Code)
	}

	catalog := listMobiles(t, e, "/mobile/", buyer.token, `{"searchValue":"","sortValue":-1}`)
	if len(catalog) != 3 || catalog[0].MobilePrice != 5000 {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}

	rec = do(t, e, http.MethodGet, "/user", buyer.token, "")
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "passwordHash") {
		t.Fatalf("unexpected users response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_MobileNotFoundShapes(t *testing.T) {
	e := newTestRouter(t, false)
	a := signup(t, e, "a@example.com", domain.RoleSeller)

	rec := do(t, e, http.MethodGet, "/mobile/000000000000000000000000", a.token, "")
	if rec.Code != http.StatusOK || message(t, rec) != "Cannot find any mobile." {
		t.Fatalf("unexpected get response: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodDelete, "/mobile/not-an-id", a.token, "")
	if rec.Code != http.StatusNotFound || message(t, rec) != "Mobile not found" {
		t.Fatalf("unexpected delete response: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPut, "/mobile/not-an-id", a.token, `{"mobilePrice":2000}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on update, got %d", rec.Code)
	}
}

func TestRouter_CompatModeAllowsForeignMutation(t *testing.T) {
	e := newTestRouter(t, false)
	a := signup(t, e, "a@example.com", domain.RoleSeller)
	b := signup(t, e, "b@example.com", domain.RoleSeller)
	addMobile(t, e, a, "Nova", 5000)
	id := listMobiles(t, e, "/mobile/seller", a.token, `{}`)[0].ID

	rec := do(t, e, http.MethodPut, "/mobile/"+id, b.token, `{"availableQuantity":1}`)
	if rec.Code != http.StatusOK || message(t, rec) != "Mobile updated successfully" {
		t.Fatalf("unexpected update response: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodDelete, "/mobile/"+id, b.token, "")
	if rec.Code != http.StatusOK || message(t, rec) != "Mobile deleted successfully" {
		t.Fatalf("unexpected delete response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_EmptyUpdateRejected(t *testing.T) {
	e := newTestRouter(t, false)
	a := signup(t, e, "a@example.com", domain.RoleSeller)
	addMobile(t, e, a, "Nova", 5000)
	id := listMobiles(t, e, "/mobile/seller", a.token, `{}`)[0].ID

	rec := do(t, e, http.MethodPut, "/mobile/"+id, a.token, `{}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(message(t, rec), "no fields to update") {
		t.Fatalf("expected 400 for empty update, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_StrictModeEnforcesOwnership(t *testing.T) {
	e := newTestRouter(t, true)
	a := signup(t, e, "a@example.com", domain.RoleSeller)
	b := signup(t, e, "b@example.com", domain.RoleSeller)
	buyer := signup(t, e, "c@example.com", domain.RoleBuyer)
	addMobile(t, e, a, "Nova", 5000)
	id := listMobiles(t, e, "/mobile/seller", a.token, `{}`)[0].ID

	rec := do(t, e, http.MethodPut, "/mobile/"+id, b.token, `{"availableQuantity":1}`)
	if rec.Code != http.StatusForbidden || message(t, rec) != "Forbidden" {
		t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, e, http.MethodDelete, "/mobile/"+id, b.token, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodPost, "/mobile/add", buyer.token,
		`{"brand":"X","model":"Y","description":"z","mobilePrice":2000,"availableQuantity":1}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected buyer to be refused, got %d", rec.Code)
	}

	if items := listMobiles(t, e, "/mobile", buyer.token, `{}`); len(items) != 1 {
		t.Fatalf("buyer should still browse the catalog, got %d items", len(items))
	}

	rec = do(t, e, http.MethodDelete, "/mobile/"+id, a.token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete failed: %d", rec.Code)
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	e := newTestRouter(t, false)

	if rec := do(t, e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health/ready, got %d", rec.Code)
	}

	_ = do(t, e, http.MethodGet, "/health", "", "")
	rec := do(t, e, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "requests_total") {
		t.Fatalf("expected request metrics, got %d", rec.Code)
	}
}
