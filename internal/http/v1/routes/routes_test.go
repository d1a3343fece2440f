package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apiinternal "github.com/Omardiab22/VELIN-START/internal/api"
	appmiddleware "github.com/Omardiab22/VELIN-START/internal/middleware"
	"github.com/Omardiab22/VELIN-START/internal/respond"
	eligibilitysvc "github.com/Omardiab22/VELIN-START/internal/service/eligibility"
	profilesvc "github.com/Omardiab22/VELIN-START/internal/service/profile"
	wuiltsvc "github.com/Omardiab22/VELIN-START/internal/service/wuilt"
)

func newTestRouter() chi.Router {
	respond.Install()
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		appmiddleware.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, apiinternal.NewConfig("RoutesTest", "test"))
	Register(api,
		&wuiltsvc.MockService{},
		eligibilitysvc.NewMatcher([]string{"nfc"}),
		profilesvc.NewMemoryStore(),
	)
	return router
}

func TestRegisterRoutesEligibility(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/check-eligibility", strings.NewReader(`{"email":"a@b.c"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRegisterRoutesProfile(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/profile/upsert", strings.NewReader(`{"username":"bob"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if got := strings.TrimSpace(resp.Body.String()); got != `{"ok":false,"reason":"not_found"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestWrongMethodEnvelope(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/check-eligibility", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"ok":false`) {
		t.Fatalf("expected failure envelope, got %s", resp.Body.String())
	}
}
