package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	profilesvc "github.com/Omardiab22/VELIN-START/internal/service/profile"
)

type failingService struct {
	err error
}

func (f *failingService) Upsert(context.Context, string, profilesvc.UpsertParams) (*profilesvc.Profile, error) {
	return nil, f.err
}

func (f *failingService) Get(context.Context, string) (*profilesvc.Profile, error) {
	return nil, f.err
}

func (f *failingService) ActivateByEmail(context.Context, string) (int, error) {
	return 0, f.err
}

func deliver(t *testing.T, store profilesvc.Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/wuilt", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	Handler(store).ServeHTTP(resp, req)
	return resp
}

func assertAck(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != "OK" {
		t.Fatalf("expected body OK, got %q", resp.Body.String())
	}
}

func seedProfile(t *testing.T, store *profilesvc.MemoryStore, username, email string) {
	t.Helper()
	if _, err := store.Upsert(context.Background(), username, profilesvc.UpsertParams{Email: &email}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func TestWebhookActivatesMatchingProfile(t *testing.T) {
	store := profilesvc.NewMemoryStore()
	seedProfile(t, store, "bob", "bob@example.com")

	resp := deliver(t, store, `{"order":{"customer":{"email":"Bob@Example.com"}}}`)
	assertAck(t, resp)

	p, err := store.Get(context.Background(), "bob")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !p.CanActivate {
		t.Fatal("expected canActivate after matching delivery")
	}
}

func TestWebhookNestedPayloadShape(t *testing.T) {
	store := profilesvc.NewMemoryStore()
	seedProfile(t, store, "bob", "bob@example.com")

	resp := deliver(t, store, `{"payload":{"order":{"customer":{"email":"bob@example.com"}}}}`)
	assertAck(t, resp)

	p, err := store.Get(context.Background(), "bob")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !p.CanActivate {
		t.Fatal("expected canActivate from nested delivery shape")
	}
}

func TestWebhookTopLevelOrderWinsOverNested(t *testing.T) {
	store := profilesvc.NewMemoryStore()
	seedProfile(t, store, "bob", "top@example.com")
	seedProfile(t, store, "eve", "nested@example.com")

	resp := deliver(t, store,
		`{"order":{"customer":{"email":"top@example.com"}},"payload":{"order":{"customer":{"email":"nested@example.com"}}}}`)
	assertAck(t, resp)

	p, _ := store.Get(context.Background(), "bob")
	if !p.CanActivate {
		t.Fatal("expected top-level order to be used")
	}
	q, _ := store.Get(context.Background(), "eve")
	if q.CanActivate {
		t.Fatal("nested order should be ignored when top-level is present")
	}
}

func TestWebhookNoMatchingProfile(t *testing.T) {
	store := profilesvc.NewMemoryStore()
	seedProfile(t, store, "bob", "bob@example.com")

	resp := deliver(t, store, `{"order":{"customer":{"email":"stranger@example.com"}}}`)
	assertAck(t, resp)

	p, _ := store.Get(context.Background(), "bob")
	if p.CanActivate {
		t.Fatal("unrelated delivery must not activate the profile")
	}
}

func TestWebhookMalformedBody(t *testing.T) {
	resp := deliver(t, profilesvc.NewMemoryStore(), `{"order":`)
	assertAck(t, resp)
}

func TestWebhookMissingEmail(t *testing.T) {
	resp := deliver(t, profilesvc.NewMemoryStore(), `{"order":{"customer":{}}}`)
	assertAck(t, resp)
}

func TestWebhookEmptyBody(t *testing.T) {
	resp := deliver(t, profilesvc.NewMemoryStore(), ``)
	assertAck(t, resp)
}

func TestWebhookStoreFailureStillAcks(t *testing.T) {
	store := &failingService{err: errors.New("backend unavailable")}
	resp := deliver(t, store, `{"order":{"customer":{"email":"bob@example.com"}}}`)
	assertAck(t, resp)
}
