package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/varzeapro/varzeapro/internal/app/features/logout"
	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/app/system/wizard"
	"github.com/varzeapro/varzeapro/internal/domain/models"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *logout.Handler {
	t.Helper()
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	drafts := wizard.NewStore(sessionMgr.Store(), logger)
	return logout.NewHandler(sessionMgr, drafts, logger)
}

func TestServeSignOut_RedirectsToHome(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("POST", "/sign-out", nil)
	rec := httptest.NewRecorder()

	handler.ServeSignOut(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/" {
		t.Errorf("Location: got %q, want %q", location, "/")
	}
}

func TestServeSignOut_ClearsSessionCookie(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("POST", "/sign-out", nil)
	rec := httptest.NewRecorder()

	handler.ServeSignOut(rec, req)

	// The session cookie must be marked for deletion (MaxAge = -1).
	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
			if c.MaxAge != -1 {
				t.Errorf("cookie MaxAge: got %d, want -1 (delete)", c.MaxAge)
			}
			break
		}
	}
	if !found {
		t.Error("expected session cookie to be set for deletion")
	}
}

func TestServeSignOut_ClearsDraftCookie(t *testing.T) {
	logger := zap.NewNop()
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	drafts := wizard.NewStore(sessionMgr.Store(), logger)
	handler := logout.NewHandler(sessionMgr, drafts, logger)

	// Seed a draft cookie as the wizard would.
	d := wizard.NewDraft()
	d.SetRole(models.RolePlayer)
	req1 := httptest.NewRequest("GET", "/setup/player", nil)
	rec1 := httptest.NewRecorder()
	if err := drafts.Save(rec1, req1, d); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	req2 := httptest.NewRequest("POST", "/sign-out", nil)
	for _, c := range rec1.Result().Cookies() {
		req2.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()

	handler.ServeSignOut(rec2, req2)

	found := false
	for _, c := range rec2.Result().Cookies() {
		if c.Name == wizard.CookieName {
			found = true
			if c.MaxAge != -1 {
				t.Errorf("draft cookie MaxAge: got %d, want -1", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected draft cookie to be set for deletion")
	}
}

func TestServeSignOut_HTMX_ReturnsHXRedirect(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("POST", "/sign-out", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	handler.ServeSignOut(rec, req)

	if hx := rec.Header().Get("HX-Redirect"); hx != "/" {
		t.Errorf("HX-Redirect: got %q, want %q", hx, "/")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for HTMX, got %d", http.StatusOK, rec.Code)
	}
}

func TestServeSignOut_WithExistingSession(t *testing.T) {
	logger := zap.NewNop()
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	drafts := wizard.NewStore(sessionMgr.Store(), logger)
	handler := logout.NewHandler(sessionMgr, drafts, logger)

	// Simulate a signed-in session.
	req1 := httptest.NewRequest("GET", "/player", nil)
	rec1 := httptest.NewRecorder()
	session, _ := sessionMgr.GetSession(req1)
	session.Values["is_authenticated"] = true
	session.Values["user_id"] = "test-user-id"
	_ = session.Save(req1, rec1)

	req2 := httptest.NewRequest("POST", "/sign-out", nil)
	for _, c := range rec1.Result().Cookies() {
		req2.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()

	handler.ServeSignOut(rec2, req2)

	if rec2.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec2.Code)
	}
	for _, c := range rec2.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge != -1 {
			t.Errorf("cookie MaxAge after sign-out: got %d, want -1", c.MaxAge)
		}
	}
}
