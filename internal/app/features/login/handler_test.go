package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	uierrors "github.com/varzeapro/varzeapro/internal/app/features/errors"
	"github.com/varzeapro/varzeapro/internal/app/features/login"
	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *login.Handler {
	t.Helper()
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	// No DB in these tests; the paths exercised stop before the user store.
	return login.NewHandler(nil, sessionMgr, uierrors.NewErrorLogger(logger), logger)
}

func TestServeSignIn_SignedInPlayerRedirectsToDashboard(t *testing.T) {
	handler := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/sign-in", testutil.PlayerUser())
	rec := httptest.NewRecorder()

	handler.ServeSignIn(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/player" {
		t.Errorf("Location: got %q, want /player", loc)
	}
}

func TestServeSignIn_SignedInWithoutOnboardingGoesToWelcome(t *testing.T) {
	handler := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/sign-in", testutil.FreshUser())
	rec := httptest.NewRecorder()

	handler.ServeSignIn(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/welcome" {
		t.Errorf("Location: got %q, want /welcome", loc)
	}
}

func TestServeSignIn_AnonymousRendersForm(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/sign-in", nil)
	rec := httptest.NewRecorder()

	testutil.CallRenderPath(t, func() {
		handler.ServeSignIn(rec, req)
	})

	if rec.Code == http.StatusSeeOther {
		t.Errorf("anonymous visitor should see the form, got redirect to %q", rec.Header().Get("Location"))
	}
}

func TestHandleSignInPost_MissingFieldsReRendersForm(t *testing.T) {
	handler := newTestHandler(t)

	tests := []url.Values{
		{"email": {""}, "password": {"senha123"}},
		{"email": {"a@b.com"}, "password": {""}},
		{},
	}

	for _, form := range tests {
		req := testutil.NewFormRequest("/sign-in", form)
		rec := httptest.NewRecorder()

		testutil.CallRenderPath(t, func() {
			handler.HandleSignInPost(rec, req)
		})

		if rec.Code == http.StatusSeeOther {
			t.Errorf("form %v should not redirect", form)
		}
	}
}
