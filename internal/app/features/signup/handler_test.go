package signup_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	uierrors "github.com/varzeapro/varzeapro/internal/app/features/errors"
	"github.com/varzeapro/varzeapro/internal/app/features/signup"
	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *signup.Handler {
	t.Helper()
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	// No DB in these tests; the paths exercised stop before the user store.
	return signup.NewHandler(nil, sessionMgr, uierrors.NewErrorLogger(logger), logger)
}

func TestServeSignUp_SignedInUserRedirectsToWelcome(t *testing.T) {
	handler := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/sign-up", testutil.FreshUser())
	rec := httptest.NewRecorder()

	handler.ServeSignUp(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/welcome" {
		t.Errorf("Location: got %q, want /welcome", loc)
	}
}

func TestServeSignUp_AnonymousRendersForm(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/sign-up", nil)
	rec := httptest.NewRecorder()

	testutil.CallRenderPath(t, func() {
		handler.ServeSignUp(rec, req)
	})

	if rec.Code == http.StatusSeeOther {
		t.Errorf("anonymous visitor should see the form, got redirect to %q", rec.Header().Get("Location"))
	}
}

func TestRoutes_PasswordStrengthMounted(t *testing.T) {
	handler := newTestHandler(t)
	router := signup.Routes(handler)

	req := testutil.NewFormRequest("/password-strength", url.Values{"password": {"Senha123!"}})
	rec := httptest.NewRecorder()

	testutil.CallRenderPath(t, func() {
		router.ServeHTTP(rec, req)
	})

	if rec.Code == http.StatusNotFound || rec.Code == http.StatusMethodNotAllowed {
		t.Errorf("strength endpoint not mounted: got %d", rec.Code)
	}
}

func TestHandleSignUpPost_ValidationStopsBeforePersistence(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{
			"name too short",
			url.Values{"name": {"J"}, "email": {"j@b.com"}, "password": {"senha123"}, "confirm_password": {"senha123"}},
		},
		{
			"invalid email",
			url.Values{"name": {"João Silva"}, "email": {"sem-arroba"}, "password": {"senha123"}, "confirm_password": {"senha123"}},
		},
		{
			"password mismatch",
			url.Values{"name": {"João Silva"}, "email": {"j@b.com"}, "password": {"senha123"}, "confirm_password": {"senha124"}},
		},
		{
			"weak password",
			url.Values{"name": {"João Silva"}, "email": {"j@b.com"}, "password": {"curta1"}, "confirm_password": {"curta1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewFormRequest("/sign-up", tt.form)
			rec := httptest.NewRecorder()

			testutil.CallRenderPath(t, func() {
				handler.HandleSignUpPost(rec, req)
			})

			if rec.Code == http.StatusSeeOther {
				t.Errorf("invalid form should not redirect, got %q", rec.Header().Get("Location"))
			}
		})
	}
}
