package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/varzeapro/varzeapro/internal/app/features/home"
	"github.com/varzeapro/varzeapro/internal/testutil"
	"go.uber.org/zap"
)

func TestServeRoot_OnboardedPlayerRedirectsToDashboard(t *testing.T) {
	handler := home.NewHandler(zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/", testutil.PlayerUser())
	rec := httptest.NewRecorder()

	handler.ServeRoot(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/player" {
		t.Errorf("Location: got %q, want /player", loc)
	}
}

func TestServeRoot_OnboardedTeamRedirectsToDashboard(t *testing.T) {
	handler := home.NewHandler(zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/", testutil.TeamUser())
	rec := httptest.NewRecorder()

	handler.ServeRoot(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/team" {
		t.Errorf("Location: got %q, want /team", loc)
	}
}

func TestServeRoot_MidOnboardingUserStaysOnLanding(t *testing.T) {
	handler := home.NewHandler(zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/", testutil.PlayerDraftUser())
	rec := httptest.NewRecorder()

	testutil.CallRenderPath(t, func() {
		handler.ServeRoot(rec, req)
	})

	if rec.Code == http.StatusSeeOther {
		t.Errorf("unexpected redirect to %q", rec.Header().Get("Location"))
	}
}

func TestServeRoot_Unauthenticated(t *testing.T) {
	handler := home.NewHandler(zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	testutil.CallRenderPath(t, func() {
		handler.ServeRoot(rec, req)
	})

	if rec.Code == http.StatusSeeOther {
		t.Errorf("landing page should not redirect anonymous visitors")
	}
}
