package teamdash_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/varzeapro/varzeapro/internal/app/features/errors"
	"github.com/varzeapro/varzeapro/internal/app/features/teamdash"
	"github.com/varzeapro/varzeapro/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *teamdash.Handler {
	t.Helper()
	logger := zap.NewNop()
	// No DB in these tests; the paths exercised stop at the guard.
	return teamdash.NewHandler(nil, nil, uierrors.NewErrorLogger(logger), logger)
}

func TestServeDashboard_UnauthenticatedRedirectsToSignIn(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/team", nil)
	rec := httptest.NewRecorder()

	handler.ServeDashboard(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/sign-in" {
		t.Errorf("Location: got %q, want /sign-in", loc)
	}
}

func TestServeDashboard_PlayerAccountSentToOwnDashboard(t *testing.T) {
	handler := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/team", testutil.PlayerUser())
	rec := httptest.NewRecorder()

	handler.ServeDashboard(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/player" {
		t.Errorf("Location: got %q, want /player", loc)
	}
}

func TestServeDashboard_MidOnboardingSentToWelcome(t *testing.T) {
	handler := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/team", testutil.TeamDraftUser())
	rec := httptest.NewRecorder()

	handler.ServeDashboard(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/welcome" {
		t.Errorf("Location: got %q, want /welcome", loc)
	}
}
