package chat_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/varzeapro/varzeapro/internal/app/features/chat"
	"github.com/varzeapro/varzeapro/internal/testutil"
	"go.uber.org/zap"
)

func TestServeChat_UnauthenticatedRedirectsToSignIn(t *testing.T) {
	handler := chat.NewHandler(zap.NewNop())

	req := httptest.NewRequest("GET", "/chat", nil)
	rec := httptest.NewRecorder()

	handler.ServeChat(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/sign-in" {
		t.Errorf("Location: got %q, want /sign-in", loc)
	}
}

func TestServeChat_BothRolesAllowed(t *testing.T) {
	handler := chat.NewHandler(zap.NewNop())

	for _, user := range []testutil.TestUser{testutil.PlayerUser(), testutil.TeamUser()} {
		req := testutil.NewAuthenticatedRequest("GET", "/chat", user)
		rec := httptest.NewRecorder()

		testutil.CallRenderPath(t, func() {
			handler.ServeChat(rec, req)
		})

		if rec.Code == http.StatusSeeOther {
			t.Errorf("%s should reach chat, got redirect to %q", user.Role, rec.Header().Get("Location"))
		}
	}
}

func TestServeChat_MidOnboardingSentToWelcome(t *testing.T) {
	handler := chat.NewHandler(zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/chat", testutil.PlayerDraftUser())
	rec := httptest.NewRecorder()

	handler.ServeChat(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/welcome" {
		t.Errorf("Location: got %q, want /welcome", loc)
	}
}
