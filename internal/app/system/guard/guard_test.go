package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/app/system/guard"
	"github.com/varzeapro/varzeapro/internal/domain/models"
	"github.com/varzeapro/varzeapro/internal/testutil"
)

func TestDashboardPath(t *testing.T) {
	if got := guard.DashboardPath(models.RolePlayer); got != "/player" {
		t.Errorf("DashboardPath(PLAYER): got %q, want /player", got)
	}
	if got := guard.DashboardPath(models.RoleTeam); got != "/team" {
		t.Errorf("DashboardPath(TEAM): got %q, want /team", got)
	}
	if got := guard.DashboardPath(""); got != "" {
		t.Errorf("DashboardPath(\"\"): got %q, want empty", got)
	}
	if got := guard.DashboardPath("GOALIE"); got != "" {
		t.Errorf("DashboardPath(unknown): got %q, want empty", got)
	}
}

func TestRequire(t *testing.T) {
	tests := []struct {
		name         string
		user         *testutil.TestUser // nil means no session
		opts         guard.Options
		wantAllowed  bool
		wantLocation string
	}{
		{
			name:         "no session redirects to sign-in",
			user:         nil,
			opts:         guard.Options{Roles: []string{models.RolePlayer}},
			wantLocation: guard.SignInPath,
		},
		{
			name:         "no session on onboarding page redirects to sign-in",
			user:         nil,
			opts:         guard.Options{},
			wantLocation: guard.SignInPath,
		},
		{
			name:        "onboarded player allowed on player route",
			user:        ptr(testutil.PlayerUser()),
			opts:        guard.Options{Roles: []string{models.RolePlayer}},
			wantAllowed: true,
		},
		{
			name:        "onboarded team allowed where both roles pass",
			user:        ptr(testutil.TeamUser()),
			opts:        guard.Options{Roles: []string{models.RolePlayer, models.RoleTeam}},
			wantAllowed: true,
		},
		{
			name:         "onboarded team on player route goes to own dashboard",
			user:         ptr(testutil.TeamUser()),
			opts:         guard.Options{Roles: []string{models.RolePlayer}},
			wantLocation: "/team",
		},
		{
			name:         "onboarded player on team route goes to own dashboard",
			user:         ptr(testutil.PlayerUser()),
			opts:         guard.Options{Roles: []string{models.RoleTeam}},
			wantLocation: "/player",
		},
		{
			name:        "onboarded user with no role passes role gate",
			user:        ptr(onboardedRoleless()),
			opts:        guard.Options{Roles: []string{models.RolePlayer}},
			wantAllowed: true,
		},
		{
			name:         "onboarded player may not re-enter onboarding pages",
			user:         ptr(testutil.PlayerUser()),
			opts:         guard.Options{},
			wantLocation: "/player",
		},
		{
			name:        "onboarded roleless user may view onboarding pages",
			user:        ptr(onboardedRoleless()),
			opts:        guard.Options{},
			wantAllowed: true,
		},
		{
			name:         "mid-onboarding user blocked from role routes",
			user:         ptr(testutil.PlayerDraftUser()),
			opts:         guard.Options{Roles: []string{models.RolePlayer}},
			wantLocation: guard.WelcomePath,
		},
		{
			name:        "mid-onboarding user allowed on onboarding pages",
			user:        ptr(testutil.PlayerDraftUser()),
			opts:        guard.Options{},
			wantAllowed: true,
		},
		{
			name:        "fresh user with no role allowed on onboarding pages",
			user:        ptr(testutil.FreshUser()),
			opts:        guard.Options{},
			wantAllowed: true,
		},
		{
			name:        "skip onboarding check lets draft user through role route",
			user:        ptr(testutil.TeamDraftUser()),
			opts:        guard.Options{Roles: []string{models.RoleTeam}, SkipOnboardingCheck: true},
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/some/page", nil)
			if tt.user != nil {
				req = testutil.WithUser(req, *tt.user)
			}
			rec := httptest.NewRecorder()

			u, ok := guard.Require(rec, req, tt.opts)

			if ok != tt.wantAllowed {
				t.Fatalf("allowed: got %v, want %v", ok, tt.wantAllowed)
			}
			if tt.wantAllowed {
				if u == nil {
					t.Fatal("expected session user, got nil")
				}
				if rec.Code == http.StatusSeeOther {
					t.Errorf("unexpected redirect to %q", rec.Header().Get("Location"))
				}
				return
			}
			if u != nil {
				t.Errorf("expected nil user on redirect, got %+v", u)
			}
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("redirect location: got %q, want %q", loc, tt.wantLocation)
			}
		})
	}
}

func TestRequireRolesMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _ := auth.CurrentUser(r)
		w.Write([]byte("hello " + u.Name))
	})
	mw := guard.RequireRoles(models.RolePlayer)(next)

	// Allowed role reaches the wrapped handler.
	req := testutil.NewAuthenticatedRequest("GET", "/player", testutil.PlayerUser())
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("player: got %d, want 200", rec.Code)
	}

	// Wrong role never reaches it.
	req = testutil.NewAuthenticatedRequest("GET", "/player", testutil.TeamUser())
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("team: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/team" {
		t.Errorf("team redirect: got %q, want /team", loc)
	}
}

func TestRequireOnboardingMiddleware(t *testing.T) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { reached = true })
	mw := guard.RequireOnboarding(next)

	req := testutil.NewAuthenticatedRequest("GET", "/setup/player/1", testutil.PlayerDraftUser())
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if !reached {
		t.Error("draft user should reach onboarding pages")
	}

	reached = false
	req = testutil.NewAuthenticatedRequest("GET", "/setup/player/1", testutil.PlayerUser())
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if reached {
		t.Error("onboarded user should be bounced from onboarding pages")
	}
	if loc := rec.Header().Get("Location"); loc != "/player" {
		t.Errorf("redirect: got %q, want /player", loc)
	}
}

func onboardedRoleless() testutil.TestUser {
	u := testutil.FreshUser()
	u.OnboardingCompleted = true
	return u
}

func ptr(u testutil.TestUser) *testutil.TestUser { return &u }
