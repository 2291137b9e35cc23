// Package guard implements the role-gated access check run at the top of
// every protected route, before any page content is produced.
//
// Per request the guard walks a three-state decision: Unauthenticated,
// OnboardingIncomplete, OnboardingComplete. The terminal action is either
// "return the session and let the page render" or a 303 redirect that ends
// the request. The guard never returns an error to its caller; a session
// that fails to resolve is indistinguishable from no session at all.
package guard

import (
	"net/http"

	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/domain/models"
)

// Route targets the guard redirects to.
const (
	SignInPath  = "/sign-in"
	WelcomePath = "/welcome"
)

// DashboardPath returns the dashboard route for a role, or "" when the role
// has no dashboard of its own.
func DashboardPath(role string) string {
	switch role {
	case models.RolePlayer:
		return "/player"
	case models.RoleTeam:
		return "/team"
	}
	return ""
}

// Options control a single guard invocation.
type Options struct {
	// Roles allowed to view the route. Empty means the route is an
	// onboarding-only page with no role requirement.
	Roles []string

	// SkipOnboardingCheck disables the incomplete-onboarding rules. The
	// default (false) enforces them, matching every current caller.
	SkipOnboardingCheck bool
}

// Require resolves the caller's session and applies the access rules.
// On success it returns the session user and true. On any redirect it
// writes the response and returns false; the handler must stop.
func Require(w http.ResponseWriter, r *http.Request, opts Options) (*auth.SessionUser, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, SignInPath, http.StatusSeeOther)
		return nil, false
	}

	if u.OnboardingCompleted {
		if len(opts.Roles) > 0 {
			if !roleAllowed(u.Role, opts.Roles) {
				// Wrong role: send the caller to their own dashboard.
				// A user with no role at all passes through.
				if dest := DashboardPath(u.Role); dest != "" {
					http.Redirect(w, r, dest, http.StatusSeeOther)
					return nil, false
				}
			}
			return u, true
		}

		// Onboarding-only page: onboarded users may not re-enter.
		if dest := DashboardPath(u.Role); dest != "" {
			http.Redirect(w, r, dest, http.StatusSeeOther)
			return nil, false
		}
		return u, true
	}

	// Onboarding incomplete.
	if !opts.SkipOnboardingCheck && len(opts.Roles) > 0 {
		http.Redirect(w, r, WelcomePath, http.StatusSeeOther)
		return nil, false
	}
	return u, true
}

// RequireRoles is the middleware form of Require for route groups whose
// every handler shares the same allowed-roles set.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := Require(w, r, Options{Roles: roles}); !ok {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOnboarding is the middleware form for onboarding pages (no role
// requirement; onboarded users are bounced to their dashboard).
func RequireOnboarding(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := Require(w, r, Options{}); !ok {
			return
		}
		next.ServeHTTP(w, r)
	})
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
