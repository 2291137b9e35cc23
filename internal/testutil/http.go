package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID                  string
	Name                string
	Email               string
	Role                string
	OnboardingCompleted bool
}

// FreshUser returns a TestUser that just signed up: no role, not onboarded.
func FreshUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Conta Nova",
		Email: "nova@test.com",
	}
}

// PlayerDraftUser returns a TestUser mid-onboarding on the player track.
func PlayerDraftUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Jogador Teste",
		Email: "jogador@test.com",
		Role:  models.RolePlayer,
	}
}

// TeamDraftUser returns a TestUser mid-onboarding on the team track.
func TeamDraftUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Time Teste",
		Email: "time@test.com",
		Role:  models.RoleTeam,
	}
}

// PlayerUser returns a fully onboarded player.
func PlayerUser() TestUser {
	u := PlayerDraftUser()
	u.OnboardingCompleted = true
	return u
}

// TeamUser returns a fully onboarded team account.
func TeamUser() TestUser {
	u := TeamDraftUser()
	u.OnboardingCompleted = true
	return u
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:                  user.ID,
		Name:                user.Name,
		Email:               user.Email,
		Role:                user.Role,
		OnboardingCompleted: user.OnboardingCompleted,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithUser(req, user)
}

// NewFormRequest creates a POST request with form-encoded values, as a
// browser form submit would send them.
func NewFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// CallRenderPath invokes a handler whose happy path ends in a template
// render. Handler tests run without a booted template engine, so the render
// itself may panic; that panic is absorbed. A panic whose stack reaches into
// a store is a different animal: it means the handler let input through
// that its validation should have rejected, and the test fails.
func CallRenderPath(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if strings.Contains(string(debug.Stack()), "/internal/app/store/") {
			t.Fatalf("handler reached a store with input its validation should have rejected: %v", r)
		}
	}()
	fn()
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
