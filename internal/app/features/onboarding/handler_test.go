package onboarding_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/sessions"
	uierrors "github.com/varzeapro/varzeapro/internal/app/features/errors"
	"github.com/varzeapro/varzeapro/internal/app/features/onboarding"
	"github.com/varzeapro/varzeapro/internal/app/system/wizard"
	"github.com/varzeapro/varzeapro/internal/domain/models"
	"github.com/varzeapro/varzeapro/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*onboarding.Handler, *wizard.Store) {
	t.Helper()
	logger := zap.NewNop()
	cs := sessions.NewCookieStore([]byte("test-session-key-for-testing-only"))
	drafts := wizard.NewStore(cs, logger)
	// No DB in these tests; the paths exercised stop before the stores.
	h := onboarding.NewHandler(nil, nil, nil, drafts, nil, uierrors.NewErrorLogger(logger), logger)
	return h, drafts
}

// withDraft seeds the draft cookie onto req as a prior wizard page would.
func withDraft(t *testing.T, drafts *wizard.Store, req *http.Request, d wizard.Draft) *http.Request {
	t.Helper()
	seed := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	if err := drafts.Save(rec, seed, d); err != nil {
		t.Fatalf("seed draft: %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func playerDraft(step int) wizard.Draft {
	d := wizard.NewDraft()
	d.SetRole(models.RolePlayer)
	d.SetStep(step)
	return d
}

func teamDraft(step int) wizard.Draft {
	d := wizard.NewDraft()
	d.SetRole(models.RoleTeam)
	d.SetStep(step)
	return d
}

func TestServePlayerSetupRoot_ResumesAtCurrentStep(t *testing.T) {
	h, drafts := newTestHandler(t)

	req := httptest.NewRequest("GET", "/setup/player", nil)
	req = withDraft(t, drafts, req, playerDraft(3))
	rec := httptest.NewRecorder()

	h.ServePlayerSetupRoot(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/setup/player/steps/location" {
		t.Errorf("Location: got %q, want /setup/player/steps/location", loc)
	}
}

func TestServeTeamSetupRoot_WrongTrackGoesToWelcome(t *testing.T) {
	h, drafts := newTestHandler(t)

	req := httptest.NewRequest("GET", "/setup/team", nil)
	req = withDraft(t, drafts, req, playerDraft(2))
	rec := httptest.NewRecorder()

	h.ServeTeamSetupRoot(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/welcome" {
		t.Errorf("Location: got %q, want /welcome", loc)
	}
}

func TestHandlePlayerLocationPost_NextAdvancesAndSaves(t *testing.T) {
	h, drafts := newTestHandler(t)

	form := url.Values{
		"city":   {"Recife"},
		"state":  {"pe"},
		"radius": {"15"},
		"nav":    {"next"},
	}
	req := testutil.NewFormRequest("/setup/player/steps/location", form)
	req = withDraft(t, drafts, req, playerDraft(3))
	rec := httptest.NewRecorder()

	h.HandlePlayerLocationPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/setup/player/steps/skill" {
		t.Errorf("Location: got %q, want /setup/player/steps/skill", loc)
	}

	// The response cookie carries the merged draft.
	next := httptest.NewRequest("GET", "/setup/player/steps/skill", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	saved := drafts.Load(next)
	if saved.Player.City != "Recife" || saved.Player.State != "PE" || saved.Player.RadiusKm != 15 {
		t.Errorf("saved draft: %+v", saved.Player)
	}
	if saved.CurrentStep != 4 {
		t.Errorf("CurrentStep: got %d, want 4", saved.CurrentStep)
	}
}

func TestHandlePlayerLocationPost_InvalidBlocksNext(t *testing.T) {
	h, drafts := newTestHandler(t)

	form := url.Values{
		"city":   {""},
		"state":  {"PE"},
		"radius": {"15"},
		"nav":    {"next"},
	}
	req := testutil.NewFormRequest("/setup/player/steps/location", form)
	req = withDraft(t, drafts, req, playerDraft(3))
	rec := httptest.NewRecorder()

	testutil.CallRenderPath(t, func() {
		h.HandlePlayerLocationPost(rec, req)
	})

	if rec.Code == http.StatusSeeOther {
		t.Errorf("invalid step should not advance, got redirect to %q", rec.Header().Get("Location"))
	}
}

func TestHandlePlayerSkillPost_PrevGoesBack(t *testing.T) {
	h, drafts := newTestHandler(t)

	form := url.Values{
		"skill_level": {"4"},
		"nav":         {"prev"},
	}
	req := testutil.NewFormRequest("/setup/player/steps/skill", form)
	req = withDraft(t, drafts, req, playerDraft(4))
	rec := httptest.NewRecorder()

	h.HandlePlayerSkillPost(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/setup/player/steps/location" {
		t.Errorf("Location: got %q, want /setup/player/steps/location", loc)
	}
}

func TestPlayerPostOnTeamTrackGoesToWelcome(t *testing.T) {
	h, drafts := newTestHandler(t)

	form := url.Values{"city": {"Recife"}, "state": {"PE"}, "radius": {"10"}, "nav": {"next"}}
	req := testutil.NewFormRequest("/setup/player/steps/location", form)
	req = withDraft(t, drafts, req, teamDraft(2))
	rec := httptest.NewRecorder()

	h.HandlePlayerLocationPost(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/welcome" {
		t.Errorf("Location: got %q, want /welcome", loc)
	}
}

func TestHandleTeamSchedulePost_NextAdvancesAndSaves(t *testing.T) {
	h, drafts := newTestHandler(t)

	form := url.Values{
		"modality":  {"Futsal"},
		"game_days": {"sabado", "domingo"},
		"game_time": {"16:00"},
		"nav":       {"next"},
	}
	req := testutil.NewFormRequest("/setup/team/steps/schedule", form)
	req = withDraft(t, drafts, req, teamDraft(3))
	rec := httptest.NewRecorder()

	h.HandleTeamSchedulePost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/setup/team/steps/level" {
		t.Errorf("Location: got %q, want /setup/team/steps/level", loc)
	}

	next := httptest.NewRequest("GET", "/setup/team/steps/level", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	saved := drafts.Load(next)
	if saved.Team.Modality != "Futsal" || len(saved.Team.GameDays) != 2 {
		t.Errorf("saved draft: %+v", saved.Team)
	}
}

func TestHandleTeamSchedulePost_MissingModalityBlocksNext(t *testing.T) {
	h, drafts := newTestHandler(t)

	form := url.Values{"game_days": {"sabado"}, "nav": {"next"}}
	req := testutil.NewFormRequest("/setup/team/steps/schedule", form)
	req = withDraft(t, drafts, req, teamDraft(3))
	rec := httptest.NewRecorder()

	testutil.CallRenderPath(t, func() {
		h.HandleTeamSchedulePost(rec, req)
	})

	if rec.Code == http.StatusSeeOther {
		t.Errorf("missing modality should not advance, got %q", rec.Header().Get("Location"))
	}
}

func TestHandlePlayerFinalize_RequiresSignIn(t *testing.T) {
	h, drafts := newTestHandler(t)

	req := testutil.NewFormRequest("/setup/player/finalize", url.Values{})
	req = withDraft(t, drafts, req, playerDraft(4))
	rec := httptest.NewRecorder()

	h.HandlePlayerFinalize(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/sign-in" {
		t.Errorf("Location: got %q, want /sign-in", loc)
	}
}

func TestHandlePlayerFinalize_IncompleteDraftReRendersWithErrors(t *testing.T) {
	h, drafts := newTestHandler(t)

	// Draft is missing positions and location; validation must stop the
	// submit before anything touches the database.
	d := playerDraft(4)
	d.Player.SkillLevel = 3

	form := url.Values{"skill_level": {"3"}}
	req := testutil.NewFormRequest("/setup/player/finalize", form)
	req = withDraft(t, drafts, req, d)
	req = testutil.WithUser(req, testutil.PlayerDraftUser())
	rec := httptest.NewRecorder()

	testutil.CallRenderPath(t, func() {
		h.HandlePlayerFinalize(rec, req)
	})

	if rec.Code == http.StatusSeeOther {
		t.Errorf("incomplete draft should not finalize, got redirect to %q", rec.Header().Get("Location"))
	}
}

func TestHandleTeamFinalize_WrongTrackGoesToWelcome(t *testing.T) {
	h, drafts := newTestHandler(t)

	req := testutil.NewFormRequest("/setup/team/finalize", url.Values{})
	req = withDraft(t, drafts, req, playerDraft(4))
	req = testutil.WithUser(req, testutil.TeamDraftUser())
	rec := httptest.NewRecorder()

	h.HandleTeamFinalize(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/welcome" {
		t.Errorf("Location: got %q, want /welcome", loc)
	}
}
