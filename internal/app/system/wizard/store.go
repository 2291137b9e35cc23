// internal/app/system/wizard/store.go
package wizard

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// CookieName is the dedicated cookie holding the onboarding draft,
// separate from the auth session cookie.
const CookieName = "varzea_onboarding"

const draftKey = "draft"

// Store persists the Draft across page loads in a signed cookie session.
// The draft is JSON-encoded; FileRef fields carry json:"-" so binary
// handles never reach the cookie.
type Store struct {
	store *sessions.CookieStore
	log   *zap.Logger
}

// NewStore builds a draft store over the given cookie store. The caller
// usually shares the auth SessionManager's underlying store so both
// cookies carry the same signing key and options.
func NewStore(cs *sessions.CookieStore, logger *zap.Logger) *Store {
	return &Store{store: cs, log: logger}
}

// Load returns the request's draft, or a fresh one when the cookie is
// absent or unreadable. A corrupt draft cookie is not an error the user
// can act on; they simply start over.
func (st *Store) Load(r *http.Request) Draft {
	sess, err := st.store.Get(r, CookieName)
	if err != nil {
		st.log.Warn("draft cookie decode failed; starting fresh", zap.Error(err))
		return NewDraft()
	}

	raw, _ := sess.Values[draftKey].(string)
	if raw == "" {
		return NewDraft()
	}

	draft := NewDraft()
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		st.log.Warn("draft cookie unmarshal failed; starting fresh", zap.Error(err))
		return NewDraft()
	}
	if draft.CurrentStep < 1 {
		draft.CurrentStep = 1
	}
	return draft
}

// Save writes the draft back to the cookie. File refs are dropped by the
// JSON tags, so a photo or badge chosen earlier in the session will not
// survive a reload.
func (st *Store) Save(w http.ResponseWriter, r *http.Request, d Draft) error {
	sess, err := st.store.Get(r, CookieName)
	if err != nil {
		// Get returns a usable fresh session alongside decode errors.
		st.log.Warn("draft cookie decode failed on save; overwriting", zap.Error(err))
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	sess.Values[draftKey] = string(raw)
	return sess.Save(r, w)
}

// Clear removes the draft cookie entirely. Called after a successful
// finalize and when the user restarts onboarding.
func (st *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := st.store.Get(r, CookieName)
	delete(sess.Values, draftKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
