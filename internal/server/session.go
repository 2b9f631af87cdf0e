package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/jonathan/fastlabor/internal/config"
	"github.com/jonathan/fastlabor/internal/records"
)

// SessionName is the cookie session shared with the matching page.
const SessionName = "fastlabor"

// Session keys read by the matching page.
const (
	SessionJobIndex    = "job_idx"
	SessionJobID       = "job_id"
	SessionSeekerIndex = "seeker_idx"
)

// SessionStore persists the selected record between this page and the
// matching page.
type SessionStore struct {
	store sessions.Store
}

// NewSessionStore creates a cookie-backed store from cfg.
func NewSessionStore(cfg *config.SessionConfig) *SessionStore {
	store := sessions.NewCookieStore(cfg.Key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{store: store}
}

// SaveSelection records a selected posting and clears any selected seeker,
// so the matching page starts from the posting.
func (s *SessionStore) SaveSelection(w http.ResponseWriter, r *http.Request, sel records.Selection) error {
	session, err := s.store.Get(r, SessionName)
	if err != nil && session == nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	session.Values[SessionJobIndex] = sel.Index
	session.Values[SessionJobID] = sel.RecordID
	delete(session.Values, SessionSeekerIndex)

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Selection returns the posting stored in the session, if any.
func (s *SessionStore) Selection(r *http.Request) (records.Selection, bool) {
	session, err := s.store.Get(r, SessionName)
	if err != nil || session == nil {
		return records.Selection{}, false
	}
	index, ok := session.Values[SessionJobIndex].(int)
	if !ok {
		return records.Selection{}, false
	}
	id, _ := session.Values[SessionJobID].(string)
	return records.Selection{Kind: records.KindPosting, Index: index, RecordID: id}, true
}
