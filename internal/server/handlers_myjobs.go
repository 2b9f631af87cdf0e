package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/fastlabor/internal/rendering"
	"github.com/jonathan/fastlabor/internal/server/middleware"
)

// handleMyJobsJSON returns the caller's view as JSON.
func (s *Server) handleMyJobsJSON(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.GetEmail(r)
	if err != nil {
		s.unauthorizedResponse(w, r)
		return
	}

	view, err := s.myJobs.Load(r.Context(), email)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, view)
}

// handleMyJobsMarkdown returns the caller's view as a markdown document.
func (s *Server) handleMyJobsMarkdown(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.GetEmail(r)
	if err != nil {
		s.unauthorizedResponse(w, r)
		return
	}

	view, err := s.myJobs.Load(r.Context(), email)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(rendering.ViewMarkdown(view))); err != nil {
		s.logger.Error().Err(err).Msg("failed to write markdown response")
	}
}

// handleMyJobsPage renders the My Jobs HTML page.
func (s *Server) handleMyJobsPage(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.GetEmail(r)
	if err != nil {
		http.Redirect(w, r, s.loginURL, http.StatusSeeOther)
		return
	}

	view, err := s.myJobs.Load(r.Context(), email)
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Render(w, rendering.NewPageData(view, s.homeURL)); err != nil {
		s.pageError(w, r, err)
	}
}

// handleSelectPosting stores the chosen posting in the session and sends
// the user to the matching page.
func (s *Server) handleSelectPosting(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.GetEmail(r)
	if err != nil {
		http.Redirect(w, r, s.loginURL, http.StatusSeeOther)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.pageError(w, r, &ErrValidation{Field: "index", Message: "must be an integer"})
		return
	}

	sel, err := s.myJobs.SelectPosting(r.Context(), email, index)
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	if err := s.sessions.SaveSelection(w, r, sel); err != nil {
		s.pageError(w, r, err)
		return
	}

	s.logger.Debug().
		Str("request_id", middleware.GetRequestID(r)).
		Int("index", sel.Index).
		Str("record_id", sel.RecordID).
		Msg("posting selected")

	http.Redirect(w, r, s.matchingURL, http.StatusSeeOther)
}

// pageError answers a page request with a plain-text error.
func (s *Server) pageError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", middleware.GetRequestID(r)).Msg("page failed")
	}
	http.Error(w, publicMessage(err), status)
}
