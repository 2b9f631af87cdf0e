// Package myjobs assembles the My Jobs view of a user from the shared
// spreadsheet. Every call reads the sheets fresh; nothing is cached.
package myjobs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/fastlabor/internal/records"
	"github.com/jonathan/fastlabor/internal/sheets"
)

// FetchError indicates the spreadsheet could not be read
type FetchError struct {
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch sheets: %v", e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Options configures a Service. Empty sheet names fall back to the
// spreadsheet defaults.
type Options struct {
	PostSheet string
	FindSheet string
	Logger    zerolog.Logger
}

// Service loads per-user views from a sheets.Source.
type Service struct {
	source    sheets.Source
	postSheet string
	findSheet string
	logger    zerolog.Logger
}

// NewService creates a Service reading from src.
func NewService(src sheets.Source, opts Options) *Service {
	if opts.PostSheet == "" {
		opts.PostSheet = sheets.DefaultPostSheet
	}
	if opts.FindSheet == "" {
		opts.FindSheet = sheets.DefaultFindSheet
	}
	return &Service{
		source:    src,
		postSheet: opts.PostSheet,
		findSheet: opts.FindSheet,
		logger:    opts.Logger.With().Str("component", "myjobs").Logger(),
	}
}

// Load reads both sheets and builds the view for email. A user without
// records gets an empty view, not an error.
func (s *Service) Load(ctx context.Context, email string) (*records.View, error) {
	start := time.Now()

	postTable, findTable, err := sheets.FetchPair(ctx, s.source, s.postSheet, s.findSheet)
	if err != nil {
		s.logger.Error().Err(err).Msg("sheet fetch failed")
		return nil, &FetchError{Cause: err}
	}

	view := records.BuildView(postTable, findTable, email)

	s.logger.Debug().
		Int("post_rows", postTable.Len()).
		Int("find_rows", findTable.Len()).
		Int("postings", len(view.Postings)).
		Int("searches", len(view.Searches)).
		Dur("elapsed", time.Since(start)).
		Msg("view built")

	return view, nil
}

// SelectPosting reloads the view for email and resolves the posting at
// index, as listed on the page.
func (s *Service) SelectPosting(ctx context.Context, email string, index int) (records.Selection, error) {
	view, err := s.Load(ctx, email)
	if err != nil {
		return records.Selection{}, err
	}
	return records.SelectPosting(view, index)
}
