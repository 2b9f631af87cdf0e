package myjobs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fastlabor/internal/records"
	"github.com/jonathan/fastlabor/internal/sheets"
)

func testSource() sheets.StaticSource {
	return sheets.StaticSource{
		sheets.DefaultPostSheet: {
			{"Job ID", "Job Type", "Job Address", "Province", "District", "Subdistrict", "Start Salary", "Range Salary", "Salary", "Email"},
			{"J1", "Cleaning", "", "BKK", "Lat Phrao", "Chorakhe", "100", "200", "", "me@example.com"},
			{"J2", "Moving", "", "BKK", "Bang Rak", "Si Lom", "", "", "500", "other@example.com"},
			{"J3", "Cooking", "", "BKK", "Bang Rak", "Si Lom", "", "", "500", "me@example.com"},
		},
		sheets.DefaultFindSheet: {
			{"FindJob ID", "Skills", "Province", "District", "Subdistrict", "Start Salary", "Range Salary", "Email"},
			{"F1", "Driving", "BKK", "Lat Phrao", "Chorakhe", "", "900", "me@example.com"},
		},
	}
}

type failingSource struct{}

func (failingSource) Values(context.Context, string) (*records.Table, error) {
	return nil, errors.New("quota exceeded")
}

func TestService_Load(t *testing.T) {
	svc := NewService(testSource(), Options{Logger: zerolog.Nop()})

	view, err := svc.Load(context.Background(), "me@example.com")
	require.NoError(t, err)

	require.Len(t, view.Postings, 2)
	assert.Equal(t, "J1", view.Postings[0].ID)
	assert.Equal(t, "100 – 200", view.Postings[0].Salary)
	assert.Equal(t, "J3", view.Postings[1].ID)
	assert.Equal(t, "500", view.Postings[1].Salary)

	require.Len(t, view.Searches, 1)
	assert.Equal(t, "-", view.Searches[0].MinSalary)
	assert.Equal(t, "900", view.Searches[0].MaxSalary)
}

func TestService_Load_EmptyState(t *testing.T) {
	svc := NewService(testSource(), Options{Logger: zerolog.Nop()})

	view, err := svc.Load(context.Background(), "newcomer@example.com")
	require.NoError(t, err)
	assert.False(t, view.HasPostings())
	assert.False(t, view.HasSearches())
}

func TestService_Load_FetchError(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(failingSource{}, Options{Logger: zerolog.New(&buf)})

	_, err := svc.Load(context.Background(), "me@example.com")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Contains(t, buf.String(), "sheet fetch failed")
}

func TestService_CustomSheetNames(t *testing.T) {
	src := sheets.StaticSource{
		"offers":   {{"email"}, {"me@example.com"}},
		"requests": {{"email"}},
	}
	svc := NewService(src, Options{PostSheet: "offers", FindSheet: "requests", Logger: zerolog.Nop()})

	view, err := svc.Load(context.Background(), "me@example.com")
	require.NoError(t, err)
	assert.Len(t, view.Postings, 1)

	_, err = NewService(src, Options{Logger: zerolog.Nop()}).Load(context.Background(), "me@example.com")
	var notFound *sheets.SheetNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestService_SelectPosting(t *testing.T) {
	svc := NewService(testSource(), Options{Logger: zerolog.Nop()})

	sel, err := svc.SelectPosting(context.Background(), "me@example.com", 1)
	require.NoError(t, err)
	assert.Equal(t, records.KindPosting, sel.Kind)
	assert.Equal(t, 1, sel.Index)
	assert.Equal(t, "J3", sel.RecordID)

	_, err = svc.SelectPosting(context.Background(), "me@example.com", 5)
	var rangeErr *records.ErrSelectionOutOfRange
	assert.ErrorAs(t, err, &rangeErr)
}
