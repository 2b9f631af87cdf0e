package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fastlabor/internal/myjobs"
	"github.com/jonathan/fastlabor/internal/records"
	"github.com/jonathan/fastlabor/internal/sheets"
)

const postCSV = `Job ID,Job Type,Job Detail,Job Date,Start Time,End Time,Job Address,Province,District,Subdistrict,Start Salary,Range Salary,Salary,Email
J1,Cleaning,Office,2024-05-01,08:00,12:00,,BKK,Lat Phrao,Chorakhe,100,200,,me@example.com
J2,Moving,Boxes,2024-05-02,09:00,17:00,,BKK,Bang Rak,Si Lom,,,500,other@example.com
`

const findCSV = `FindJob ID,Job Type,Skills,Job Date,Start Time,End Time,Province,District,Subdistrict,Start Salary,Range Salary,Email
F1,Driving,Car,2024-06-01,07:00,15:00,BKK,Lat Phrao,Chorakhe,,900,me@example.com
`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post_job.csv"), []byte(postCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "find_job.csv"), []byte(findCSV), 0o644))
	return dir
}

func fixtureService(t *testing.T) *myjobs.Service {
	t.Helper()
	return myjobs.NewService(sheets.NewCSVSource(writeFixtures(t)), myjobs.Options{Logger: zerolog.Nop()})
}

func TestPrintMyJobs_Markdown(t *testing.T) {
	var out bytes.Buffer
	err := printMyJobs(context.Background(), fixtureService(t), myJobsOptions{
		Email:  "me@example.com",
		Format: formatMarkdown,
	}, &out, zerolog.Nop())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "### Job ID: J1")
	assert.Contains(t, out.String(), "| Salary | 100 – 200 |")
	assert.Contains(t, out.String(), "### Find ID: F1")
	assert.NotContains(t, out.String(), "J2")
}

func TestPrintMyJobs_Table(t *testing.T) {
	var out bytes.Buffer
	err := printMyJobs(context.Background(), fixtureService(t), myJobsOptions{
		Email:  "me@example.com",
		Format: formatTable,
	}, &out, zerolog.Nop())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "BKK/Lat Phrao/Chorakhe")
	assert.Contains(t, out.String(), "J1")
	assert.Contains(t, out.String(), "F1")
}

func TestPrintMyJobs_JSONToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "view.json")

	var stdout bytes.Buffer
	err := printMyJobs(context.Background(), fixtureService(t), myJobsOptions{
		Email:  "me@example.com",
		Format: formatJSON,
		Output: outPath,
	}, &stdout, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var view records.View
	require.NoError(t, json.Unmarshal(data, &view))
	require.Len(t, view.Postings, 1)
	assert.Equal(t, "100 – 200", view.Postings[0].Salary)
	require.Len(t, view.Searches, 1)
	assert.Equal(t, "900", view.Searches[0].MaxSalary)
}

func TestPrintMyJobs_JSONEmptyState(t *testing.T) {
	var out bytes.Buffer
	err := printMyJobs(context.Background(), fixtureService(t), myJobsOptions{
		Email:  "nobody@example.com",
		Format: formatJSON,
	}, &out, zerolog.Nop())
	require.NoError(t, err)

	assert.JSONEq(t, `{"email":"nobody@example.com","postings":[],"searches":[]}`, out.String())
}

func TestPrintMyJobs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    myJobsOptions
		wantErr string
	}{
		{name: "missing email", opts: myJobsOptions{Format: formatTable}, wantErr: "--email is required"},
		{name: "unknown format", opts: myJobsOptions{Email: "me@example.com", Format: "xml"}, wantErr: "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := printMyJobs(context.Background(), fixtureService(t), tt.opts, &bytes.Buffer{}, zerolog.Nop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

type failingLoader struct{}

func (failingLoader) Load(context.Context, string) (*records.View, error) {
	return nil, &myjobs.FetchError{Cause: errors.New("offline")}
}

func TestPrintMyJobs_LoadError(t *testing.T) {
	err := printMyJobs(context.Background(), failingLoader{}, myJobsOptions{
		Email:  "me@example.com",
		Format: formatTable,
	}, &bytes.Buffer{}, zerolog.Nop())

	var fetchErr *myjobs.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to load my jobs"))
}
