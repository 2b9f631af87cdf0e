package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fastlabor/internal/schemas"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"my_jobs.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var schema map[string]any
			require.NoError(t, json.Unmarshal(content, &schema))
			assert.Equal(t, "object", schema["type"])
		})
	}
}

func TestMyJobsSchema_RejectsUnknownFields(t *testing.T) {
	doc := []byte(`{"email":"me@example.com","postings":[],"searches":[],"job_idx":0}`)

	err := schemas.ValidateBytes("my_jobs.schema.json", doc)

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
