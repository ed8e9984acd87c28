package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateBytes(t *testing.T) {
	schemaPath := writeSchema(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"key": {"type": "string"},
				"base_points": {"type": "number", "exclusiveMinimum": 0}
			},
			"required": ["key", "base_points"],
			"additionalProperties": false
		}
	}`)

	sv := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
		contains  string
	}{
		{
			name: "valid list",
			data: `[{"key": "farm", "base_points": 80}, {"key": "quarry", "base_points": 140}]`,
		},
		{
			name: "empty list",
			data: `[]`,
		},
		{
			name:      "missing required field",
			data:      `[{"key": "farm"}]`,
			wantError: true,
			contains:  "required",
		},
		{
			name:      "zero cost rejected",
			data:      `[{"key": "farm", "base_points": 0}]`,
			wantError: true,
			contains:  "/0/base_points",
		},
		{
			name:      "unknown property rejected",
			data:      `[{"key": "farm", "base_points": 80, "colour": "red"}]`,
			wantError: true,
		},
		{
			name:      "malformed JSON",
			data:      `[{"key": }]`,
			wantError: true,
			contains:  "parse JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sv.ValidateBytes([]byte(tt.data), schemaPath)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	schemaPath := writeSchema(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["key"]
	}`)

	dataPath := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"key": "festival"}`), 0644))

	sv := NewSchemaValidator()
	assert.NoError(t, sv.ValidateFile(dataPath, schemaPath))

	err := sv.ValidateFile(filepath.Join(t.TempDir(), "missing.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestMissingSchemaFile(t *testing.T) {
	sv := NewSchemaValidator()
	err := sv.ValidateBytes([]byte(`{}`), filepath.Join(t.TempDir(), "nope.schema.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestCompiledSchemasAreCached(t *testing.T) {
	schemaPath := writeSchema(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object"
	}`)

	sv := NewSchemaValidator().(*schemaValidator)
	require.NoError(t, sv.ValidateBytes([]byte(`{}`), schemaPath))
	require.Len(t, sv.schemas, 1)

	require.NoError(t, sv.ValidateBytes([]byte(`{"any": 1}`), schemaPath))
	assert.Len(t, sv.schemas, 1)
}
