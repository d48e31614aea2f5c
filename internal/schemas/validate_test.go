package schemas

import (
	"errors"
	"path/filepath"
	"testing"

	rootschemas "github.com/jonathan/advert-generator/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_Valid(t *testing.T) {
	err := ValidateJSON(filepath.Join("testdata", "style_schema.json"), filepath.Join("testdata", "valid.json"))
	assert.NoError(t, err)
}

func TestValidateJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		field string
	}{
		{"missing field", "missing_company.json", "(root)"},
		{"wrong type", "type_mismatch.json", "company"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(filepath.Join("testdata", "style_schema.json"), filepath.Join("testdata", tt.file))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.field, validationErr.Errors[0].Field)
		})
	}
}

func TestValidateJSON_NotFound(t *testing.T) {
	err := ValidateJSON("testdata/nonexistent_schema.json", filepath.Join("testdata", "valid.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(filepath.Join("testdata", "style_schema.json"), "testdata/nonexistent.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "Chemist"}`))

	err := ValidateJSONString(schema, `{}`)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(`{"type": "object"}`, `{not json`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateEmbedded_HouseStyle(t *testing.T) {
	valid := []byte(`{
		"company": "Neogen",
		"closing_line": "Please press Apply to submit your application.",
		"headers": ["Location", "Benefits"],
		"model_tier": "standard"
	}`)
	assert.NoError(t, ValidateEmbedded(rootschemas.HouseStyle, valid))

	invalid := []byte(`{"company": "", "headers": [], "colour": "green"}`)
	err := ValidateEmbedded(rootschemas.HouseStyle, invalid)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.GreaterOrEqual(t, len(validationErr.Errors), 3)
}

func TestValidateEmbedded_UnknownSchema(t *testing.T) {
	err := ValidateEmbedded("missing.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "company", Message: "is required"},
		{Field: "headers", Message: "must have at least 1 item"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "1. company: is required")
	assert.Contains(t, msg, "2. headers: must have at least 1 item")
}
