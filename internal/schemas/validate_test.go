package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalDoc(t *testing.T, doc types.RFP) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestValidateDocument_Defaults(t *testing.T) {
	assert.NoError(t, ValidateDocument(marshalDoc(t, types.NewRFP())))
}

func TestValidateDocument_PartialDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument([]byte(`{"companyName":"Acme"}`)))
	assert.NoError(t, ValidateDocument([]byte(`{}`)))
}

func TestValidateDocument_WithDiagram(t *testing.T) {
	doc := types.NewRFP()
	doc.BlockFlowDiagram = "data:image/png;base64,iVBORw0KGgo="
	assert.NoError(t, ValidateDocument(marshalDoc(t, doc)))
}

func TestValidateDocument_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{name: "wrong scalar type", input: `{"companyName": 42}`, field: "companyName"},
		{name: "unknown field", input: `{"companyNmae": "Acme"}`, field: "(root)"},
		{name: "unknown feedstock type", input: `{"feedstocks":[{"id":"x","type":"footer"}]}`, field: "feedstocks.0.type"},
		{name: "row without id", input: `{"abbreviations":[{"abbr":"RFP"}]}`, field: "abbreviations.0"},
		{name: "selection not boolean", input: `{"deliverables":{"Process Design Package (PDP)":"yes"}}`, field: "deliverables.Process Design Package (PDP)"},
		{name: "diagram not an image", input: `{"blockFlowDiagram":"https://example.com/a.png"}`, field: "blockFlowDiagram"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument([]byte(tt.input))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)

			var fields []string
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateDocument_Malformed(t *testing.T) {
	err := ValidateDocument([]byte("{ invalid json }"))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestValidateJSON_Files(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["projectName"],
		"properties": {"projectName": {"type": "string"}}
	}`), 0644))

	valid := filepath.Join(tmpDir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"projectName":"Unit 3"}`), 0644))
	assert.NoError(t, ValidateJSON(schemaPath, valid))

	invalid := filepath.Join(tmpDir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"companyName":"Acme"}`), 0644))
	err := ValidateJSON(schemaPath, invalid)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSON_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	err := ValidateJSON(filepath.Join(tmpDir, "missing_schema.json"), filepath.Join(tmpDir, "doc.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	schemaPath := filepath.Join(tmpDir, "schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"type":"object"}`), 0644))
	err = ValidateJSON(schemaPath, filepath.Join(tmpDir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestSchemaLoadError(t *testing.T) {
	err := &SchemaLoadError{Path: "x.json", Message: "bad"}
	assert.Equal(t, "failed to load schema x.json: bad", err.Error())
	assert.Nil(t, err.Unwrap())
}
