package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylex-lang/stylex/core/types"
)

func TestValidateDocument(t *testing.T) {
	doc, err := ValidateDocument([]byte(`{
		"version": "1.2.0",
		"property": "fill-color",
		"type": "color",
		"expression": ["to-color", "#ff0000"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "fill-color", doc.Property)
	assert.Equal(t, types.ColorT, doc.ExpectedType())

	raw, err := doc.RawExpression()
	require.NoError(t, err)
	arr, ok := raw.([]any)
	require.True(t, ok)
	assert.Equal(t, "to-color", arr[0])
}

func TestValidateDocumentRejectsMissingFields(t *testing.T) {
	_, err := ValidateDocument([]byte(`{"version": "1.0.0", "type": "color"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestValidateDocumentRejectsUnknownFields(t *testing.T) {
	_, err := ValidateDocument([]byte(`{
		"version": "1.0.0",
		"property": "p",
		"type": "number",
		"expression": 1,
		"extra": true
	}`))
	require.Error(t, err)
}

func TestValidateDocumentRejectsBadVersion(t *testing.T) {
	_, err := ValidateDocument([]byte(`{
		"version": "not-a-version",
		"property": "p",
		"type": "number",
		"expression": 1
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "semantic version")
}

func TestValidateDocumentRejectsUnknownType(t *testing.T) {
	_, err := ValidateDocument([]byte(`{
		"version": "1.0.0",
		"property": "p",
		"type": "gradient",
		"expression": 1
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown expected type "gradient"`)
}

func TestValidateDocumentRejectsInvalidJSON(t *testing.T) {
	_, err := ValidateDocument([]byte(`{`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}
