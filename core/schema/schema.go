// Package schema validates style property documents: the JSON envelope
// that carries a raw expression together with the property it styles and
// the type the expression must produce.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"

	"github.com/stylex-lang/stylex/core/types"
)

// Document is a style property document.
type Document struct {
	Version    string          `json:"version"`
	Property   string          `json:"property"`
	Type       string          `json:"type"`
	Expression json.RawMessage `json:"expression"`
}

const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "property", "type", "expression"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "property": {"type": "string", "minLength": 1},
    "type": {"type": "string", "minLength": 1},
    "expression": {}
  },
  "additionalProperties": false
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func documentValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = jsonschema.CompileString("document.schema.json", documentSchema)
	})
	return compiled, compileErr
}

// ValidateDocument checks data against the document schema plus the
// constraints JSON Schema cannot express: the version must be a semantic
// version and the type must name a known kind. It returns the decoded
// document on success.
func ValidateDocument(data []byte) (*Document, error) {
	validator, err := documentValidator()
	if err != nil {
		return nil, fmt.Errorf("schema compilation failed: %w", err)
	}

	var instance any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&instance); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validator.Validate(instance); err != nil {
		return nil, fmt.Errorf("document does not conform to schema: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	version := doc.Version
	if !semver.IsValid("v" + version) {
		return nil, fmt.Errorf("version %q is not a valid semantic version", version)
	}
	if _, ok := types.KindFromName(doc.Type); !ok {
		return nil, fmt.Errorf("unknown expected type %q", doc.Type)
	}
	return &doc, nil
}

// ExpectedType returns the document's declared output type.
func (d *Document) ExpectedType() types.Type {
	t, _ := types.KindFromName(d.Type)
	return t
}

// RawExpression decodes the document's expression into the JSON value
// shape the expression parser consumes.
func (d *Document) RawExpression() (any, error) {
	var raw any
	if err := json.Unmarshal(d.Expression, &raw); err != nil {
		return nil, fmt.Errorf("invalid expression JSON: %w", err)
	}
	return raw, nil
}
