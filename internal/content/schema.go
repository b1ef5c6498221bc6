package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const poolSchemaURL = "schema://content-pool.json"

// poolSchema describes a pool file after YAML decoding.
var poolSchema = map[string]any{
	"type":     "object",
	"required": []any{"game", "items"},
	"properties": map[string]any{
		"game": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"description": map[string]any{"type": "string"},
		"items": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"key", "min_level", "max_level"},
				"properties": map[string]any{
					"key":       map[string]any{"type": "string", "minLength": 1},
					"min_level": map[string]any{"type": "integer", "minimum": 1, "maximum": 50},
					"max_level": map[string]any{"type": "integer", "minimum": 1, "maximum": 50},
					"payload":   map[string]any{},
				},
				"additionalProperties": false,
			},
		},
	},
	"additionalProperties": false,
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledPoolSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler wants a parsed JSON value, so round-trip the Go literal.
		raw, err := json.Marshal(poolSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal pool schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse pool schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(poolSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(poolSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateDocument checks a decoded pool document against the pool schema.
func validateDocument(doc any) error {
	sch, err := compiledPoolSchema()
	if err != nil {
		return fmt.Errorf("compile pool schema: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode pool document: %w", err)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode pool document: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("%w: schema validation failed: %v", ErrInvalidPool, err)
	}
	return nil
}
