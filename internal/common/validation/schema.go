package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Result holds the outcome of a schema validation.
type Result struct {
	Valid  bool
	Errors []string
}

// Validate checks data against a JSON schema expressed as a Go map.
func Validate(data interface{}, schema map[string]interface{}) (*Result, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	out := &Result{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, desc.String())
	}
	return out, nil
}
