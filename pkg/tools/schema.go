package tools

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema assembles the full JSON Schema document a tool declares through
// Parameters and RequiredParameters.
func Schema(tool Tool) map[string]any {
	schema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           tool.Parameters(),
	}
	if required := tool.RequiredParameters(); len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// ValidateArgs checks the argument map against the tool's declared schema.
func ValidateArgs(tool Tool, args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(Schema(tool)),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return fmt.Errorf("schema validation for %s failed: %w", tool.Name(), err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid arguments for %s: %s", tool.Name(), strings.Join(msgs, "; "))
	}

	return nil
}
