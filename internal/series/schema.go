package series

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const treeConflictSchema = `{
  "type": "object",
  "required": ["tree_conflicts", "host_fragments"],
  "properties": {
    "tree_conflicts": {
      "type": "array",
      "items": {"type": ["number", "null"]}
    },
    "host_fragments": {
      "type": "array",
      "items": {
        "type": "array",
        "minItems": 2,
        "maxItems": 2,
        "items": [
          {"type": "number"},
          {
            "type": "array",
            "minItems": 2,
            "maxItems": 2,
            "items": {"type": ["number", "null"]}
          }
        ]
      }
    }
  }
}`

const jobSizeTraceSchema = `{
  "type": "array",
  "items": {
    "type": "array",
    "items": {
      "type": "array",
      "minItems": 2,
      "maxItems": 2,
      "items": [
        {"type": "number", "minimum": 0},
        {"type": "integer", "minimum": 0}
      ]
    }
  }
}`

const clusterStateSchema = `{
  "type": "array",
  "items": {
    "type": "array",
    "items": {"type": "integer", "minimum": 0}
  }
}`

const sharingPolicySchema = `{
  "type": "object",
  "required": ["model_list", "bandwidth", "sharp_acc_atio", "average_score"],
  "properties": {
    "model_list": {"type": "array", "items": {"type": "string"}},
    "bandwidth": {"type": "number"},
    "sharp_acc_atio": {"type": "number"},
    "average_score": {
      "type": "object",
      "additionalProperties": {"type": ["number", "null"]}
    }
  }
}`

const scoreMatrixSchema = `{
  "type": "array",
  "items": {
    "type": "array",
    "items": {"type": ["number", "null"]}
  }
}`

// validateDocument checks raw JSON against a schema and converts every
// violation into a single MalformedDataError.
func validateDocument(source, key, schema string, raw []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation error for %s: %w", source, err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return malformed(source, key, -1, "%s", strings.Join(details, "; "))
}
