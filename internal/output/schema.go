// Package output serializes parse results into the plain nested mapping
// handed to downstream consumers, and validates that mapping against a
// JSON Schema so contract drift is caught at the boundary.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildResultJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// serialized ParseResult mapping, as a generic map.
func BuildResultJSONSchema() map[string]any {
	entryProps := map[string]any{
		"name":         map[string]any{"type": "string", "minLength": 1},
		"quantity":     map[string]any{"type": "integer", "minimum": 0},
		"total_price":  map[string]any{"type": "number", "minimum": 0},
		"indent_level": map[string]any{"type": "integer", "minimum": 0},
		"family":       map[string]any{"type": "string"},
		"category":     map[string]any{"type": "string"},
		"raw_line":     map[string]any{"type": "string"},
		"line_number":  map[string]any{"type": "integer", "minimum": 1},
	}
	entry := map[string]any{
		"type":       "object",
		"properties": entryProps,
		"required":   []string{"name", "quantity", "total_price"},
	}

	lineItem := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"quantity":    map[string]any{"type": "number", "minimum": 0},
			"unit":        map[string]any{"type": "string"},
			"unit_price":  map[string]any{"type": "number", "minimum": 0},
			"total_price": map[string]any{"type": "number", "minimum": 0},
			"source_line": map[string]any{"type": "string"},
		},
		"required": []string{"name", "quantity", "total_price"},
	}

	quality := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_acceptable": map[string]any{"type": "boolean"},
			"score":         map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"issues":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"is_acceptable", "score"},
	}

	segment := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"index":        map[string]any{"type": "integer", "minimum": 0},
			"header_label": map[string]any{"type": "string"},
			"text":         map[string]any{"type": "string"},
			"start_offset": map[string]any{"type": "integer", "minimum": 0},
			"end_offset":   map[string]any{"type": "integer", "minimum": 0},
			"quality":      quality,
		},
		"required": []string{"index", "text", "quality"},
	}

	zreport := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"closure_date":   map[string]any{"type": "string"},
			"closure_time":   map[string]any{"type": "string"},
			"covers_count":   map[string]any{"type": "number"},
			"total_excl_tax": map[string]any{"type": "number"},
			"total_incl_tax": map[string]any{"type": "number"},
			"categories":     map[string]any{"type": "array", "items": entry},
			"productions":    map[string]any{"type": "array", "items": entry},
			"families":       map[string]any{"type": "object"},
			"reconciliation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"computed_total":  map[string]any{"type": "number"},
					"displayed_total": map[string]any{"type": "number"},
					"delta":           map[string]any{"type": "number"},
				},
				"required": []string{"computed_total"},
			},
		},
		"required": []string{"categories", "productions", "families", "reconciliation"},
	}

	invoices := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"segments": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"segment":           segment,
						"items":             map[string]any{"type": "array", "items": lineItem},
						"supplier_category": map[string]any{"type": "string"},
					},
					"required": []string{"segment"},
				},
			},
			"rejected": map[string]any{"type": "array", "items": segment},
		},
		"required": []string{"segments"},
	}

	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"properties": map[string]any{
			"document_id": map[string]any{"type": "string"},
			"doc_type":    map[string]any{"type": "string"},
			"z_report":    zreport,
			"invoices":    invoices,
			"price_sheet": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"items": map[string]any{"type": "array", "items": lineItem},
				},
				"required": []string{"items"},
			},
			"parsed_at": map[string]any{"type": "string"},
		},
		"required": []string{"document_id", "doc_type", "parsed_at"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
