// Package openapi derives a prediction field schema from an OpenAPI
// document, as an offline alternative to fetching the schema from the
// service. The request body of the chosen operation supplies the fields.
package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-riskform/pkg/schema"
)

const (
	// featureOrderExtensionKey carries the explicit field ordering on the
	// request schema. Without it property names are sorted.
	featureOrderExtensionKey = "x-feature-order"
	placeholderExtensionKey  = "x-placeholder"
)

// Detect reports whether the raw payload appears to be an OpenAPI document.
func Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if _, ok := payload["openapi"]; ok {
				return true
			}
			if _, ok := payload["swagger"]; ok {
				return true
			}
		}
	}
	lower := strings.ToLower(string(trimmed))
	return strings.Contains(lower, "openapi:") || strings.Contains(lower, "swagger:")
}

// FieldSchemaFromDocument parses an OpenAPI document and converts the
// request body of the named operation into a field schema. An empty
// operationID selects the document's only operation carrying a request
// body.
func FieldSchemaFromDocument(ctx context.Context, raw []byte, operationID string) (schema.FieldSchema, error) {
	if err := ctx.Err(); err != nil {
		return schema.FieldSchema{}, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return schema.FieldSchema{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.FieldSchema{}, fmt.Errorf("openapi: load document: %w", err)
	}

	operation, err := findOperation(spec, operationID)
	if err != nil {
		return schema.FieldSchema{}, err
	}

	request := requestSchema(operation.RequestBody)
	if request == nil || len(request.Properties) == 0 {
		return schema.FieldSchema{}, fmt.Errorf("openapi: operation %q has no request body properties", operation.OperationID)
	}

	fields := schema.FieldSchema{
		FieldMeta: make(map[string]schema.FieldMeta, len(request.Properties)),
	}
	for name, property := range request.Properties {
		fields.FieldMeta[name] = fieldMetaFromProperty(property)
	}
	fields.FeatureOrder = featureOrder(request, fields.FieldMeta)
	return fields, nil
}

func findOperation(spec *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	var candidates []*openapi3.Operation
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range []*openapi3.Operation{item.Post, item.Put, item.Patch} {
			if operation == nil {
				continue
			}
			if operationID != "" {
				if operation.OperationID == operationID {
					return operation, nil
				}
				continue
			}
			if operation.RequestBody != nil {
				candidates = append(candidates, operation)
			}
		}
	}

	if operationID != "" {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}
	switch len(candidates) {
	case 0:
		return nil, errors.New("openapi: no operation with a request body found")
	case 1:
		return candidates[0], nil
	default:
		return nil, errors.New("openapi: multiple candidate operations, specify an operation id")
	}
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	if mt, ok := content["application/json"]; ok && mt.Schema != nil {
		return mt.Schema.Value
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldMetaFromProperty(ref *openapi3.SchemaRef) schema.FieldMeta {
	if ref == nil || ref.Value == nil {
		return schema.FieldMeta{Kind: schema.FieldKindText}
	}
	src := ref.Value

	meta := schema.FieldMeta{Kind: schema.FieldKindText}
	if placeholder, ok := src.Extensions[placeholderExtensionKey].(string); ok {
		meta.Placeholder = placeholder
	}

	if len(src.Enum) > 0 {
		meta.Kind = schema.FieldKindSelect
		meta.Options = append([]any(nil), src.Enum...)
		return meta
	}

	switch firstSchemaType(src.Type) {
	case "number", "integer":
		meta.Kind = schema.FieldKindNumber
		if src.Min != nil {
			value := *src.Min
			meta.Min = &value
		}
		if src.Max != nil {
			value := *src.Max
			meta.Max = &value
		}
	}
	return meta
}

// featureOrder resolves the field ordering: the x-feature-order extension
// when present and well-formed, otherwise sorted property names.
func featureOrder(request *openapi3.Schema, meta map[string]schema.FieldMeta) []string {
	if order := orderFromExtension(request.Extensions[featureOrderExtensionKey], meta); len(order) > 0 {
		return order
	}
	names := make([]string, 0, len(meta))
	for name := range meta {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func orderFromExtension(raw any, meta map[string]schema.FieldMeta) []string {
	entries, ok := raw.([]any)
	if !ok || len(entries) == 0 {
		return nil
	}
	order := make([]string, 0, len(entries))
	for _, entry := range entries {
		name, ok := entry.(string)
		if !ok {
			return nil
		}
		if _, known := meta[name]; !known {
			return nil
		}
		order = append(order, name)
	}
	if len(order) != len(meta) {
		return nil
	}
	return order
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
