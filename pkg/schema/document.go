package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseDocument decodes a schema document from JSON or YAML bytes. The format
// is sniffed from the payload: anything that opens with '{' or '[' is treated
// as JSON, everything else goes through the YAML decoder.
func ParseDocument(data []byte) (FieldSchema, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return FieldSchema{}, fmt.Errorf("schema: document is empty")
	}

	var doc FieldSchema
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return FieldSchema{}, fmt.Errorf("schema: decode json document: %w", err)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return FieldSchema{}, fmt.Errorf("schema: decode yaml document: %w", err)
	}
	return doc, nil
}

// LoadDocument reads a schema document from disk. Extensions .yaml/.yml force
// the YAML decoder; everything else falls back to payload sniffing.
func LoadDocument(path string) (FieldSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FieldSchema{}, fmt.Errorf("schema: read document %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc FieldSchema
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return FieldSchema{}, fmt.Errorf("schema: decode yaml document %q: %w", path, err)
		}
		return doc, nil
	default:
		doc, err := ParseDocument(data)
		if err != nil {
			return FieldSchema{}, fmt.Errorf("schema: document %q: %w", path, err)
		}
		return doc, nil
	}
}
