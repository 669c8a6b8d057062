package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/schemas"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
	"gopkg.in/yaml.v3"
)

// isYAML reports whether a path names a YAML document
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// readDocumentJSON reads a JSON or YAML document file and returns it as JSON
func readDocumentJSON(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	if !isYAML(path) {
		return data, nil
	}

	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to parse YAML document %s: %w", path, err)
	}
	if value == nil {
		value = map[string]any{}
	}
	converted, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML document %s: %w", path, err)
	}
	return converted, nil
}

// loadDocument reads and schema-checks a document file
func loadDocument(path string) (types.RFP, error) {
	data, err := readDocumentJSON(path)
	if err != nil {
		return types.RFP{}, err
	}
	if err := schemas.ValidateDocument(data); err != nil {
		return types.RFP{}, fmt.Errorf("document %s is invalid: %w", path, err)
	}

	var doc types.RFP
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.RFP{}, fmt.Errorf("failed to decode document %s: %w", path, err)
	}
	return doc.Normalize(), nil
}

// encodeDocument serializes doc as indented JSON, or as YAML with the same key order
func encodeDocument(doc types.RFP, asYAML bool) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if !asYAML {
		return append(data, '\n'), nil
	}

	// JSON is valid YAML, so decoding into a node keeps the field order
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to convert document to YAML: %w", err)
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// clearStyle drops the JSON flow and quoting styles so YAML uses block style.
// Strings that would read back as another type are still quoted by the encoder.
func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

// saveDocument writes doc to path, choosing YAML or JSON by extension
func saveDocument(path string, doc types.RFP) error {
	data, err := encodeDocument(doc, isYAML(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return nil
}
