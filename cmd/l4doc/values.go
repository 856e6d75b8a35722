package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// readValues reads a flat mapping of field name to value. YAML and JSON are
// both accepted; scalars keep their literal text so "1000.50" stays as typed.
func readValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("values: read %s: %w", path, err)
	}
	return parseValues(data)
}

func parseValues(data []byte) (map[string]string, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("values: decode: %w", err)
	}
	values := make(map[string]string, len(raw))
	for name, node := range raw {
		switch {
		case node.Kind != yaml.ScalarNode:
			return nil, fmt.Errorf("values: %s: expected a scalar at line %d", name, node.Line)
		case node.Tag == "!!null":
			values[name] = ""
		default:
			values[name] = node.Value
		}
	}
	return values, nil
}
