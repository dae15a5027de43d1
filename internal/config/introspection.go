package config

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetKnownKeys returns all valid configuration keys based on the schema
func GetKnownKeys() map[string]bool {
	known := make(map[string]bool)
	addKnownKeys("", reflect.TypeOf(ConfigSchema{}), known)
	return known
}

func addKnownKeys(prefix string, t reflect.Type, known map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		// viper lowercases all keys
		key := strings.ToLower(tag)
		if prefix != "" {
			key = prefix + "." + key
		}
		known[key] = true

		switch field.Type.Kind() {
		case reflect.Struct:
			addKnownKeys(key, field.Type, known)
		case reflect.Map:
			known[key+".*"] = true
		}
	}
}

// matchesWildcard checks if a key matches a wildcard pattern
func matchesWildcard(pattern, key string) bool {
	patternParts := strings.Split(strings.ToLower(pattern), ".")
	keyParts := strings.Split(strings.ToLower(key), ".")

	if len(patternParts) != len(keyParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != keyParts[i] {
			return false
		}
	}
	return true
}

// IsKnownKey checks if a key is known, including wildcard matches
func IsKnownKey(known map[string]bool, key string) bool {
	if known[strings.ToLower(key)] {
		return true
	}
	for pattern := range known {
		if strings.Contains(pattern, "*") && matchesWildcard(pattern, key) {
			return true
		}
	}
	return false
}

// Print writes the effective configuration as YAML. With includeSources each
// value is annotated with where it came from.
func (c *Config) Print(w io.Writer, includeSources bool) error {
	jsonBytes, err := json.Marshal(c.Schema())
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	var settings map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &settings); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	var doc yaml.Node
	if err := doc.Encode(settings); err != nil {
		return fmt.Errorf("error converting to YAML: %w", err)
	}
	c.annotate(&doc, "", includeSources)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return enc.Close()
}

func (c *Config) annotate(node *yaml.Node, path string, includeSources bool) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := strings.ToLower(keyNode.Value)
		if path != "" {
			key = path + "." + key
		}

		if valueNode.Kind == yaml.MappingNode {
			c.annotate(valueNode, key, includeSources)
			continue
		}
		if isSecretKey(key) {
			valueNode.Value = "[REDACTED]"
			valueNode.Tag = "!!str"
		}
		if includeSources {
			valueNode.LineComment = c.Source(key)
		}
	}
}

func isSecretKey(key string) bool {
	key = strings.ToLower(key)
	return strings.Contains(key, "key") ||
		strings.Contains(key, "secret") ||
		strings.Contains(key, "password")
}
