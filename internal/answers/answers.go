// Package answers loads questionnaire answers from YAML files and keeps
// unfinished answers as a draft between runs.
package answers

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/harrison/aqscreen/internal/form"
)

// Setter assigns a raw value to a named field.
type Setter interface {
	Set(name, value string) error
}

// Parse decodes a flat YAML mapping of field name to value. Scalars of any
// YAML type are accepted (A1_Score: 1 and A1_Score: "1" are equivalent); a
// null value leaves the field unanswered.
func Parse(data []byte, registry *form.Registry) (map[string]string, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}

	out := make(map[string]string, len(raw))
	for name, node := range raw {
		if _, err := registry.Lookup(name); err != nil {
			return nil, err
		}
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("answer for %s must be a scalar, got line %d", name, node.Line)
		}
		if node.ShortTag() == "!!null" {
			continue
		}
		out[name] = node.Value
	}
	return out, nil
}

// LoadFile reads and parses an answers file.
func LoadFile(path string, registry *form.Registry) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	return Parse(data, registry)
}

// Apply sets every answer on s in registry order and returns the names that
// were set.
func Apply(s Setter, registry *form.Registry, values map[string]string) ([]string, error) {
	var applied []string
	for _, f := range registry.Fields() {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		if err := s.Set(f.Name, v); err != nil {
			return applied, fmt.Errorf("answer %s: %w", f.Name, err)
		}
		applied = append(applied, f.Name)
	}
	return applied, nil
}

// Marshal encodes answers as a flat YAML mapping with numeric screening items.
func Marshal(values map[string]string) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		v := values[name]
		val := &yaml.Node{Kind: yaml.ScalarNode, Value: v, Tag: "!!str"}
		if _, err := strconv.Atoi(v); err == nil && isQuestion(name) {
			val.Tag = "!!int"
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			val,
		)
	}
	return yaml.Marshal(root)
}

func isQuestion(name string) bool {
	for i := 1; i <= form.QuestionCount; i++ {
		if form.QuestionName(i) == name {
			return true
		}
	}
	return false
}
