// File: lixenwraith/localconfig/export.go
package localconfig

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MarshalTOML encodes default keys at the top level and every other section as a table.
// Only own keys are written; None values are omitted since TOML has no null.
func (c *Config) MarshalTOML() ([]byte, error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}

	data := make(map[string]any)
	for _, sec := range c.st.all() {
		table := data
		if sec != c.st.defaults {
			if len(sec.entries) == 0 {
				continue
			}
			table = make(map[string]any, len(sec.entries))
			data[sec.name] = table
		}
		for _, e := range sec.entries {
			if v := c.Get(sec.name, e.key); v != nil {
				table[e.key] = v
			}
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalYAML encodes default keys at the top level and every other section as a mapping,
// in insertion order. Section and key comments become head comments and the trailing
// comment becomes the document foot comment.
func (c *Config) MarshalYAML() ([]byte, error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, sec := range c.st.all() {
		if len(sec.entries) == 0 {
			continue
		}
		target := root
		if sec != c.st.defaults {
			target = &yaml.Node{Kind: yaml.MappingNode}
			keyNode := &yaml.Node{
				Kind:        yaml.ScalarNode,
				Tag:         "!!str",
				Value:       sec.name,
				HeadComment: yamlComment(c.st.comments[dotPath(sec.name, "")]),
			}
			root.Content = append(root.Content, keyNode, target)
		}
		for _, e := range sec.entries {
			keyNode := &yaml.Node{
				Kind:        yaml.ScalarNode,
				Tag:         "!!str",
				Value:       e.key,
				HeadComment: yamlComment(c.st.comments[dotPath(sec.name, e.key)]),
			}
			target.Content = append(target.Content, keyNode, yamlScalar(c.Get(sec.name, e.key)))
		}
	}

	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		Content:     []*yaml.Node{root},
		FootComment: yamlComment(c.st.trailing),
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal config data to YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config data to YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// yamlScalar tags v with its inferred type.
func yamlScalar(v any) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: Render(v)}
	switch val := v.(type) {
	case nil:
		node.Tag, node.Value = "!!null", "null"
	case bool:
		node.Tag = "!!bool"
		node.Value = strings.ToLower(node.Value)
	case int64:
		node.Tag = "!!int"
	case float64:
		node.Tag = "!!float"
	case string:
		node.Tag = "!!str"
		if strings.Contains(val, "\n") {
			node.Style = yaml.LiteralStyle
		}
	}
	return node
}

// yamlComment drops blank lines, which YAML comments cannot carry.
func yamlComment(comment string) string {
	var lines []string
	for _, line := range strings.Split(comment, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
