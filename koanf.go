// File: lixenwraith/localconfig/koanf.go
package localconfig

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/knadh/koanf/v2"
)

// Provider adapts a Config to koanf.Provider.
// Read yields default keys at the top level and each section as a sub-map holding
// its readable keys. ReadBytes yields the INI text for use with Parser.
type Provider struct {
	cfg *Config
}

var _ koanf.Provider = (*Provider)(nil)

// KoanfProvider returns a koanf provider backed by cfg.
func KoanfProvider(cfg *Config) *Provider {
	return &Provider{cfg: cfg}
}

// ReadBytes returns the serialized configuration.
func (p *Provider) ReadBytes() ([]byte, error) {
	text, err := p.cfg.ToText()
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// Read returns the typed configuration as a nested map.
func (p *Provider) Read() (map[string]any, error) {
	if err := p.cfg.ensureLoaded(); err != nil {
		return nil, err
	}
	return p.cfg.nestedMap(), nil
}

// Parser implements koanf.Parser for INI text.
type Parser struct{}

var _ koanf.Parser = Parser{}

// KoanfParser returns a parser that lets koanf load INI files from any provider.
func KoanfParser() Parser {
	return Parser{}
}

// Unmarshal parses INI text into the nested map layout of Provider.Read.
func (Parser) Unmarshal(b []byte) (map[string]any, error) {
	cfg := New()
	if err := cfg.Read(Text(string(b))); err != nil {
		return nil, err
	}
	if err := cfg.ensureLoaded(); err != nil {
		return nil, err
	}
	return cfg.nestedMap(), nil
}

// Marshal writes scalar top-level keys to the default section and maps as sections.
// Keys are sorted since map order is undefined. Deeper maps are rejected.
func (Parser) Marshal(m map[string]any) ([]byte, error) {
	cfg := New()
	cfg.loaded = true

	var sections []string
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if _, ok := m[key].(map[string]any); ok {
			sections = append(sections, key)
			continue
		}
		if err := cfg.Set(DefaultSection, key, m[key]); err != nil {
			return nil, err
		}
	}

	for _, name := range sections {
		values := m[name].(map[string]any)
		if err := cfg.AddSection(name); err != nil && !errors.Is(err, ErrDuplicateSection) {
			return nil, err
		}
		for _, key := range slices.Sorted(maps.Keys(values)) {
			if _, nested := values[key].(map[string]any); nested {
				return nil, fmt.Errorf("cannot marshal nested section %s.%s: sections do not nest", name, key)
			}
			if err := cfg.Set(name, key, values[key]); err != nil {
				return nil, err
			}
		}
	}

	text, err := cfg.ToText()
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}
