// File: lixenwraith/localconfig/section.go
package localconfig

import "strings"

// SectionAccessor reads and writes keys of one section.
type SectionAccessor struct {
	cfg  *Config
	name string
}

// Section returns an accessor for the section whose normalized name matches name.
func (c *Config) Section(name string) (*SectionAccessor, bool) {
	c.ensureLoaded()

	sec := c.st.section(name)
	if sec == nil {
		return nil, false
	}
	return &SectionAccessor{cfg: c, name: sec.name}, true
}

// Name returns the section name as first spelled.
func (s *SectionAccessor) Name() string {
	return s.name
}

// Get returns the typed value of key, or nil.
func (s *SectionAccessor) Get(key string) any {
	return s.cfg.Get(s.name, key)
}

// Set stores value under key.
func (s *SectionAccessor) Set(key string, value any) error {
	return s.cfg.Set(s.name, key, value)
}

// Items lists the keys readable from the section with their values.
func (s *SectionAccessor) Items() []Item {
	items, _ := s.cfg.Items(s.name)
	return items
}

// Keys lists the keys readable from the section.
func (s *SectionAccessor) Keys() []string {
	keys, _ := s.cfg.Keys(s.name)
	return keys
}

// Attr resolves name as a section first and then as a default-section key.
// A section yields a *SectionAccessor; anything unknown yields nil.
func (c *Config) Attr(name string) any {
	if s, ok := c.Section(name); ok {
		return s
	}
	return c.Get(DefaultSection, name)
}

// SetAttr stores value under name in the default section.
func (c *Config) SetAttr(name string, value any) error {
	return c.Set(DefaultSection, name, value)
}

// Path reads a "section.key" path. Section and key are matched by normalized name,
// so "another_section.multi_line" finds [another-section] multi_line.
// Each dot is tried as the split point from left to right.
func (c *Config) Path(path string) any {
	c.ensureLoaded()

	for i := strings.Index(path, aliasSep); i >= 0; {
		section, key := path[:i], path[i+1:]
		if sec := c.st.section(section); sec != nil {
			if e := c.st.resolve(sec, key); e != nil {
				return c.Get(sec.name, e.key)
			}
		}
		next := strings.Index(path[i+1:], aliasSep)
		if next < 0 {
			break
		}
		i += next + 1
	}
	return c.Get(DefaultSection, path)
}
