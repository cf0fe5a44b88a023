// File: lixenwraith/localconfig/convenience.go
package localconfig

import (
	"fmt"
	"strings"
)

// Quick creates a Config for programName, reads sources and loads them together with
// ~/.config/<programName>. Missing files are reported with ErrSourceUnavailable
// alongside a usable Config.
func Quick(programName string, sources ...Source) (*Config, error) {
	return NewBuilder().
		WithProgramName(programName).
		WithSources(sources...).
		Build()
}

// MustQuick is like Quick but panics on errors other than missing sources
func MustQuick(programName string, sources ...Source) *Config {
	return NewBuilder().
		WithProgramName(programName).
		WithSources(sources...).
		MustBuild()
}

// Debug returns a formatted string showing sources, load state and values
func (c *Config) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	b.WriteString(fmt.Sprintf("Last source: %q\n", c.opts.LastSource))
	b.WriteString(fmt.Sprintf("Loaded: %v (pending %d)\n", c.loaded, len(c.pending)))
	if c.loadErr != nil {
		b.WriteString(fmt.Sprintf("Load error: %v\n", c.loadErr))
	}
	b.WriteString("Sources:\n")
	for _, src := range c.Sources() {
		b.WriteString(fmt.Sprintf("  %s: %s\n", src.Kind, src))
	}

	if !c.loaded {
		return b.String()
	}

	b.WriteString("Current values:\n")
	for _, sec := range c.st.all() {
		if len(sec.entries) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("  [%s]\n", sec.name))
		for _, e := range sec.entries {
			v := c.Get(sec.name, e.key)
			b.WriteString(fmt.Sprintf("    %s = %v (%s)\n", e.key, v, Classify(e.raw)))
		}
	}
	return b.String()
}

// Clone creates a deep copy of the configuration, loading it first
func (c *Config) Clone() *Config {
	c.ensureLoaded()

	clone := NewWithOptions(c.opts)
	clone.st.merge(c.st)
	clone.history = append(clone.history, c.history...)
	clone.lastAt = c.lastAt
	clone.loaded = true
	clone.loadErr = c.loadErr
	return clone
}
