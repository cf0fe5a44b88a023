// File: lixenwraith/localconfig/config.go
package localconfig

import (
	"errors"
	"fmt"
	"log/slog"
)

// Options controls loading, interpolation and output formatting.
type Options struct {
	// LastSource is read after every other source and wins over them.
	// A missing file is skipped. Defaults to DefaultLastSource(ProgramName).
	LastSource string

	// ProgramName derives LastSource when it is empty.
	ProgramName string

	// Interpolation resolves references in values on read. Nil disables it.
	Interpolation Interpolator

	// KVSeparator is written between key and value.
	KVSeparator string

	// IndentSpaces indents continuation lines of multi-line values.
	IndentSpaces int

	// CompactForm drops the blank line after headers and keys.
	CompactForm bool

	// Logger receives debug events. Defaults to a discarding logger.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		KVSeparator:  " = ",
		IndentSpaces: 4,
	}
}

// Config is a layered INI configuration. Sources are parsed lazily on first access.
// A Config is not safe for concurrent use.
type Config struct {
	opts   Options
	logger *slog.Logger

	st    *store
	cache valueCache

	pending []Source // registered before first access
	history []Source // already merged, replayed by Reload
	lastAt  int      // number of history sources merged before the last source

	loaded  bool
	loadErr error
}

// Item is one key and its typed value.
type Item struct {
	Key   string
	Value any
}

// New creates a Config with DefaultOptions.
func New() *Config {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a Config. Zero-valued formatting options fall back to defaults.
func NewWithOptions(opts Options) *Config {
	defaults := DefaultOptions()
	if opts.KVSeparator == "" {
		opts.KVSeparator = defaults.KVSeparator
	}
	if opts.IndentSpaces <= 0 {
		opts.IndentSpaces = defaults.IndentSpaces
	}
	if opts.LastSource == "" && opts.ProgramName != "" {
		opts.LastSource = DefaultLastSource(opts.ProgramName)
	} else if opts.LastSource != "" {
		opts.LastSource = expandHome(opts.LastSource)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Config{
		opts:   opts,
		logger: opts.Logger,
		st:     newStore(),
		cache:  make(valueCache),
	}
}

// Options returns the effective options.
func (c *Config) Options() Options {
	return c.opts
}

// LastSource returns the path of the last-priority source, empty if none.
func (c *Config) LastSource() string {
	return c.opts.LastSource
}

// Get returns the typed value of section/key, falling back to the default section.
// Missing keys, missing sections and unresolvable references yield nil.
func (c *Config) Get(section, key string) any {
	v, err := c.Lookup(section, key)
	if err != nil {
		return nil
	}
	return v
}

// GetDefault is like Get but returns def when the key cannot be read.
// A key explicitly set to None still returns nil.
func (c *Config) GetDefault(section, key string, def any) any {
	v, err := c.Lookup(section, key)
	if err != nil {
		return def
	}
	return v
}

// Lookup returns the typed value of section/key or ErrMissingSection, ErrMissingKey
// or ErrInterpolation.
func (c *Config) Lookup(section, key string) (any, error) {
	raw, err := c.value(section, key)
	if err != nil {
		return nil, err
	}
	return c.cache.typed(raw), nil
}

// Raw returns the stored string of section/key without interpolation or conversion.
func (c *Config) Raw(section, key string) (string, bool) {
	c.ensureLoaded()

	sec := c.st.section(section)
	if sec == nil {
		return "", false
	}
	if e := c.st.resolve(sec, key); e != nil {
		return e.raw, true
	}
	return "", false
}

// value returns the interpolated raw string of section/key.
func (c *Config) value(section, key string) (string, error) {
	c.ensureLoaded()

	sec := c.st.section(section)
	if sec == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingSection, section)
	}
	e := c.st.resolve(sec, key)
	if e == nil {
		return "", fmt.Errorf("%w: %s.%s", ErrMissingKey, section, key)
	}
	if c.opts.Interpolation == nil {
		return e.raw, nil
	}
	out, err := c.opts.Interpolation.Interpolate(c, sec.name, e.key, e.raw)
	if err != nil {
		c.logger.Debug("interpolation failed", "section", sec.name, "key", e.key, "error", err)
		return "", err
	}
	return out, nil
}

// Set stores Render(value) under section/key. The default section always exists;
// other sections must be added first.
func (c *Config) Set(section, key string, value any) error {
	return c.SetWithComment(section, key, value, "")
}

// SetWithComment is like Set and attaches comment above the key. Each line of comment
// is written with the comment marker. An empty comment keeps any existing one.
func (c *Config) SetWithComment(section, key string, value any, comment string) error {
	if err := c.ensureLoaded(); err != nil {
		return err
	}

	// an empty key would share the section's alias
	if key == "" {
		return fmt.Errorf("%w: empty key in section %s", ErrMissingKey, section)
	}
	sec := c.st.section(section)
	if sec == nil {
		return fmt.Errorf("%w: %s", ErrMissingSection, section)
	}
	e := c.st.set(sec, key, Render(value))
	if comment != "" {
		c.st.comments[dotPath(sec.name, e.key)] = formatComment(comment)
	}
	return nil
}

// AddSection appends an empty section.
func (c *Config) AddSection(name string) error {
	return c.AddSectionWithComment(name, "")
}

// AddSectionWithComment appends an empty section with comment written above its header.
// Returns ErrDuplicateSection if a section with the same normalized name exists.
func (c *Config) AddSectionWithComment(name, comment string) error {
	if err := c.ensureLoaded(); err != nil {
		return err
	}

	if c.st.section(name) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateSection, name)
	}
	sec := c.st.ensureSection(name)
	if comment != "" {
		c.st.comments[dotPath(sec.name, "")] = formatComment(comment)
	}
	return nil
}

// Sections returns section names in insertion order, without the default section.
func (c *Config) Sections() []string {
	c.ensureLoaded()

	names := make([]string, 0, len(c.st.sections))
	for _, sec := range c.st.sections {
		names = append(names, sec.name)
	}
	return names
}

// HasSection reports whether a section with the same normalized name exists.
// The default section always exists.
func (c *Config) HasSection(name string) bool {
	c.ensureLoaded()
	return c.st.section(name) != nil
}

// Has reports whether section/key resolves, including default-section fallback.
func (c *Config) Has(section, key string) bool {
	_, ok := c.Raw(section, key)
	return ok
}

// Keys returns the own keys of section followed by inherited default keys.
func (c *Config) Keys(section string) ([]string, error) {
	c.ensureLoaded()

	sec := c.st.section(section)
	if sec == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSection, section)
	}
	var keys []string
	for _, e := range c.visible(sec) {
		keys = append(keys, e.key)
	}
	return keys, nil
}

// Items returns own keys in insertion order followed by inherited default keys that are
// not overridden. Values are interpolated and converted; unresolvable ones are nil.
func (c *Config) Items(section string) ([]Item, error) {
	c.ensureLoaded()

	sec := c.st.section(section)
	if sec == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSection, section)
	}

	entries := c.visible(sec)
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{Key: e.key, Value: c.Get(sec.name, e.key)})
	}
	return items, nil
}

// visible lists the entries readable from sec.
func (c *Config) visible(sec *section) []*entry {
	entries := append([]*entry(nil), sec.entries...)
	if sec == c.st.defaults {
		return entries
	}
	for _, d := range c.st.defaults.entries {
		if c.st.lookup(sec, d.key) == nil {
			entries = append(entries, d)
		}
	}
	return entries
}

// Remove deletes an own key of section. Inherited default keys are not affected.
func (c *Config) Remove(section, key string) error {
	if err := c.ensureLoaded(); err != nil {
		return err
	}

	sec := c.st.section(section)
	if sec == nil {
		return fmt.Errorf("%w: %s", ErrMissingSection, section)
	}
	if !c.st.remove(sec, key) {
		return fmt.Errorf("%w: %s.%s", ErrMissingKey, section, key)
	}
	return nil
}

// RemoveSection deletes a section with its keys and comments.
// The default section cannot be removed.
func (c *Config) RemoveSection(name string) error {
	if err := c.ensureLoaded(); err != nil {
		return err
	}

	sec := c.st.section(name)
	if sec == nil {
		return fmt.Errorf("%w: %s", ErrMissingSection, name)
	}
	if !c.st.removeSection(sec) {
		return errors.New("default section cannot be removed")
	}
	return nil
}

// Comment returns the comment attached to a section (empty key) or a key, with comment markers.
func (c *Config) Comment(section, key string) (string, bool) {
	c.ensureLoaded()

	sec := c.st.section(section)
	if sec == nil {
		return "", false
	}
	path := dotPath(sec.name, "")
	if key != "" {
		e := c.st.lookup(sec, key)
		if e == nil {
			return "", false
		}
		path = dotPath(sec.name, e.key)
	}
	comment, ok := c.st.comments[path]
	return comment, ok
}

// SetComment attaches comment to a section (empty key) or an own key.
// An empty comment removes it.
func (c *Config) SetComment(section, key, comment string) error {
	if err := c.ensureLoaded(); err != nil {
		return err
	}

	sec := c.st.section(section)
	if sec == nil {
		return fmt.Errorf("%w: %s", ErrMissingSection, section)
	}
	path := dotPath(sec.name, "")
	if key != "" {
		e := c.st.lookup(sec, key)
		if e == nil {
			return fmt.Errorf("%w: %s.%s", ErrMissingKey, section, key)
		}
		path = dotPath(sec.name, e.key)
	}
	if comment == "" {
		delete(c.st.comments, path)
		return nil
	}
	c.st.comments[path] = formatComment(comment)
	return nil
}

// TrailingComment returns the comment block written after the last key.
func (c *Config) TrailingComment() string {
	c.ensureLoaded()
	return c.st.trailing
}
