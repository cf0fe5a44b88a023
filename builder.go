// File: lixenwraith/localconfig/builder.go
package localconfig

import (
	"errors"
	"fmt"
	"log/slog"
)

// ValidatorFunc defines the signature for a function that can validate a Config instance.
// It receives the fully loaded *Config object and should return an error if validation fails.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for building configurations
type Builder struct {
	opts       Options
	sources    []Source
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{
		opts:       DefaultOptions(),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithProgramName derives the last source from name unless WithLastSource is also used
func (b *Builder) WithProgramName(name string) *Builder {
	b.opts.ProgramName = name
	return b
}

// WithLastSource sets the last-priority override file
func (b *Builder) WithLastSource(path string) *Builder {
	b.opts.LastSource = path
	return b
}

// WithSources appends sources in merge order
func (b *Builder) WithSources(sources ...Source) *Builder {
	b.sources = append(b.sources, sources...)
	return b
}

// WithFile appends a file source
func (b *Builder) WithFile(path string) *Builder {
	return b.WithSources(File(path))
}

// WithText appends an inline source
func (b *Builder) WithText(text string) *Builder {
	return b.WithSources(Text(text))
}

// WithSeparator sets the key/value separator used for output
func (b *Builder) WithSeparator(sep string) *Builder {
	if sep == "" {
		b.err = errors.New("key/value separator cannot be empty")
		return b
	}
	b.opts.KVSeparator = sep
	return b
}

// WithIndent sets the continuation indent used for output
func (b *Builder) WithIndent(spaces int) *Builder {
	if spaces <= 0 {
		b.err = fmt.Errorf("indent must be positive, got %d", spaces)
		return b
	}
	b.opts.IndentSpaces = spaces
	return b
}

// WithCompactForm drops blank lines between keys in output
func (b *Builder) WithCompactForm() *Builder {
	b.opts.CompactForm = true
	return b
}

// WithInterpolation sets the reference expansion applied on reads
func (b *Builder) WithInterpolation(i Interpolator) *Builder {
	b.opts.Interpolation = i
	return b
}

// WithLogger sets the logger for load and save events
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.opts.Logger = logger
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Config and loads all sources.
// Missing files are reported with ErrSourceUnavailable alongside a usable Config.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	cfg := NewWithOptions(b.opts)
	if err := cfg.Read(b.sources...); err != nil {
		return nil, err
	}

	var missing []error
	for _, src := range b.sources {
		if src.Kind == SourceFile && !fileExists(src.Path) {
			missing = append(missing, fmt.Errorf("%w: %s", ErrSourceUnavailable, src.Path))
		}
	}

	if err := cfg.ensureLoaded(); err != nil {
		return nil, err
	}

	// Run validators
	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	// ErrSourceUnavailable or nil
	return cfg, errors.Join(missing...)
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		// Missing sources are not fatal; the application can proceed with what was found.
		if !errors.Is(err, ErrSourceUnavailable) || cfg == nil {
			panic(fmt.Sprintf("config build failed: %v", err))
		}
	}
	return cfg
}

// BuildAndScan builds and decodes section into target
func (b *Builder) BuildAndScan(section string, target any) error {
	cfg, err := b.Build()
	if err != nil && !errors.Is(err, ErrSourceUnavailable) {
		return err
	}

	if err := cfg.Scan(section, target); err != nil {
		return fmt.Errorf("failed to scan final config into target: %w", err)
	}

	// ErrSourceUnavailable or nil
	return err
}
