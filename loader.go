// File: lixenwraith/localconfig/loader.go
package localconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// SourceKind tells how a Source is read.
type SourceKind int

const (
	// SourceText is inline config content
	SourceText SourceKind = iota
	// SourceFile is a path to a config file
	SourceFile
	// SourceReader is an open stream
	SourceReader
)

// String returns a human-readable name for the kind.
func (k SourceKind) String() string {
	switch k {
	case SourceText:
		return "text"
	case SourceFile:
		return "file"
	case SourceReader:
		return "reader"
	default:
		return "unknown"
	}
}

// Source is one configuration input. Sources merge in registration order.
type Source struct {
	Kind   SourceKind
	Text   string
	Path   string
	Reader io.Reader
}

// Text returns a source holding inline config content.
func Text(content string) Source {
	return Source{Kind: SourceText, Text: content}
}

// File returns a source reading the file at path. A leading "~" is expanded.
func File(path string) Source {
	return Source{Kind: SourceFile, Path: expandHome(path)}
}

// Reader returns a source reading r. Queued readers are drained when registered.
func Reader(r io.Reader) Source {
	return Source{Kind: SourceReader, Reader: r}
}

// Detect treats s as inline text when it contains a newline or starts with a key
// assignment, and as a file path otherwise.
func Detect(s string) Source {
	if IsConfigText(s) {
		return Text(s)
	}
	return File(s)
}

// String describes the source for logs and errors.
func (s Source) String() string {
	switch s.Kind {
	case SourceFile:
		return s.Path
	case SourceReader:
		return "<reader>"
	default:
		return "<text>"
	}
}

// Read registers sources. Before the first access they are queued and parsed lazily;
// readers are drained immediately so later parsing never needs a rewind.
// After the first access each source is parsed and merged right away.
// The returned error joins per-source failures; a missing file wraps ErrSourceUnavailable
// and does not stop the remaining sources.
func (c *Config) Read(sources ...Source) error {
	var readErrors []error

	if !c.loaded {
		for _, src := range sources {
			if src.Kind == SourceReader {
				data, err := io.ReadAll(src.Reader)
				if err != nil {
					readErrors = append(readErrors, fmt.Errorf("failed to read config stream: %w", err))
					continue
				}
				src = Text(string(data))
			}
			c.pending = append(c.pending, src)
		}
		return errors.Join(readErrors...)
	}

	for _, src := range sources {
		if src.Kind == SourceReader {
			data, err := io.ReadAll(src.Reader)
			if err != nil {
				readErrors = append(readErrors, fmt.Errorf("failed to read config stream: %w", err))
				continue
			}
			src = Text(string(data))
		}
		c.history = append(c.history, src)
		if err := c.loadSource(src); err != nil {
			if errors.Is(err, ErrSourceUnavailable) {
				c.logger.Warn("config source unavailable", "source", src.String())
			}
			readErrors = append(readErrors, err)
		}
	}
	return errors.Join(readErrors...)
}

// ReadString registers s using Detect.
func (c *Config) ReadString(s string) error {
	return c.Read(Detect(s))
}

// Loaded reports whether queued sources have been parsed.
func (c *Config) Loaded() bool {
	return c.loaded
}

// Pending returns the number of sources waiting for the first access.
func (c *Config) Pending() int {
	return len(c.pending)
}

// Sources returns the registered sources in merge order, excluding the last source.
// Reader sources are returned as the text they were drained into.
func (c *Config) Sources() []Source {
	sources := make([]Source, 0, len(c.history)+len(c.pending))
	sources = append(sources, c.history...)
	return append(sources, c.pending...)
}

// LoadErr returns the I/O error encountered by the deferred load, if any.
func (c *Config) LoadErr() error {
	return c.loadErr
}

// ensureLoaded parses queued sources in order and then the last source, exactly once.
func (c *Config) ensureLoaded() error {
	if c.loaded {
		return c.loadErr
	}
	c.loaded = true

	var loadErrors []error
	for _, src := range c.pending {
		c.history = append(c.history, src)
		if err := c.loadSource(src); err != nil {
			if errors.Is(err, ErrSourceUnavailable) {
				c.logger.Debug("skipping unavailable config source", "source", src.String())
				continue
			}
			loadErrors = append(loadErrors, err)
		}
	}
	c.pending = nil
	c.lastAt = len(c.history)

	if err := c.loadLastSource(); err != nil {
		loadErrors = append(loadErrors, err)
	}

	c.loadErr = errors.Join(loadErrors...)
	return c.loadErr
}

// loadLastSource merges the last source; a missing file is not an error.
func (c *Config) loadLastSource() error {
	if c.opts.LastSource == "" {
		return nil
	}
	err := c.loadSource(File(c.opts.LastSource))
	if errors.Is(err, ErrSourceUnavailable) {
		c.logger.Debug("last source not found", "path", c.opts.LastSource)
		return nil
	}
	return err
}

// Reload discards all parsed state and re-reads every registered source and the last source.
// Sources read after the first access are applied after the last source again, as they were
// originally, so reloading never changes precedence.
func (c *Config) Reload() error {
	before, after := c.splitSources()
	c.st = newStore()
	c.history = nil
	c.pending = before
	c.loaded = false
	c.loadErr = nil
	c.logger.Debug("reloading config", "sources", len(before)+len(after))
	return errors.Join(c.ensureLoaded(), c.applySources(after))
}

// splitSources returns the registered sources merged before and after the last source.
// Before the first access every source precedes it.
func (c *Config) splitSources() (before, after []Source) {
	sources := c.Sources()
	if !c.loaded {
		return sources, nil
	}
	return sources[:c.lastAt], sources[c.lastAt:]
}

// applySources merges already loaded sources in order on top of the current state.
// Missing files are skipped as during the deferred load.
func (c *Config) applySources(sources []Source) error {
	var loadErrors []error
	for _, src := range sources {
		c.history = append(c.history, src)
		if err := c.loadSource(src); err != nil {
			if errors.Is(err, ErrSourceUnavailable) {
				c.logger.Debug("skipping unavailable config source", "source", src.String())
				continue
			}
			loadErrors = append(loadErrors, err)
		}
	}
	return errors.Join(loadErrors...)
}

// loadSource parses one source and merges it into the store.
func (c *Config) loadSource(src Source) error {
	var r io.Reader
	switch src.Kind {
	case SourceFile:
		file, err := os.Open(src.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrSourceUnavailable, src.Path)
			}
			return fmt.Errorf("failed to open config file '%s': %w", src.Path, err)
		}
		defer file.Close()
		r = file
	case SourceReader:
		r = src.Reader
	default:
		r = strings.NewReader(src.Text)
	}

	doc, err := Parse(r)
	if err != nil {
		return fmt.Errorf("failed to parse config source '%s': %w", src, err)
	}
	c.st.merge(doc.st)
	c.logger.Debug("config source merged", "source", src.String(), "sections", len(doc.st.sections))
	return nil
}
