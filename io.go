// File: lixenwraith/localconfig/io.go
package localconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ToText serializes the configuration. The default section comes first if it has keys,
// followed by every section with at least one own key in insertion order.
// Inherited default keys are not repeated inside other sections. Values are written raw.
func (c *Config) ToText() (string, error) {
	if err := c.ensureLoaded(); err != nil {
		return "", err
	}
	return c.render(), nil
}

func (c *Config) render() string {
	var output []string
	extraNewline := "\n"
	if c.opts.CompactForm {
		extraNewline = ""
	}
	indent := "\n" + strings.Repeat(" ", c.opts.IndentSpaces)

	for _, sec := range c.st.all() {
		if len(sec.entries) == 0 {
			continue
		}

		if comment, ok := c.st.comments[dotPath(sec.name, "")]; ok {
			output = append(output, comment)
		} else if len(output) > 0 {
			output = append(output, "")
		}
		output = append(output, "["+sec.name+"]"+extraNewline)

		for _, e := range sec.entries {
			if comment, ok := c.st.comments[dotPath(sec.name, e.key)]; ok {
				output = append(output, comment)
			}
			value := strings.ReplaceAll(e.raw, "\n", indent)
			output = append(output, e.key+c.opts.KVSeparator+value+extraNewline)
		}
	}

	if c.st.trailing != "" {
		output = append(output, c.st.trailing)
	}

	return strings.Join(output, "\n")
}

// WriteTo writes ToText output to w.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	text, err := c.ToText()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, text)
	return int64(n), err
}

// Save writes the configuration to target atomically.
// An empty target writes to the last source.
func (c *Config) Save(target string) error {
	return c.save(target, false)
}

// SaveTemplate is like Save but comments out every line so users can uncomment what they change.
func (c *Config) SaveTemplate(target string) error {
	return c.save(target, true)
}

func (c *Config) save(target string, asTemplate bool) error {
	if err := c.ensureLoaded(); err != nil {
		return err
	}

	if target == "" {
		if c.opts.LastSource == "" {
			return ErrNoTarget
		}
		target = c.opts.LastSource
	}

	output := c.render()
	if asTemplate {
		output = Template(output)
	}

	if err := atomicWriteFile(expandHome(target), []byte(output)); err != nil {
		return fmt.Errorf("failed to save config to '%s': %w", target, err)
	}
	c.logger.Debug("config saved", "path", target, "template", asTemplate)
	return nil
}

// Template prefixes every non-blank line that is not already a comment with "# ".
func Template(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" && !strings.HasPrefix(line, commentPrefix) {
			lines[i] = commentPrefix + " " + line
		}
	}
	return strings.Join(lines, "\n")
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
