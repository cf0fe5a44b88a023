// File: lixenwraith/localconfig/parser.go
package localconfig

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	commentPrefix = "#"
	keyDelimiters = "=:"

	// maxLineSize bounds a single physical line.
	maxLineSize = 1 << 20
)

// Document is one parsed source: sections with ordered keys, their comments
// and the trailing comment block.
type Document struct {
	st *store
}

// Parse reads INI text from r in a single pass. Lines that are neither blank, comment,
// section header, key assignment nor value continuation are skipped.
// Only read errors from r are returned.
func Parse(r io.Reader) (*Document, error) {
	p := &parser{st: newStore()}
	p.current = p.st.defaults

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		p.line(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config source: %w", err)
	}
	p.finish()

	return &Document{st: p.st}, nil
}

// ParseString parses inline config text.
func ParseString(text string) (*Document, error) {
	return Parse(strings.NewReader(text))
}

// Sections returns section names in order of appearance, excluding the default section.
func (d *Document) Sections() []string {
	names := make([]string, 0, len(d.st.sections))
	for _, sec := range d.st.sections {
		names = append(names, sec.name)
	}
	return names
}

// Keys returns the keys of section in order of appearance.
func (d *Document) Keys(section string) []string {
	sec := d.st.section(section)
	if sec == nil {
		return nil
	}
	keys := make([]string, 0, len(sec.entries))
	for _, e := range sec.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Raw returns the unconverted value of section/key.
func (d *Document) Raw(section, key string) (string, bool) {
	sec := d.st.section(section)
	if sec == nil {
		return "", false
	}
	if e := d.st.lookup(sec, key); e != nil {
		return e.raw, true
	}
	return "", false
}

// Comment returns the comment attached to a section (key == "") or to a key.
func (d *Document) Comment(section, key string) (string, bool) {
	c, ok := d.st.comments[dotPath(section, key)]
	return c, ok
}

// TrailingComment returns the comment block found after the last key.
func (d *Document) TrailingComment() string {
	return d.st.trailing
}

type parser struct {
	st      *store
	current *section
	value   *entry // open multi-line value, nil when closed
	comment strings.Builder
}

func (p *parser) line(raw string) {
	line := strings.TrimRight(raw, " \t\r")
	trimmed := strings.TrimLeft(line, " \t")

	switch {
	case line == "":
		if p.comment.Len() > 0 {
			p.comment.WriteByte('\n')
		}
		p.value = nil
		return

	case strings.HasPrefix(trimmed, commentPrefix):
		p.comment.WriteString(line)
		p.comment.WriteByte('\n')
		return

	case p.value != nil && trimmed != line:
		p.continueValue(trimmed)

	case isSectionHeader(trimmed):
		p.value = nil
		p.current = p.st.ensureSection(trimmed[1 : len(trimmed)-1])
		p.attachComment(dotPath(p.current.name, ""))

	default:
		if key, value, ok := splitKeyLine(trimmed, keyDelimiters); ok {
			p.value = p.st.set(p.current, key, value)
			p.attachComment(dotPath(p.current.name, key))
		} else if p.value != nil {
			p.continueValue(trimmed)
		}
	}

	p.comment.Reset()
}

func (p *parser) continueValue(text string) {
	p.value.raw += "\n" + text
}

func (p *parser) attachComment(path string) {
	if p.comment.Len() == 0 {
		return
	}
	p.st.comments[path] = strings.TrimRight(p.comment.String(), "\n")
}

func (p *parser) finish() {
	if p.comment.Len() > 0 {
		p.st.trailing = p.comment.String()
	}
}

func isSectionHeader(line string) bool {
	return len(line) > 2 && line[0] == '[' && line[len(line)-1] == ']'
}
