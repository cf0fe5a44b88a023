// File: lixenwraith/localconfig/helper.go
package localconfig

import (
	"strings"
)

// aliasSep joins a normalized section and key into a dot path.
const aliasSep = "."

// Normalize lower-cases name and folds every run of characters outside [A-Za-z0-9] into one underscore.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	inRun := false
	for _, r := range strings.ToLower(name) {
		if isAlpha(r) || isNumeric(r) {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('_')
			inRun = true
		}
	}
	return b.String()
}

// dotPath returns the alias of a section, or of a key within it when key is not empty.
func dotPath(section, key string) string {
	if key == "" {
		return Normalize(section)
	}
	return Normalize(section) + aliasSep + Normalize(key)
}

// IsConfigText reports whether s looks like inline config content rather than a file name:
// it contains a newline or starts with a key assignment.
func IsConfigText(s string) bool {
	if strings.Contains(s, "\n") {
		return true
	}
	_, _, ok := splitKeyLine(s, "=")
	return ok
}

// splitKeyLine matches `[A-Za-z0-9._-]+\s*<delim>` at the start of line and returns the
// trimmed key and value.
func splitKeyLine(line, delims string) (key, value string, ok bool) {
	i := 0
	for i < len(line) && isKeyChar(rune(line[i])) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	j := i
	for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
		j++
	}
	if j >= len(line) || !strings.ContainsRune(delims, rune(line[j])) {
		return "", "", false
	}
	return line[:i], strings.TrimSpace(line[j+1:]), true
}

// formatComment prefixes every line of comment with the comment marker.
func formatComment(comment string) string {
	return commentPrefix + " " + strings.ReplaceAll(comment, "\n", "\n"+commentPrefix+" ")
}

// isKeyChar checks if a character may appear in a key on an assignment line.
func isKeyChar(r rune) bool {
	return isAlpha(r) || isNumeric(r) || r == '.' || r == '_' || r == '-'
}

// isAlpha checks if a character is a letter (A-Z, a-z)
func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isNumeric checks if a character is a digit (0-9)
func isNumeric(c rune) bool {
	return c >= '0' && c <= '9'
}
