// File: lixenwraith/localconfig/interpolate.go
package localconfig

import (
	"fmt"
	"strings"
)

// maxInterpolationDepth bounds nested reference expansion.
const maxInterpolationDepth = 10

// Lookuper resolves the raw value of a key, with default-section fallback.
type Lookuper interface {
	Raw(section, key string) (string, bool)
}

// Interpolator expands references in a raw value read from section/key.
type Interpolator interface {
	Interpolate(l Lookuper, section, key, raw string) (string, error)
}

// BasicInterpolation expands %(name)s with the value of name in the same section.
// %% is a literal percent sign.
type BasicInterpolation struct{}

// Interpolate implements Interpolator.
func (BasicInterpolation) Interpolate(l Lookuper, section, key, raw string) (string, error) {
	return expandBasic(l, section, key, raw, 1)
}

func expandBasic(l Lookuper, section, key, raw string, depth int) (string, error) {
	if depth > maxInterpolationDepth {
		return "", fmt.Errorf("%w: %s.%s: reference depth exceeds %d", ErrInterpolation, section, key, maxInterpolationDepth)
	}

	var b strings.Builder
	rest := raw
	for rest != "" {
		i := strings.IndexByte(rest, '%')
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		rest = rest[i:]

		switch {
		case strings.HasPrefix(rest, "%%"):
			b.WriteByte('%')
			rest = rest[2:]

		case strings.HasPrefix(rest, "%("):
			end := strings.Index(rest, ")s")
			if end < 0 {
				return "", fmt.Errorf("%w: %s.%s: bad reference syntax in %q", ErrInterpolation, section, key, rest)
			}
			name := rest[2:end]
			ref, ok := l.Raw(section, name)
			if !ok {
				return "", fmt.Errorf("%w: %s.%s: reference to missing key %q", ErrInterpolation, section, key, name)
			}
			if strings.Contains(ref, "%") {
				expanded, err := expandBasic(l, section, name, ref, depth+1)
				if err != nil {
					return "", err
				}
				ref = expanded
			}
			b.WriteString(ref)
			rest = rest[end+2:]

		default:
			return "", fmt.Errorf("%w: %s.%s: '%%' must be followed by '%%' or '('", ErrInterpolation, section, key)
		}
	}
	return b.String(), nil
}

// ExtendedInterpolation expands ${key} from the same section and ${section:key} from another.
// $$ is a literal dollar sign.
type ExtendedInterpolation struct{}

// Interpolate implements Interpolator.
func (ExtendedInterpolation) Interpolate(l Lookuper, section, key, raw string) (string, error) {
	return expandExtended(l, section, key, raw, 1)
}

func expandExtended(l Lookuper, section, key, raw string, depth int) (string, error) {
	if depth > maxInterpolationDepth {
		return "", fmt.Errorf("%w: %s.%s: reference depth exceeds %d", ErrInterpolation, section, key, maxInterpolationDepth)
	}

	var b strings.Builder
	rest := raw
	for rest != "" {
		i := strings.IndexByte(rest, '$')
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		rest = rest[i:]

		switch {
		case strings.HasPrefix(rest, "$$"):
			b.WriteByte('$')
			rest = rest[2:]

		case strings.HasPrefix(rest, "${"):
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				return "", fmt.Errorf("%w: %s.%s: bad reference syntax in %q", ErrInterpolation, section, key, rest)
			}
			refSection, refKey := section, rest[2:end]
			if sec, k, ok := strings.Cut(refKey, ":"); ok {
				refSection, refKey = sec, k
			}
			ref, ok := l.Raw(refSection, refKey)
			if !ok {
				return "", fmt.Errorf("%w: %s.%s: reference to missing key %q", ErrInterpolation, section, key, rest[2:end])
			}
			if strings.Contains(ref, "$") {
				expanded, err := expandExtended(l, refSection, refKey, ref, depth+1)
				if err != nil {
					return "", err
				}
				ref = expanded
			}
			b.WriteString(ref)
			rest = rest[end+1:]

		default:
			return "", fmt.Errorf("%w: %s.%s: '$' must be followed by '$' or '{'", ErrInterpolation, section, key)
		}
	}
	return b.String(), nil
}
