// File: lixenwraith/localconfig/type.go
package localconfig

import (
	"fmt"
	"strconv"
)

// String returns the value of section/key as a string.
// Converted values are rendered back; None becomes the empty string.
func (c *Config) String(section, key string) (string, error) {
	val, err := c.Lookup(section, key)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil // Treat None as empty string for convenience
	}
	if s, ok := val.(string); ok {
		return s, nil
	}
	return Render(val), nil
}

// Int64 returns the value of section/key as an int64.
// Floats are truncated and booleans map to 0 and 1.
func (c *Config) Int64(section, key string) (int64, error) {
	val, err := c.Lookup(section, key)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		// Base 0 accepts prefixed forms such as 0x1F
		if i, err := strconv.ParseInt(v, 0, 64); err == nil {
			return i, nil
		}
		return 0, fmt.Errorf("%w: cannot convert %q to int64 for %s.%s", ErrTypeMismatch, v, section, key)
	case nil:
		return 0, fmt.Errorf("%w: value for %s.%s is None, cannot convert to int64", ErrTypeMismatch, section, key)
	}

	return 0, fmt.Errorf("%w: cannot convert %T to int64 for %s.%s", ErrTypeMismatch, val, section, key)
}

// Float64 returns the value of section/key as a float64.
func (c *Config) Float64(section, key string) (float64, error) {
	val, err := c.Lookup(section, key)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case bool:
		if v {
			return 1.0, nil
		}
		return 0.0, nil
	case nil:
		return 0, fmt.Errorf("%w: value for %s.%s is None, cannot convert to float64", ErrTypeMismatch, section, key)
	}

	return 0, fmt.Errorf("%w: cannot convert %v to float64 for %s.%s", ErrTypeMismatch, val, section, key)
}

// Bool returns the value of section/key as a bool.
// Numbers are true when non-zero.
func (c *Config) Bool(section, key string) (bool, error) {
	val, err := c.Lookup(section, key)
	if err != nil {
		return false, err
	}

	switch v := val.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	case nil:
		return false, fmt.Errorf("%w: value for %s.%s is None, cannot convert to bool", ErrTypeMismatch, section, key)
	}

	return false, fmt.Errorf("%w: cannot convert %q to bool for %s.%s", ErrTypeMismatch, val, section, key)
}
