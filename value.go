// File: lixenwraith/localconfig/value.go
package localconfig

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind is the inferred type of a raw configuration value.
type Kind int

const (
	// KindInteger is a base-10 integer that fits in int64
	KindInteger Kind = iota
	// KindFloat is a decimal floating point number
	KindFloat
	// KindBoolean is one of true/false/yes/no/on/off, case-insensitive
	KindBoolean
	// KindNull is the literal None, case-insensitive
	KindNull
	// KindString is anything else
	KindString
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// nullLiteral is the spelling used for absent values in both directions.
const nullLiteral = "None"

var (
	trueWords  = map[string]bool{"true": true, "yes": true, "on": true}
	falseWords = map[string]bool{"false": true, "no": true, "off": true}
)

// Classify returns the first matching kind for raw.
// Integer and float checks run before boolean so "1" and "0" are never booleans.
func Classify(raw string) Kind {
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return KindInteger
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return KindFloat
	}
	lower := strings.ToLower(raw)
	if trueWords[lower] || falseWords[lower] {
		return KindBoolean
	}
	if lower == strings.ToLower(nullLiteral) {
		return KindNull
	}
	return KindString
}

// Coerce converts raw to int64, float64, bool, nil or string according to Classify.
func Coerce(raw string) any {
	switch Classify(raw) {
	case KindInteger:
		i, _ := strconv.ParseInt(raw, 10, 64)
		return i
	case KindFloat:
		f, _ := strconv.ParseFloat(raw, 64)
		return f
	case KindBoolean:
		return trueWords[strings.ToLower(raw)]
	case KindNull:
		return nil
	default:
		return raw
	}
}

// Render converts a typed value to the canonical string Coerce reads back.
func Render(value any) string {
	switch v := value.(type) {
	case nil:
		return nullLiteral
	case string:
		return v
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10)
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatFloat keeps a decimal point or exponent so the output classifies as float again.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// valueCache memoizes Coerce per distinct raw string.
type valueCache map[string]any

func (vc valueCache) typed(raw string) any {
	if v, ok := vc[raw]; ok {
		return v
	}
	v := Coerce(raw)
	vc[raw] = v
	return v
}
