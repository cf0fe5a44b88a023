// FILE: lixenwraith/localconfig/decode.go
package localconfig

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// scanTagName is the struct tag read by Scan.
const scanTagName = "ini"

// Scan decodes the keys readable from section into target, a non-nil pointer to a struct or map.
// Fields match keys by tag `ini:"name"` or by name ignoring case and punctuation,
// so StringValue matches string-value. An empty section decodes every section into
// target by name, with default keys at the top level.
func (c *Config) Scan(section string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	var data map[string]any
	if section == "" {
		data = c.nestedMap()
	} else {
		items, err := c.Items(section)
		if err != nil {
			return err
		}
		data = itemMap(items)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          scanTagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
		MatchName:        matchName,
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("decode failed for section %q: %w", section, err)
	}
	return nil
}

// nestedMap returns default keys at the top level and each section as a sub-map.
func (c *Config) nestedMap() map[string]any {
	items, _ := c.Items(DefaultSection)
	nested := itemMap(items)
	for _, name := range c.Sections() {
		items, _ := c.Items(name)
		nested[name] = itemMap(items)
	}
	return nested
}

func itemMap(items []Item) map[string]any {
	m := make(map[string]any, len(items))
	for _, it := range items {
		m[it.Key] = it.Value
	}
	return m
}

// matchName compares names after dropping case and punctuation.
func matchName(mapKey, fieldName string) bool {
	return strings.ReplaceAll(Normalize(mapKey), "_", "") == strings.ReplaceAll(Normalize(fieldName), "_", "")
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		stringToNetIPHookFunc(),
		stringToURLHookFunc(),

		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		// Weak variant splits for any element type, not only []string
		mapstructure.StringToWeakSliceHookFunc(","),
	)
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 45 { // Max IPv6 length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}
		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		u, err := url.Parse(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
