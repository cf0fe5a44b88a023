// FILE: lixenwraith/localconfig/decode_test.go
package localconfig

import (
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const networkConfig = `
[network]
ip = 192.168.1.100
endpoint = https://api.example.com:8443/v1
timeout = 2m30s
retry-count = 5
tags = prod,staging,test
ports = 80,443,8080
started = 2024-01-02T15:04:05Z
`

// TestScanWithComplexTypes tests scanning with various complex types
func TestScanWithComplexTypes(t *testing.T) {
	type NetworkConfig struct {
		IP         net.IP        `ini:"ip"`
		URL        *url.URL      `ini:"endpoint"`
		Timeout    time.Duration `ini:"timeout"`
		RetryCount int
		Tags       []string  `ini:"tags"`
		Ports      []int     `ini:"ports"`
		Started    time.Time `ini:"started"`
	}

	cfg := New()
	require.NoError(t, cfg.Read(Text(networkConfig)))

	var result NetworkConfig
	require.NoError(t, cfg.Scan("network", &result))

	assert.Equal(t, "192.168.1.100", result.IP.String())
	assert.Equal(t, "https://api.example.com:8443/v1", result.URL.String())
	assert.Equal(t, 150*time.Second, result.Timeout)
	assert.Equal(t, 5, result.RetryCount)
	assert.Equal(t, []string{"prod", "staging", "test"}, result.Tags)
	assert.Equal(t, []int{80, 443, 8080}, result.Ports)
	assert.Equal(t, 2024, result.Started.Year())
}

// TestScanCommaSlices tests comma-separated values into non-string slices
func TestScanCommaSlices(t *testing.T) {
	type Lists struct {
		Ports   []int     `ini:"ports"`
		Weights []float64 `ini:"weights"`
		Flags   []bool    `ini:"flags"`
		Names   []string  `ini:"names"`
		Empty   []int     `ini:"empty"`
	}

	cfg := New()
	require.NoError(t, cfg.Read(Text("[lists]\nports = 80,443\nweights = 0.5,1.5\nflags = true,false\nnames = a,b\nempty =\n")))

	var result Lists
	require.NoError(t, cfg.Scan("lists", &result))
	assert.Equal(t, []int{80, 443}, result.Ports)
	assert.Equal(t, []float64{0.5, 1.5}, result.Weights)
	assert.Equal(t, []bool{true, false}, result.Flags)
	assert.Equal(t, []string{"a", "b"}, result.Names)
	assert.Empty(t, result.Empty)
}

// TestScanTypes tests that inferred values land in matching Go types
func TestScanTypes(t *testing.T) {
	type Types struct {
		Int         int
		Float       float64
		True        bool
		False       bool
		None        *string
		StringValue string
		Missing     string
	}

	cfg := newTestConfig(t)

	result := Types{Missing: "kept"}
	require.NoError(t, cfg.Scan("types", &result))

	assert.Equal(t, 1, result.Int)
	assert.Equal(t, 2.0, result.Float)
	assert.True(t, result.True)
	assert.False(t, result.False)
	assert.Nil(t, result.None)
	assert.Equal(t, "Value", result.StringValue)
	assert.Equal(t, "kept", result.Missing)
}

// TestScanAll tests scanning every section at once
func TestScanAll(t *testing.T) {
	type ServerConfig struct {
		Host string `ini:"host"`
		Port int    `ini:"port"`
	}
	type AppConfig struct {
		Debug  bool         `ini:"debug"`
		Server ServerConfig `ini:"server"`
	}

	cfg := New()
	require.NoError(t, cfg.Read(Text("debug = yes\n\n[server]\nhost = localhost\nport = 8080\n")))

	var app AppConfig
	require.NoError(t, cfg.Scan("", &app))
	assert.True(t, app.Debug)
	assert.Equal(t, "localhost", app.Server.Host)
	assert.Equal(t, 8080, app.Server.Port)

	t.Run("IntoMap", func(t *testing.T) {
		m := make(map[string]any)
		require.NoError(t, cfg.Scan("server", &m))
		assert.Equal(t, int64(8080), m["port"])
		assert.Equal(t, true, m["debug"], "default keys are inherited")
	})
}

// TestInvalidScanTargets tests error cases for scanning
func TestInvalidScanTargets(t *testing.T) {
	cfg := newTestConfig(t)

	tests := []struct {
		name      string
		target    any
		expectErr string
	}{
		{"NilPointer", nil, "must be non-nil pointer"},
		{"NonPointer", "not-a-pointer", "must be non-nil pointer"},
		{"NilStructPointer", (*struct{})(nil), "must be non-nil pointer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.Scan("types", tt.target)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
		})
	}

	t.Run("MissingSection", func(t *testing.T) {
		var result struct{}
		assert.ErrorIs(t, cfg.Scan("nope", &result), ErrMissingSection)
	})
}

// TestCustomTypeConversion tests edge cases in type conversion
func TestCustomTypeConversion(t *testing.T) {
	t.Run("InvalidIPAddress", func(t *testing.T) {
		type Config struct {
			IP net.IP `ini:"ip"`
		}

		cfg := New()
		require.NoError(t, cfg.Read(Text("[net]\nip = not-an-ip\n")))

		var result Config
		err := cfg.Scan("net", &result)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid IP address")
	})

	t.Run("InvalidURL", func(t *testing.T) {
		type Config struct {
			URL url.URL `ini:"url"`
		}

		cfg := New()
		require.NoError(t, cfg.Read(Text("[net]\nurl = ://bad\n")))

		var result Config
		err := cfg.Scan("net", &result)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid URL")
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		type Config struct {
			Timeout time.Duration `ini:"timeout"`
		}

		cfg := New()
		require.NoError(t, cfg.Read(Text("[net]\ntimeout = soon\n")))

		var result Config
		assert.Error(t, cfg.Scan("net", &result))
	})
}

func TestMatchName(t *testing.T) {
	assert.True(t, matchName("string-value", "StringValue"))
	assert.True(t, matchName("retry_count", "RetryCount"))
	assert.True(t, matchName("PORT", "Port"))
	assert.False(t, matchName("port", "Host"))
}
