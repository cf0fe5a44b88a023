// FILE: lixenwraith/localconfig/convenience_test.go
package localconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQuickFunctions tests the convenience Quick* functions
func TestQuickFunctions(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configFile := filepath.Join(tmpDir, "quick.ini")
	writeFile(t, configFile, "[server]\nhost = quickhost\nport = 7777\n")
	writeFile(t, filepath.Join(tmpDir, "quickapp"), "[server]\nport = 9999\n")

	t.Run("Quick", func(t *testing.T) {
		cfg, err := Quick("quickapp", File(configFile))
		require.NoError(t, err)

		// Last source should override
		assert.Equal(t, int64(9999), cfg.Get("server", "port"))

		// File value
		assert.Equal(t, "quickhost", cfg.Get("server", "host"))
	})

	t.Run("QuickMissingFile", func(t *testing.T) {
		cfg, err := Quick("quickapp", File(filepath.Join(tmpDir, "absent.ini")), Text("[s]\nk = 1"))
		assert.ErrorIs(t, err, ErrSourceUnavailable)
		require.NotNil(t, cfg)
		assert.Equal(t, int64(1), cfg.Get("s", "k"))
	})

	t.Run("MustQuickPanic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			cfg := MustQuick("quickapp", File(configFile))
			assert.NotNil(t, cfg)
		})

		// A directory cannot be parsed
		assert.Panics(t, func() {
			MustQuick("quickapp", File(tmpDir))
		})
	})
}

func TestDefaultLastSource(t *testing.T) {
	t.Run("XDG", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		assert.Equal(t, "/xdg/tool", DefaultLastSource("/usr/local/bin/tool"))
	})

	t.Run("Home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/home/tester")
		assert.Equal(t, "/home/tester/.config/tool", DefaultLastSource("tool"))
	})

	t.Run("NoProgram", func(t *testing.T) {
		assert.Empty(t, DefaultLastSource(""))
	})

	t.Run("ExpandHome", func(t *testing.T) {
		t.Setenv("HOME", "/home/tester")
		assert.Equal(t, "/home/tester", expandHome("~"))
		assert.Equal(t, "/home/tester/app.ini", expandHome("~/app.ini"))
		assert.Equal(t, "~user/app.ini", expandHome("~user/app.ini"))
		assert.Equal(t, "relative/app.ini", expandHome("relative/app.ini"))
	})
}

func TestDebug(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Read(Text("[server]\nport = 8080\n")))

	info := cfg.Debug()
	assert.Contains(t, info, "Loaded: false (pending 1)")
	assert.NotContains(t, info, "Current values")

	cfg.Get("server", "port")
	info = cfg.Debug()
	assert.Contains(t, info, "text: <text>")
	assert.Contains(t, info, "[server]")
	assert.Contains(t, info, "port = 8080 (integer)")
}

func TestClone(t *testing.T) {
	cfg := newTestConfig(t)
	clone := cfg.Clone()

	require.NoError(t, clone.Set("types", "int", 42))
	require.NoError(t, clone.AddSection("extra"))

	assert.Equal(t, int64(1), cfg.Get("types", "int"))
	assert.False(t, cfg.HasSection("extra"))
	assert.Equal(t, int64(42), clone.Get("types", "int"))

	original, err := cfg.ToText()
	require.NoError(t, err)
	assert.Equal(t, testConfig, original)

	c, ok := clone.Comment("types", "float")
	assert.True(t, ok)
	assert.Equal(t, "# A float value", c)
	assert.Equal(t, cfg.TrailingComment(), clone.TrailingComment())
}
