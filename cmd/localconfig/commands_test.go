package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appConfig = `# Server settings
[server]

host = localhost

port = 8080
`

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), append([]string{"localconfig"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeApp(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.ini")
	require.NoError(t, os.WriteFile(path, []byte(appConfig), 0644))
	return path
}

func TestGetCommand(t *testing.T) {
	path := writeApp(t)

	code, out, _ := runCLI(t, "-s", path, "get", "server", "port")
	assert.Equal(t, 0, code)
	assert.Equal(t, "8080\n", out)

	t.Run("InlineSourceOverrides", func(t *testing.T) {
		code, out, _ := runCLI(t, "-s", path, "-s", `[server]\nport = 1`, "get", "server", "port")
		assert.Equal(t, 0, code)
		assert.Equal(t, "1\n", out)
	})

	t.Run("Interpolation", func(t *testing.T) {
		code, out, _ := runCLI(t, "--interpolation", "extended", "-s", `[a]\nx = 1\ny = ${x}0`, "get", "a", "y")
		assert.Equal(t, 0, code)
		assert.Equal(t, "10\n", out)
	})

	t.Run("MissingKey", func(t *testing.T) {
		code, _, errOut := runCLI(t, "-s", path, "get", "server", "nope")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "error:")
	})

	t.Run("WrongArgs", func(t *testing.T) {
		code, _, errOut := runCLI(t, "-s", path, "get", "server")
		assert.Equal(t, 2, code)
		assert.Contains(t, errOut, "usage error")
	})

	t.Run("UnknownInterpolation", func(t *testing.T) {
		code, _, _ := runCLI(t, "--interpolation", "fancy", "-s", path, "get", "server", "port")
		assert.Equal(t, 2, code)
	})

	t.Run("MissingSourceWarns", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "absent.ini")
		code, out, errOut := runCLI(t, "-s", path, "-s", missing, "get", "server", "host")
		assert.Equal(t, 0, code)
		assert.Equal(t, "localhost\n", out)
		assert.Contains(t, errOut, "warning:")
	})
}

func TestSetCommand(t *testing.T) {
	path := writeApp(t)
	last := filepath.Join(t.TempDir(), "user.ini")

	code, _, errOut := runCLI(t, "-s", path, "--last", last, "set", "--comment", "Public port", "server", "port", "9090")
	require.Equal(t, 0, code, errOut)

	saved, err := os.ReadFile(last)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "# Public port\nport = 9090")

	code, out, _ := runCLI(t, "-s", path, "--last", last, "get", "server", "port")
	assert.Equal(t, 0, code)
	assert.Equal(t, "9090\n", out)

	t.Run("NewSection", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.ini")
		code, _, _ := runCLI(t, "-s", path, "set", "--out", target, "cache", "size", "64")
		require.Equal(t, 0, code)

		saved, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(saved), "[cache]\n\nsize = 64\n")
	})

	t.Run("NoTarget", func(t *testing.T) {
		code, _, errOut := runCLI(t, "-s", path, "set", "server", "port", "1")
		assert.Equal(t, 2, code)
		assert.Contains(t, errOut, "--out or --last")
	})
}

func TestListCommands(t *testing.T) {
	path := writeApp(t)

	t.Run("Sections", func(t *testing.T) {
		code, out, _ := runCLI(t, "-s", path, "-s", `[db]\nname = x`, "sections")
		assert.Equal(t, 0, code)
		assert.Equal(t, "server\ndb\n", out)
	})

	t.Run("Items", func(t *testing.T) {
		code, out, _ := runCLI(t, "-s", path, "-s", `debug = yes`, "--sep", ": ", "items", "server")
		assert.Equal(t, 0, code)
		assert.Equal(t, "host: localhost\nport: 8080\ndebug: True\n", out)
	})

	t.Run("ItemsMissingSection", func(t *testing.T) {
		code, _, _ := runCLI(t, "-s", path, "items", "nope")
		assert.Equal(t, 1, code)
	})
}

func TestOutputCommands(t *testing.T) {
	path := writeApp(t)

	t.Run("Dump", func(t *testing.T) {
		code, out, _ := runCLI(t, "-s", path, "dump")
		assert.Equal(t, 0, code)
		assert.Equal(t, appConfig, out)
	})

	t.Run("DumpCompact", func(t *testing.T) {
		code, out, _ := runCLI(t, "-s", path, "--compact", "--sep", "=", "dump")
		assert.Equal(t, 0, code)
		assert.Equal(t, "# Server settings\n[server]\nhost=localhost\nport=8080", out)
	})

	t.Run("Template", func(t *testing.T) {
		code, out, _ := runCLI(t, "-s", path, "template")
		assert.Equal(t, 0, code)
		assert.Equal(t, "# Server settings\n# [server]\n\n# host = localhost\n\n# port = 8080\n", out)
	})

	t.Run("TemplateToFile", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "app.ini.template")
		code, _, _ := runCLI(t, "-s", path, "template", "--out", target)
		require.Equal(t, 0, code)
		_, err := os.Stat(target)
		assert.NoError(t, err)
	})

	t.Run("ExportTOML", func(t *testing.T) {
		code, out, _ := runCLI(t, "-s", path, "export")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "[server]")
		assert.Contains(t, out, "port = 8080")
	})

	t.Run("ExportYAML", func(t *testing.T) {
		code, out, _ := runCLI(t, "-s", path, "export", "--format", "yaml")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "# Server settings")
		assert.Contains(t, out, "port: 8080")
	})

	t.Run("ExportUnknownFormat", func(t *testing.T) {
		code, _, _ := runCLI(t, "-s", path, "export", "--format", "xml")
		assert.Equal(t, 2, code)
	})
}

func TestUnescapeNewlines(t *testing.T) {
	assert.Equal(t, "[s]\nk = v", unescapeNewlines(`[s]\nk = v`))
	assert.Equal(t, "plain", unescapeNewlines("plain"))
}
