// File: lixenwraith/localconfig/doc.go

// Package localconfig reads, edits and writes INI-style configuration files while keeping
// comments and ordering intact, with values inferred as int64, float64, bool, nil or string.
//
// Features:
//   - Layered sources (inline text, readers, files) merged in registration order
//   - A last-priority per-user override file, ~/.config/<program> by default
//   - Lazy loading: sources are parsed on first access
//   - Comment-preserving round trip, spaced or compact output
//   - DEFAULT section inherited by every other section
//   - Key lookup by normalized name ("another_section" finds [another-section])
//   - Optional %(key)s or ${section:key} interpolation
//   - Struct decoding, TOML/YAML export, koanf provider and parser, file watching
//
// Quick Start:
//
//	cfg := localconfig.NewWithOptions(localconfig.Options{ProgramName: "myapp"})
//	_ = cfg.Read(localconfig.File("/etc/myapp.ini"))
//
//	port, _ := cfg.Int64("server", "port")
//	debug := cfg.GetDefault("server", "debug", false)
//
//	_ = cfg.Set("server", "port", 9090)
//	_ = cfg.Save("") // writes ~/.config/myapp
//
// Precedence (highest to lowest):
//  1. Last source (~/.config/<program> or Options.LastSource)
//  2. Sources in reverse registration order
//  3. DEFAULT section, for keys a section does not define
//
// Values written with Set are rendered so they read back as the same type:
// true becomes "True", nil becomes "None", 2.0 stays "2.0".
//
// A Config is not safe for concurrent use. Watch never touches the Config it was
// created from and delivers a fresh instance on each change.
package localconfig
