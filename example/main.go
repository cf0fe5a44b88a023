// FILE: example/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lixenwraith/localconfig"
)

// ServerConfig is decoded from the [server] section
type ServerConfig struct {
	Host        string        `ini:"host"`
	Port        int           `ini:"port"`
	IdleTimeout time.Duration `ini:"idle_timeout"`
	RateLimit   bool          `ini:"rate_limit"`
}

const defaults = `# Listener settings
[server]
host = localhost
port = 8080
idle_timeout = 30s
rate_limit = off
`

func main() {
	dir, err := os.MkdirTemp("", "localconfig-demo")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	override := filepath.Join(dir, "demo.ini")

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Inline defaults, overridden by the per-user file
	cfg, err := localconfig.NewBuilder().
		WithText(defaults).
		WithLastSource(override).
		WithLogger(logger).
		WithValidator(func(c *localconfig.Config) error {
			port, err := c.Int64("server", "port")
			if err != nil {
				return err
			}
			if port < 1024 || port > 65535 {
				return errors.New("server.port outside 1024-65535")
			}
			return nil
		}).
		Build()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	var server ServerConfig
	if err := cfg.Scan("server", &server); err != nil {
		log.Fatal(err)
	}
	log.Printf("Initial: %+v", server)

	// Write a template users can edit, then a real override
	if err := cfg.SaveTemplate(override + ".example"); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Save(""); err != nil {
		log.Fatal(err)
	}

	w, err := localconfig.Watch(cfg, func(fresh *localconfig.Config, err error) {
		if err != nil {
			log.Printf("Reload failed: %v", err)
			return
		}
		var updated ServerConfig
		if err := fresh.Scan("server", &updated); err != nil {
			log.Printf("Decode failed: %v", err)
			return
		}
		log.Printf("Reloaded: %+v", updated)
	}, localconfig.WithDebounce(100*time.Millisecond))
	if err != nil {
		log.Fatal(err)
	}
	w.StartAsync()
	defer w.Stop()

	// Simulate an external edit of the override file
	go func() {
		time.Sleep(500 * time.Millisecond)
		editor := localconfig.NewWithOptions(localconfig.Options{LastSource: override})
		if err := editor.SetWithComment("server", "port", 9090, "Changed by the demo"); err != nil {
			log.Printf("Edit failed: %v", err)
			return
		}
		if err := editor.Save(""); err != nil {
			log.Printf("Save failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
	}
	log.Println("Shutting down")
}
