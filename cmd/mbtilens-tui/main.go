package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinytelemetry/mbtilens/internal/catalog"
	"github.com/tinytelemetry/mbtilens/internal/model"
	"github.com/tinytelemetry/mbtilens/internal/socketrpc"
	"github.com/tinytelemetry/mbtilens/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var fragment string
	var socketPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/mbtilens/config.yml)")
	flag.StringVar(&fragment, "fragment", "", "route to open on start, e.g. \"/result?mbti=INFP\"")
	flag.StringVar(&socketPath, "socket", "", "read the catalog from a running mbtilens service at this socket path")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("mbtilens TUI - Terminal Client\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if fragment != "" {
		cfg.Fragment = fragment
	}
	if socketPath != "" {
		cfg.SocketPath = socketPath
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	logger, cleanup := fileLogger()
	defer cleanup()

	c := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath, c)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		c = loaded
	}

	var source model.Catalog = c
	if cfg.SocketPath != "" {
		client, err := socketrpc.Dial(cfg.SocketPath)
		if err != nil {
			return fmt.Errorf("cannot connect to mbtilens service at %s: %w\nIs the service running? Start it with: mbtilens serve", cfg.SocketPath, err)
		}
		defer client.Close()
		source = socketrpc.NewRemote(client, c, logger)
	}

	app := tui.NewApp(source, tui.Options{
		Strings:    cfg.Strings,
		Mode:       cfg.Mode,
		ApplyColor: cfg.ApplyColor,
		Background: cfg.BackgroundKind,
		Fragment:   cfg.Fragment,
		Logger:     logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// fileLogger writes JSON logs under ~/.local/state/mbtilens so the alt
// screen stays clean. Any setup failure yields a no-op logger.
func fileLogger() (*zap.Logger, func()) {
	nop := zap.NewNop()

	home, err := os.UserHomeDir()
	if err != nil {
		return nop, func() {}
	}
	logDir := filepath.Join(home, ".local", "state", "mbtilens")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nop, func() {}
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{filepath.Join(logDir, "mbtilens-tui.log")}
	config.ErrorOutputPaths = config.OutputPaths
	logger, err := config.Build()
	if err != nil {
		return nop, func() {}
	}
	return logger, func() { _ = logger.Sync() }
}
