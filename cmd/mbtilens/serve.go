package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tinytelemetry/mbtilens/internal/catalog"
	"github.com/tinytelemetry/mbtilens/internal/httpserver"
	"github.com/tinytelemetry/mbtilens/internal/socketrpc"
	"github.com/tinytelemetry/mbtilens/internal/view"

	"github.com/charmbracelet/lipgloss"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser front-end and the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServer serves the web front-end until SIGINT or SIGTERM.
func runServer(cfg appConfig, logger *zap.Logger) error {
	base := catalog.Default()
	current, err := buildCatalog(cfg)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	holder := catalog.NewHolder(current)

	// Set up context and signal handling before errgroup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var watcher *catalog.Watcher
	if cfg.WatchCatalog && cfg.CatalogPath != "" {
		watcher, err = catalog.NewWatcher(cfg.CatalogPath, base, holder, logger)
		if err != nil {
			return fmt.Errorf("failed to create catalog watcher: %w", err)
		}
		defer watcher.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	apiServer := httpserver.NewServer(cfg.APIAddr, holder, view.Options{
		Strings:    cfg.Strings,
		Mode:       cfg.Mode,
		ApplyColor: cfg.ApplyColor,
	}, logger)
	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	defer apiServer.Stop()

	// Socket RPC lets local terminal clients read the live catalog
	socketUp := false
	if cfg.SocketServe {
		sockServer := socketrpc.NewServer(cfg.SocketPath, holder, logger)
		if err := sockServer.Start(); err != nil {
			logger.Warn("failed to start socket server", zap.Error(err))
		} else {
			socketUp = true
			defer sockServer.Stop()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		// Shutdown deadline starts now, not at boot.
		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		cleanupSocket(cfg.SocketPath, socketUp)
		os.Exit(1)
	}()

	printStartupBanner(cfg, apiServer.Addr(), len(holder.Codes()), socketUp)

	var runners []runner
	if watcher != nil {
		runners = append(runners, watcher)
	}
	err = waitForShutdown(ctx, apiServer, runners...)
	signal.Stop(sigCh)
	if err != nil {
		logger.Error("server: stopped on error", zap.Error(err))
		return err
	}
	return nil
}

type waiter interface {
	Wait(ctx context.Context) error
}

type runner interface {
	Run(ctx context.Context) error
}

// waitForShutdown blocks until ctx is cancelled (from the signal handler)
// or one of the long-lived parts fails, which cancels the others.
func waitForShutdown(ctx context.Context, api waiter, runners ...runner) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := api.Wait(gctx); err != nil {
			return fmt.Errorf("API server: %w", err)
		}
		return nil
	})
	for _, r := range runners {
		g.Go(func() error {
			return r.Run(gctx)
		})
	}

	return g.Wait()
}

func printStartupBanner(cfg appConfig, addr string, types int, socketUp bool) {
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("○")

	var lines []string
	lines = append(lines, "")
	lines = append(lines, "    "+cyan.Bold(true).Render("mbtilens")+"  "+dim.Render("v"+version))
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator)
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Web"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  HTTP           %s", check, cyan.Render("http://"+addr+"/")))
	lines = append(lines, fmt.Sprintf("    %s  Display Mode   %s", check, dim.Render(string(cfg.Mode))))
	if cfg.ApplyColor {
		lines = append(lines, fmt.Sprintf("    %s  Result Color   %s", check, dim.Render("enabled")))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Result Color   %s", dot, dim.Render("disabled")))
	}
	if socketUp {
		lines = append(lines, fmt.Sprintf("    %s  Unix Socket    %s", check, cyan.Render(shortenPath(cfg.SocketPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Unix Socket    %s", dot, dim.Render("disabled")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Catalog"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Types          %s", check, dim.Render(fmt.Sprintf("%d", types))))
	if cfg.CatalogPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Override       %s", check, dim.Render(shortenPath(cfg.CatalogPath))))
		if cfg.WatchCatalog {
			lines = append(lines, fmt.Sprintf("    %s  Live Reload    %s", check, dim.Render("watching")))
		}
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Override       %s", dot, dim.Render("built-in only")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Config"))
	lines = append(lines, "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}

	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

// cleanupSocket removes the socket file on a forced exit, when deferred
// Stop calls never run.
func cleanupSocket(path string, started bool) {
	if started {
		os.Remove(path)
	}
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
