// CLAUDE:SUMMARY CLI entry point for pageproof — one-shot capture, HTTP snapshot server, and MCP stdio modes.
// Command pageproof captures page snapshots and serves them to tooling.
//
// Usage:
//
//	pageproof -capture Home=https://example.com     # capture one page and exit
//	pageproof -serve                                # HTTP snapshot server
//	pageproof -mcp                                  # MCP server on stdio
//	pageproof -config pageproof.yaml -serve         # with a config file
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/pageproof/browser"
	"github.com/hazyhaar/pageproof/capture"
	"github.com/hazyhaar/pageproof/config"
	"github.com/hazyhaar/pageproof/dbopen"
	"github.com/hazyhaar/pageproof/observability"
	"github.com/hazyhaar/pageproof/shield"
	"github.com/hazyhaar/pageproof/snapstore"
)

func main() {
	configPath := flag.String("config", "", "path to pageproof.yaml config file")
	captureSpec := flag.String("capture", "", "one-shot capture: name=url")
	serve := flag.Bool("serve", false, "run the HTTP snapshot server")
	mcpMode := flag.Bool("mcp", false, "run the MCP server on stdio")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := observability.NewLogger(os.Stderr, observability.ParseLevel(*logLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *captureSpec, *serve, *mcpMode); err != nil {
		logger.Error("pageproof: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, captureSpec string, serve, mcpMode bool) error {
	cfg, err := resolveConfig(configPath)
	if err != nil {
		return err
	}

	if captureSpec == "" && !serve && !mcpMode {
		fmt.Fprintln(os.Stderr, "usage: pageproof [-config <file>] -capture <name=url> | -serve | -mcp")
		os.Exit(1)
	}

	c, err := buildCapturer(ctx, logger, cfg, captureSpec != "" || serve)
	if err != nil {
		return err
	}
	defer c.Close()

	if captureSpec != "" {
		return runCapture(ctx, c, captureSpec)
	}
	if mcpMode {
		return runMCP(ctx, c)
	}
	return runServe(ctx, logger, cfg, c)
}

func resolveConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg := config.Default()
	return &cfg, nil
}

// buildCapturer assembles the store, audit log, and (when a mode needs
// live captures) the browser.
func buildCapturer(ctx context.Context, logger *slog.Logger, cfg *config.Config, wantBrowser bool) (*capture.Capturer, error) {
	storeOpts := []snapstore.Option{
		snapstore.WithKeepHistory(cfg.Snapshots.KeepHistory),
		snapstore.WithLogger(logger),
	}
	if cfg.Snapshots.Ext != "" {
		storeOpts = append(storeOpts, snapstore.WithExtension(cfg.Snapshots.Ext))
	}
	if cfg.Snapshots.Digest {
		storeOpts = append(storeOpts, snapstore.WithDigest(snapstore.NewMarkdownDigest()))
	}
	store := snapstore.New(cfg.Snapshots.Root, storeOpts...)

	var audit *observability.CaptureLog
	if cfg.Observability.DBPath != "" {
		db, err := dbopen.Open(cfg.Observability.DBPath, dbopen.WithSchema(observability.Schema))
		if err != nil {
			return nil, fmt.Errorf("audit db: %w", err)
		}
		audit = observability.NewCaptureLog(db, observability.WithLogger(logger))
		if days := cfg.Observability.RetentionDays; days > 0 {
			if err := audit.Cleanup(ctx, days); err != nil {
				logger.Warn("pageproof: audit cleanup", "error", err)
			}
		}
	}

	var mgr *browser.Manager
	if wantBrowser {
		mgr = browser.NewManager(browser.Config{
			RemoteURL:    cfg.Browser.Remote,
			Headful:      cfg.Browser.Headful,
			Stealth:      cfg.Browser.Stealth,
			WindowWidth:  cfg.Browser.WindowWidth,
			WindowHeight: cfg.Browser.WindowHeight,
			NavTimeout:   cfg.Browser.NavTimeout.Std(),
			Logger:       logger,
		})
		if err := mgr.Start(ctx); err != nil {
			return nil, fmt.Errorf("browser start: %w", err)
		}
	}

	return capture.New(capture.Config{
		Store:       store,
		Browser:     mgr,
		Audit:       audit,
		KeepHistory: cfg.Snapshots.KeepHistory,
		Logger:      logger,
	})
}

func runCapture(ctx context.Context, c *capture.Capturer, spec string) error {
	name, url, ok := strings.Cut(spec, "=")
	if !ok || name == "" || url == "" {
		return fmt.Errorf("capture: expected name=url, got %q", spec)
	}

	res, err := c.CapturePage(ctx, name, url)
	if err != nil {
		return fmt.Errorf("capture %s: %w", name, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func runMCP(ctx context.Context, c *capture.Capturer) error {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "pageproof",
		Version: "1.0.0",
	}, nil)
	c.RegisterMCP(srv)

	return srv.Run(ctx, &mcp.StdioTransport{})
}

func runServe(ctx context.Context, logger *slog.Logger, cfg *config.Config, c *capture.Capturer) error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	for _, mw := range shield.DefaultStack() {
		r.Use(mw)
	}
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	c.RegisterHTTP(r)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("pageproof: serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("pageproof: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
