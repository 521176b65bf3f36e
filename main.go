package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/useinsider/kbmcp/pkg/kbfs"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := LoadConfig(serverName, args)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Single && cfg.Root != "" {
		cleanup, err := ensureSingleInstance(os.TempDir(), cfg.Root)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	if cfg.Root == "" {
		log.Warn("knowledge base root is not configured; set KB_ROOT or -root")
	}
	log.Info("server start",
		zap.String("root", cfg.Root),
		zap.String("transport", cfg.Transport),
		zap.Bool("compat", cfg.CompatMode),
		zap.Duration("call_timeout", cfg.CallTimeout),
	)

	svc := kbfs.New(cfg.Root, kbfs.WithLogger(log.Named("kbfs")))
	s := setupServer(cfg, svc, log.Named("tools"))

	switch cfg.Transport {
	case transportSSE:
		return serveHTTP(log, cfg.Addr, server.NewSSEServer(s))
	case transportHTTP:
		return serveHTTP(log, cfg.Addr, server.NewStreamableHTTPServer(s))
	default:
		return server.ServeStdio(s)
	}
}

type httpTransport interface {
	Start(addr string) error
	Shutdown(ctx context.Context) error
}

// serveHTTP runs t on addr until SIGINT or SIGTERM.
func serveHTTP(log *zap.Logger, addr string, t httpTransport) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		errCh <- t.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := t.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
