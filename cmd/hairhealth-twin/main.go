// Command hairhealth-twin serves an in-memory version of the hair-health API, for running the
// contract tests locally.
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

	"github.com/hairhealth/api-contract-tests/internal/twin"
	"github.com/hairhealth/api-contract-tests/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	var (
		addr       string
		secret     string
		debug      bool
		jsonFormat bool
	)
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&addr, "addr", ":8080", "address to listen on")
	fs.StringVar(&secret, "secret", "", "token signing secret (default: a fixed development secret)")
	fs.BoolVar(&debug, "debug", false, "log every request")
	fs.BoolVar(&jsonFormat, "json", false, "write logs as JSON")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, jsonFormat, debug)
	server := &http.Server{
		Addr:              addr,
		Handler:           twin.New(twin.Config{Secret: []byte(secret), Logger: logger}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
