// Command devserver runs the stub backend used for local development of the
// chat client. It answers the endpoints the client consumes with canned
// responses; it is not the real companion backend.
package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"procure-ai/client/internal/devserver"
)

func main() {
	addr := os.Getenv("DEVSERVER_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           devserver.NewRouter(),
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Starting dev server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Dev server failed", "error", err)
		os.Exit(1)
	}
}
