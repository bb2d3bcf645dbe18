package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/agbru/heapwatch/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the metrics HTTP server on addr until ctx is canceled or the
// listener fails. On cancellation it shuts the server down gracefully and
// returns ctx.Err().
func Serve(ctx context.Context, addr string, m *Metrics, log logging.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", m.WritePrometheus)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("metrics endpoint listening", logging.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
