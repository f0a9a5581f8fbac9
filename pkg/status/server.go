package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the status server until ctx is canceled, then shuts it down
// gracefully. A nil error is returned on clean shutdown.
func Serve(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	srv := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log.Info("status server listening", slog.String("addr", addr))

	var err error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if sdErr := srv.Shutdown(shutdownCtx); sdErr != nil {
			log.Error("status server shutdown", slog.String("error", sdErr.Error()))
		}
		err = <-errCh
	case err = <-errCh:
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("status server stopped")
	return nil
}
