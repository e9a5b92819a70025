package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	pathttp "github.com/fwojciec/patview/http"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := &http.Server{
		Addr: c.Addr,
		Handler: pathttp.NewServer(deps.Extractor, deps.Logger,
			pathttp.WithRecords(deps.Records),
			pathttp.WithMaxBodyBytes(c.MaxBody),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-deps.Ctx.Done():
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
