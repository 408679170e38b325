package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	offerhttp "github.com/fwojciec/offerdoc/http"
)

// shutdownTimeout bounds how long in-flight requests may finish after stop.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	opts := []offerhttp.ServerOption{offerhttp.WithMaxBodyBytes(c.MaxBody)}
	if deps.Logger != nil {
		opts = append(opts, offerhttp.WithLogger(deps.Logger))
	}

	srv := &http.Server{
		Handler:           offerhttp.NewServer(deps.TemplatesFor, deps.Editor, deps.Renderer, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fail(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fail(deps, err)
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintln(deps.Stdout, "Server stopped.")
	return nil
}
