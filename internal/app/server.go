package app

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Server is the HTTP listener for a Wire.
type Server struct {
	http *http.Server
}

// NewServer returns a server for h on addr.
func NewServer(addr string, h http.Handler) *Server {
	return &Server{http: &http.Server{Addr: addr, Handler: h}}
}

// Serve accepts on l until Stop is called.
func (s *Server) Serve(l net.Listener) error {
	return s.http.Serve(l)
}

// Stop drains in-flight requests until ctx ends.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Run prepares the store, listens on the configured address and serves until
// ctx is cancelled, then drains in-flight requests within ShutdownTimeout.
// ready, when non-nil, receives the bound address once listening.
func (w *Wire) Run(ctx context.Context, ready func(addr string)) error {
	created, err := w.Store.Init()
	if err != nil {
		return err
	}
	if created {
		w.Log.Printf("created empty users file at %s", w.Store.Path())
	}

	l, err := net.Listen("tcp", w.Config.Addr)
	if err != nil {
		return err
	}
	srv := NewServer(w.Config.Addr, w.Handler)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(l) }()
	w.Log.Printf("server running on http://%s", l.Addr())
	if ready != nil {
		ready(l.Addr().String())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
