// Package preview serves the build output directory over plain HTTP for
// local inspection. It is deliberately small: http.FileServer semantics
// (directory listings, content-type inference, 404 for unknown paths), no
// auth, no TLS, no request logging. The only startup output is a single
// banner line with the bound host and port.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

const shutdownTimeout = 5 * time.Second

// Server serves a directory of generated pages.
type Server struct {
	dir    string
	host   string
	port   int
	reload *ReloadHub
}

// NewServer builds a preview server for the configured output directory.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		dir:  cfg.OutputDir(),
		host: cfg.Preview.Host,
		port: cfg.Preview.Port,
	}
	if cfg.Preview.LiveReload {
		s.EnableLiveReload()
	}
	return s
}

// EnableLiveReload turns on the SSE reload hub regardless of configuration.
// The watch supervisor uses this; the plain preview task leaves it to config.
func (s *Server) EnableLiveReload() {
	if s.reload == nil {
		s.reload = NewReloadHub()
	}
}

// Hub returns the reload hub, or nil when live reload is off.
func (s *Server) Hub() *ReloadHub { return s.reload }

func (s *Server) addr() string {
	return net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))
}

// Serve binds the listener and blocks until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := listen(ctx, s.addr())
	if err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryPreview, fmt.Sprintf("bind %s", s.addr()))
	}
	return s.serveListener(ctx, ln)
}

// serveListener runs the HTTP server on a pre-bound listener. Split from
// Serve so tests can hand in an ephemeral-port listener.
func (s *Server) serveListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.handler()}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	slog.Info("preview server listening",
		logfields.Host(s.host),
		logfields.Port(ln.Addr().(*net.TCPAddr).Port),
		logfields.Path(s.dir))

	if s.reload != nil {
		go func() {
			if err := WatchAndReload(ctx, s.dir, s.reload); err != nil {
				slog.Warn("live reload watcher stopped", logfields.Error(err))
			}
		}()
	}

	select {
	case <-ctx.Done():
		if s.reload != nil {
			s.reload.Shutdown()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return taskerrors.WrapError(err, taskerrors.CategoryPreview, "preview shutdown")
		}
		<-errCh
		return nil
	case err := <-errCh:
		if err != nil {
			return taskerrors.WrapError(err, taskerrors.CategoryPreview, "preview server")
		}
		return nil
	}
}

// handler is a bare file server unless live reload is on, in which case HTML
// responses get the reload script injected and the SSE endpoint is mounted.
func (s *Server) handler() http.Handler {
	fs := http.FileServer(http.Dir(s.dir))
	if s.reload == nil {
		return fs
	}
	mux := http.NewServeMux()
	mux.Handle(reloadPath, s.reload)
	mux.Handle("/", injectReloadScript(fs))
	return mux
}
