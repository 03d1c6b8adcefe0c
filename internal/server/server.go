package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Bahjat/castify/internal/converter"
	"github.com/Bahjat/castify/internal/platform/metrics"
	"github.com/Bahjat/castify/internal/platform/middleware"
)

// Options configures the HTTP server.
type Options struct {
	Port            string
	ManifestURL     string // target of /.well-known/farcaster.json; 404 when empty
	CORSAllowOrigin string
}

// New wires the routes and middleware chain into an *http.Server. The write
// timeout leaves room for the transport's own per-request deadline.
func New(opts Options, transport *converter.Transport, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /.well-known/farcaster.json", manifestHandler(opts.ManifestURL))

	var handler http.Handler = mux
	handler = middleware.CORS("/api/", opts.CORSAllowOrigin)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", opts.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
	return srv
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

func manifestHandler(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if target == "" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	}
}
