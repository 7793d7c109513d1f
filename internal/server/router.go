// Package server sets up the vidgrab HTTP server.
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"vidgrab/internal/contracts"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed web
var webFS embed.FS

// Deps are the services the HTTP layer is wired to.
type Deps struct {
	Service     contracts.CatalogService
	Sessions    *session.Store
	DownloadDir string
	RateLimit   float64
	RateBurst   int
}

type handlers struct {
	svc         contracts.CatalogService
	sessions    *session.Store
	downloadDir string
}

// NewRouter returns a http Handler.
func NewRouter(d Deps) http.Handler {
	h := &handlers{
		svc:         d.Service,
		sessions:    d.Sessions,
		downloadDir: d.DownloadDir,
	}
	limit := newClientLimiter(d.RateLimit, d.RateBurst)

	// Initialize router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- Static Frontend ---
	r.Handle("/*", StaticHandler())

	// --- API Routes ---
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", handleHealth)
		r.Get("/platforms", handlePlatforms)
		r.Get("/files/{name}", h.handleFile)

		// Routes that run the extraction tool
		r.Group(func(r chi.Router) {
			r.Use(limit.Middleware)
			r.Get("/formats", h.handleFormats)
			r.Post("/download", h.handleDownload)
		})

		// Sessions API
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.handleCreateSession)
			r.Get("/{id}", h.handleGetSession)
			r.Put("/{id}/selection", h.handleSelectFormat)
			r.Delete("/{id}", h.handleDeleteSession)

			// URL edits arrive per keystroke; the store throttles the fetches they trigger
			r.Put("/{id}/url", h.handleSetSessionURL)
			r.With(limit.Middleware).Post("/{id}/download", h.handleSessionDownload)
		})
	})

	// Legacy single-route API
	r.Group(func(r chi.Router) {
		r.Use(limit.Middleware)
		r.Get("/api/download", h.handleLegacyFormats)
		r.Post("/api/download", h.handleLegacyDownload)
	})

	return r
}

// StaticHandler serves the embedded web UI.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		logger.Pl.E("Dev Error: embedded web directory missing: %v", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(sub))
}

// StartServer serves on host:port until ctx is done, then shuts down gracefully.
func StartServer(ctx context.Context, host string, port int, d Deps) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           NewRouter(d),
		ReadHeaderTimeout: consts.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		displayHost := host
		if displayHost == "" {
			displayHost = "localhost"
		}
		logger.Pl.S("%s web server running on http://%s", consts.ProgramName, net.JoinHostPort(displayHost, strconv.Itoa(port)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Pl.I("Shutting down web server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), consts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

