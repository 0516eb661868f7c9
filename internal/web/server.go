// Package web serves the browser UI: login, study, create and manage pages
// over a single study session.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hpungsan/flashdeck/internal/config"
	"github.com/hpungsan/flashdeck/internal/session"
	"github.com/hpungsan/flashdeck/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates and configures the HTTP server for the flashdeck web UI.
func NewServer(st *store.Store, cfg *config.Config, version, bind string, port int) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", bind, port),
		Handler:           NewHandler(st, cfg, version),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the routed handler. One session serves every request.
func NewHandler(st *store.Store, cfg *config.Config, version string) http.Handler {
	// Create sub-FS for templates (strip "templates/" prefix)
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}

	// Create sub-FS for static files (strip "static/" prefix)
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-FS: %v", err)
	}

	h := &Handlers{
		session:  session.New(st),
		cfg:      cfg,
		renderer: NewRenderer(templateSub, version),
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/study", http.StatusFound)
	})
	mux.HandleFunc("GET /login", h.HandleLoginPage)
	mux.HandleFunc("POST /login", h.HandleLogin)
	mux.HandleFunc("POST /logout", h.requireLogin(h.HandleLogout))

	mux.HandleFunc("GET /study", h.requireLogin(h.HandleStudy))
	mux.HandleFunc("POST /study/next", h.requireLogin(h.HandleNext))
	mux.HandleFunc("POST /study/previous", h.requireLogin(h.HandlePrevious))
	mux.HandleFunc("POST /study/reveal", h.requireLogin(h.HandleReveal))

	mux.HandleFunc("GET /create", h.requireLogin(h.HandleCreatePage))
	mux.HandleFunc("POST /create", h.requireLogin(h.HandleCreate))

	mux.HandleFunc("GET /manage", h.requireLogin(h.HandleManage))
	mux.HandleFunc("POST /cards/{position}/delete", h.requireLogin(h.HandleDelete))
	mux.HandleFunc("DELETE /cards/{position}", h.requireLogin(h.HandleDelete))
	mux.HandleFunc("POST /cards/delete-all", h.requireLogin(h.HandleDeleteAll))

	// Static file server
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	// Wrap with security headers
	return securityHeaders(mux)
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("flashdeck UI running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
