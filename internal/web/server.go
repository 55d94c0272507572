package web

import (
	"context"
	"database/sql"
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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matealv/recetario/internal/config"
	"github.com/matealv/recetario/internal/media"
	"github.com/matealv/recetario/internal/scrape"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates and configures the HTTP server for the Recetario
// web UI.
func NewServer(db *sql.DB, cfg *config.Config, extractor scrape.Extractor, store *media.Store, version string) *http.Server {
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-FS: %v", err)
	}

	h := &Handlers{
		db:        db,
		cfg:       cfg,
		extractor: extractor,
		store:     store,
		renderer:  NewRenderer(templateSub, version),
		flash:     newFlashCodec(cfg.SecretKey),
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Get("/", h.HandleIndex)
	r.Get("/folders/{name}", h.HandleFolder)
	r.Get("/recipes", h.HandleList)
	r.Get("/recipes/{id}", h.HandleDetail)
	r.Post("/recipes/{id}/delete", h.HandleDelete)
	r.Post("/recipes/{id}/folder", h.HandleMove)
	r.Get("/search", h.HandleSearch)
	r.Get("/add", h.HandleAddForm)
	r.Post("/add", h.HandleAdd)

	r.Post("/api/folders", h.HandleCreateFolder)
	r.Delete("/api/folders/{name}", h.HandleDeleteFolder)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticSub)))
	if store != nil {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Root()))))
	}

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler: r,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self'; media-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on
// SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("Recetario running at http://%s", srv.Addr)

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
