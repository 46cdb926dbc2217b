// Package preview serves the generated README over HTTP for local review.
//
// The README is read and rendered on every request, so regenerating it
// (for example with `make all --watch`) is picked up on reload.
package preview

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/stratum-research/autoreadme/pkg/generate"
)

// DefaultPort is the port `preview` listens on when none is given.
const DefaultPort = 8000

// AssetsDir is the directory served under /assets/, relative to the project.
const AssetsDir = "config/assets"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { max-width: 880px; margin: 2rem auto; padding: 0 1rem; font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; line-height: 1.5; color: #1f2328; }
pre, code { background: #f6f8fa; border-radius: 6px; }
pre { padding: 1rem; overflow: auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d0d7de; padding: 6px 13px; }
img { max-width: 100%; }
</style>
</head>
<body>
{{ .Body }}
</body>
</html>
`))

// Server serves README.md from Dir.
type Server struct {
	Addr   string
	Dir    string
	Logger *log.Logger

	md     goldmark.Markdown
	router *chi.Mux
	server *http.Server
}

// NewServer creates a preview server for the project in dir. A nil logger
// uses log.Default().
func NewServer(dir, addr string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		Addr:   addr,
		Dir:    dir,
		Logger: logger,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		router: chi.NewRouter(),
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/raw", s.handleRaw)

	assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(s.Dir, AssetsDir))))
	s.router.Handle("/assets/*", assets)
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) readme() ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, generate.ReadmeFile))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	src, err := s.readme()
	if err != nil {
		s.notFound(w, err)
		return
	}

	var body bytes.Buffer
	if err := s.md.Convert(src, &body); err != nil {
		http.Error(w, "render README: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = page.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: generate.ReadmeFile,
		Body:  template.HTML(body.String()),
	})
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	src, err := s.readme()
	if err != nil {
		s.notFound(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write(src)
}

func (s *Server) notFound(w http.ResponseWriter, err error) {
	if errors.Is(err, os.ErrNotExist) {
		http.Error(w, "README.md not found; run `autoreadme make readme` first", http.StatusNotFound)
		return
	}
	s.Logger.Error("read README", "error", err)
	http.Error(w, "read README: "+err.Error(), http.StatusInternalServerError)
}
