// Package http serves the web UI: the dashboard page plus the HTMX
// partials and form endpoints it talks to.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grana/internal/cache"
	"grana/internal/middleware/ratelimit"
	"grana/internal/middleware/security"
	"grana/internal/middleware/trace"
	"grana/internal/store"
	appweb "grana/web"
)

type Server struct {
	http.Server
	templates *template.Template

	lister      store.RecordLister
	creator     store.RecordCreator
	updater     store.RecordUpdater
	deleter     store.RecordDeleter
	suggestions store.SuggestionReader

	rateLimiter *ratelimit.Limiter
	headers     *security.HeadersMiddleware
	tracer      *trace.Middleware

	// Rendered dashboard partials keyed by period selector, flushed on
	// every write.
	dashboardCache *cache.LRUCache[dashboardView]
	cacheManager   *cache.Manager

	shutdownOnce sync.Once
}

// Deps bundles the ports the server needs.
type Deps struct {
	Lister      store.RecordLister
	Creator     store.RecordCreator
	Updater     store.RecordUpdater
	Deleter     store.RecordDeleter
	Suggestions store.SuggestionReader
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		lister:      deps.Lister,
		creator:     deps.Creator,
		updater:     deps.Updater,
		deleter:     deps.Deleter,
		suggestions: deps.Suggestions,

		rateLimiter:    ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		headers:        security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		tracer:         trace.NewMiddleware(clientIP),
		dashboardCache: cache.NewLRUCache[dashboardView](16, 5*time.Minute),
		cacheManager:   cache.NewManager(),
	}
	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	// UI partials
	mux.HandleFunc("/ui/dashboard", s.handleDashboard)
	mux.HandleFunc("/ui/records", s.handleListRecords)

	// Record operations
	mux.HandleFunc("/records", s.withRateLimit(s.handleCreateRecord))
	mux.HandleFunc("/records/update", s.withRateLimit(s.handleUpdateRecord))
	mux.HandleFunc("/records/delete", s.withRateLimit(s.handleDeleteRecord))

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.headers.Middleware(s.tracer.Middleware(mux)),
	}

	return s
}

// withRateLimit throttles write endpoints per client IP.
func (s *Server) withRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !s.rateLimiter.Allow(ip) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", ip, "method", r.Method, "path", r.URL.Path)
			rateLimitHits.Inc()
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// clientIP extracts the client address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	var categories, owners []string
	if s.suggestions != nil {
		var err error
		if categories, err = s.suggestions.Categories(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Category suggestions error", "error", err)
		}
		if owners, err = s.suggestions.Owners(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Owner suggestions error", "error", err)
		}
	}

	data := struct {
		Today      string
		Categories []string
		Owners     []string
	}{
		Today:      time.Now().Format("2006-01-02"),
		Categories: categories,
		Owners:     owners,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// flushDashboard drops cached partials after a write.
func (s *Server) flushDashboard() {
	s.dashboardCache.Flush()
}
