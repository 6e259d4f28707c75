package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"almanac/internal/config"
	"almanac/internal/dataset"
	apierrors "almanac/internal/errors"
	"almanac/internal/infrastructure"
	customMiddleware "almanac/internal/middleware"
	"almanac/internal/services"
	handlers "almanac/internal/transport/http"
)

const (
	// VERSION is reported by /api/version and the health endpoints
	VERSION = "1.0.0"
	AppName = "Almanac - American League Dashboard"
)

// BuildTime is set at compile time
var BuildTime = time.Now().Format(time.RFC3339)

// Application is the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Dataset       *dataset.Dataset
	DataService   *services.DataService
	HealthService *services.HealthService
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	FrontendFS    fs.FS

	metrics *infrastructure.BusinessMetrics
}

// NewApplication wires the dashboard server: logger, directories,
// OpenTelemetry, the cleaned dataset, the query services and the HTTP
// stack. It returns an error when the cleaned data is missing so the
// caller can exit non-zero with the cleaner hint intact.
func NewApplication(cfg *config.Config, paths *config.Paths, frontendFS fs.FS) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port))

	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution()

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		FrontendFS:    frontendFS,
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices loads the cleaned dataset and builds the query and
// health services on top of it. A missing cleaned file is fatal here:
// the dashboard never starts on partial data.
func (a *Application) initializeServices() error {
	if err := a.Paths.ValidateCleanData(); err != nil {
		return err
	}

	ds, err := dataset.NewLoader(a.Logger).Load(context.Background(), a.Paths.CleanDir)
	if err != nil {
		return fmt.Errorf("failed to load cleaned data: %w", err)
	}
	a.Dataset = ds

	metrics, err := infrastructure.CreateBusinessMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create business metrics: %w", err)
	}
	a.metrics = metrics

	system, err := infrastructure.NewSystemMetrics(a.OTelProviders.Meter)
	if err != nil {
		a.Logger.Warn("System metrics unavailable", slog.String("error", err.Error()))
	}

	a.DataService = services.NewDataService(ds, a.Logger, metrics)
	a.HealthService = services.NewHealthService(ds, VERSION, BuildTime, system, a.Logger)

	minYear, maxYear := ds.YearRange()
	a.Logger.Info("Dataset loaded",
		slog.String("dir", a.Paths.CleanDir),
		slog.Int("first_year", minYear),
		slog.Int("last_year", maxYear),
		slog.Any("rows", ds.Counts()))

	return nil
}

// setupRouter builds the middleware chain and mounts all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Group(func(r chi.Router) {
		otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
		if err != nil {
			a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
		} else {
			r.Use(otelMiddleware.Handler)
		}

		r.Use(customMiddleware.BusinessMetricsMiddleware(a.metrics))
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.CORS(a.getCORSConfig()))

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
		a.setupFrontend(r)
	})

	// Prometheus scrapes stay outside the middleware group
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures the JSON API under /api
func (a *Application) setupAPIRoutes(r chi.Router) {
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Server.Debug)
	dataHandler := handlers.NewDataHandler(a.DataService, a.Logger, errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		// Unknown API paths and wrong methods answer in problem+json,
		// not chi's plain-text defaults. Mounted sub-routers inherit
		// these handlers, so they must be set before Mount.
		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		r.Mount("/", dataHandler.Routes())
	})
}

// setupFrontend serves the embedded dashboard. Unmatched non-API paths
// fall back to index.html so reloads on client-side routes still work.
func (a *Application) setupFrontend(r chi.Router) {
	if a.FrontendFS == nil {
		a.Logger.Warn("Frontend filesystem not available, serving API only")
		return
	}

	r.Route("/assets", func(r chi.Router) {
		r.Use(customMiddleware.Compress(5))
		r.HandleFunc("/*", a.serveStaticWithMIME(a.FrontendFS).ServeHTTP)
	})
	r.Get("/favicon.svg", a.serveFrontendFile(a.FrontendFS, "favicon.svg"))

	r.Get("/*", a.serveSPAHandler(a.FrontendFS))
}

// serveFrontendFile serves a single named file from the embedded frontend
func (a *Application) serveFrontendFile(frontendFS fs.FS, filename string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := frontendFS.Open(filename)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer file.Close()

		setMIMEType(w, filename)
		w.Header().Set("Cache-Control", "public, max-age=86400")

		io.Copy(w, file)
	}
}

// serveStaticWithMIME serves embedded asset files with explicit MIME
// types. fs.FS gives no content-type hints, and browsers refuse module
// scripts and stylesheets served as octet-stream.
func (a *Application) serveStaticWithMIME(frontendFS fs.FS) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")

		file, err := frontendFS.Open(filePath)
		if err != nil {
			a.Logger.WarnContext(r.Context(), "Static file not found",
				slog.String("path", filePath),
				slog.String("error", err.Error()))
			http.NotFound(w, r)
			return
		}
		defer file.Close()

		setMIMEType(w, filePath)
		w.Header().Set("X-Content-Type-Options", "nosniff")

		io.Copy(w, file)
	})
}

// serveSPAHandler serves dashboard files by exact path and falls back
// to index.html for anything else
func (a *Application) serveSPAHandler(frontendFS fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := path.Clean(r.URL.Path)

		if urlPath != "/" {
			exactPath := strings.TrimPrefix(urlPath, "/")
			if file, err := frontendFS.Open(exactPath); err == nil {
				stat, statErr := file.Stat()
				if statErr == nil && !stat.IsDir() {
					setMIMEType(w, exactPath)
					w.Header().Set("X-Content-Type-Options", "nosniff")
					io.Copy(w, file)
					file.Close()
					return
				}
				file.Close()
			}
		}

		indexFile, err := frontendFS.Open("index.html")
		if err != nil {
			a.Logger.ErrorContext(r.Context(), "Failed to open index.html",
				slog.String("error", err.Error()),
				slog.String("path", urlPath))
			http.Error(w, "Frontend not available", http.StatusServiceUnavailable)
			return
		}
		defer indexFile.Close()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

		io.Copy(w, indexFile)
	}
}

// setMIMEType sets the Content-Type header from the file extension
func setMIMEType(w http.ResponseWriter, filePath string) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case ".js":
		w.Header().Set("Content-Type", "application/javascript")
	case ".css":
		w.Header().Set("Content-Type", "text/css")
	case ".json":
		w.Header().Set("Content-Type", "application/json")
	case ".svg":
		w.Header().Set("Content-Type", "image/svg+xml")
	case ".png":
		w.Header().Set("Content-Type", "image/png")
	case ".ico":
		w.Header().Set("Content-Type", "image/x-icon")
	case ".txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
	}
}

// getCORSConfig builds the CORS policy. The dashboard is same-origin,
// so only the server's own addresses plus any configured extras are
// allowed, and the read-only API needs nothing beyond GET.
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	origins := []string{
		fmt.Sprintf("http://%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		fmt.Sprintf("http://localhost:%d", a.Config.Server.Port),
	}
	if a.Config.Security.EnableCORS && len(a.Config.Security.AllowedOrigins) > 0 {
		origins = append(origins, a.Config.Security.AllowedOrigins...)
	}

	return customMiddleware.CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// URL returns the address users browse to
func (a *Application) URL() string {
	return fmt.Sprintf("http://%s:%d", a.Config.Server.Host, a.Config.Server.Port)
}

// Run serves until the context is cancelled or an interrupt arrives,
// then shuts down gracefully
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("Server listening",
			slog.String("address", a.Server.Addr),
			slog.String("url", a.URL()))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		// gctx is already cancelled here, so the shutdown deadline has
		// to come from a fresh context.
		return a.Stop(context.Background())
	})

	go a.openBrowserWhenReady(gctx)

	return g.Wait()
}

// Stop gracefully stops the HTTP server and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// openBrowserWhenReady polls the health endpoint until the server
// answers, then opens the local browser. Failure is never fatal; the
// URL is printed so the user can open it by hand.
func (a *Application) openBrowserWhenReady(ctx context.Context) {
	url := a.URL()
	healthURL := url + "/api/health"

	for attempt := 0; attempt < 20; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(250 * time.Millisecond):
		}

		resp, err := http.Get(healthURL)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			continue
		}

		if err := openBrowser(url); err != nil {
			a.Logger.Warn("Failed to open browser",
				slog.String("error", err.Error()),
				slog.String("url", url))
			fmt.Printf("\n%s is running at %s\n\n", AppName, url)
		} else {
			a.Logger.Info("Browser opened", slog.String("url", url))
		}
		return
	}

	a.Logger.Warn("Server did not become ready for browser opening",
		slog.String("url", healthURL))
}

// browserMethod is one way of opening the default browser
type browserMethod struct {
	name string
	cmd  string
	args []string
}

// openBrowser opens the default browser at url, trying each platform
// method in turn
func openBrowser(url string) error {
	var lastErr error
	for _, method := range getBrowserOpenMethods(url) {
		if err := exec.Command(method.cmd, method.args...).Start(); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("failed to open browser: %w", lastErr)
}

// getBrowserOpenMethods returns platform-specific browser opening methods
func getBrowserOpenMethods(url string) []browserMethod {
	switch runtime.GOOS {
	case "windows":
		return []browserMethod{
			{name: "start_command", cmd: "cmd", args: []string{"/c", "start", "", url}},
			{name: "rundll32", cmd: "rundll32", args: []string{"url.dll,FileProtocolHandler", url}},
		}
	case "darwin":
		return []browserMethod{
			{name: "open", cmd: "open", args: []string{url}},
		}
	default:
		return []browserMethod{
			{name: "xdg-open", cmd: "xdg-open", args: []string{url}},
			{name: "sensible-browser", cmd: "sensible-browser", args: []string{url}},
		}
	}
}
