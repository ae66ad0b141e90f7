package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/charmbracelet/log"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/danielgtaylor/huma/v2/adapters/humafiber"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/labstack/echo/v4"

	echoadapter "github.com/liferay-faces/archetype-portal/adapters/echo"
	fiberadapter "github.com/liferay-faces/archetype-portal/adapters/fiber"
	ginadapter "github.com/liferay-faces/archetype-portal/adapters/gin"
	"github.com/liferay-faces/archetype-portal/adapters/nethttp"
	"github.com/liferay-faces/archetype-portal/internal/api"
	"github.com/liferay-faces/archetype-portal/internal/web"
)

const (
	Title       = "Liferay Faces Archetype Portal"
	DocsPath    = "/api/docs"
	OpenAPIPath = "/api/openapi"

	shutdownTimeout = 5 * time.Second
)

// Options configures a Server
type Options struct {
	Router  string
	Host    string
	Port    int
	Version string
	Logger  *log.Logger
}

// Server serves the portal API and front page on one of the supported routers
type Server struct {
	router  string
	addr    string
	api     huma.API
	handler http.Handler
	app     *fiber.App
	logger  *log.Logger
}

// APIConfig returns the huma configuration shared by the server and the
// OpenAPI generator
func APIConfig(version string) huma.Config {
	config := huma.DefaultConfig(Title, version)
	config.DocsPath = DocsPath
	config.OpenAPIPath = OpenAPIPath
	config.Info.Description = "Latest Liferay Faces archetypes per suite and major version, with their Maven and Gradle build snippets."
	return config
}

// New builds the router, registers the API on it and mounts the front page
func New(opts Options, svc api.CatalogService) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		router: opts.Router,
		addr:   fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		logger: opts.Logger,
	}

	config := APIConfig(opts.Version)
	assets := web.Assets
	static := web.DefaultStaticConfig()

	switch opts.Router {
	case "", "nethttp":
		s.router = "nethttp"
		mux := http.NewServeMux()
		s.api = humago.New(mux, config)
		mux.Handle("/", nethttp.StaticHandler(assets, static))
		s.handler = mux

	case "gin":
		gin.SetMode(gin.ReleaseMode)
		engine := gin.New()
		engine.Use(gin.Recovery())
		s.api = humagin.New(engine, config)
		engine.NoRoute(ginadapter.StaticHandler(assets, static))
		s.handler = engine

	case "echo":
		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		s.api = humaecho.New(e, config)
		e.GET("/*", echoadapter.StaticHandler(assets, static))
		s.handler = e

	case "fiber":
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})
		s.api = humafiber.New(app, config)
		s.app = app

	default:
		return nil, fmt.Errorf("unsupported router '%s'", opts.Router)
	}

	api.Register(s.api, svc)

	// fiber matches in registration order, so the catch-all goes last
	if s.app != nil {
		s.app.Get("/*", fiberadapter.StaticHandler(assets, static))
	}

	return s, nil
}

// API returns the huma API the routes are registered on
func (s *Server) API() huma.API {
	return s.api
}

// Router returns the selected router name
func (s *Server) Router() string {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the server as an http.Handler. Fiber is not net/http
// based and returns nil; use Test instead.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Test sends req through the server without a network listener
func (s *Server) Test(req *http.Request) (*http.Response, error) {
	if s.app != nil {
		return s.app.Test(req, -1)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec.Result(), nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("server listening", "addr", s.addr, "router", s.router)

	if s.app != nil {
		return s.serveFiber(ctx)
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
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

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) serveFiber(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.app.ShutdownWithContext(shutdownCtx)
}
