package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/liferay-faces/archetype-portal/internal/catalog"
	"github.com/liferay-faces/archetype-portal/internal/config"
)

// Builder produces a catalog from version tables
type Builder interface {
	Build(ctx context.Context, tables config.VersionTables) (*catalog.Catalog, error)
}

// Service holds the published archetype catalog. Init and Refresh rebuild it
// wholesale; readers always see a complete catalog.
type Service struct {
	builder Builder
	logger  *log.Logger

	mu                sync.Mutex
	params            map[string]string
	snapshot          bool
	platformVersions  []string
	frameworkVersions []string
	versionsSet       bool

	current atomic.Pointer[catalog.Catalog]
}

// New creates a service that has not been initialized yet
func New(builder Builder, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}

	s := &Service{
		builder: builder,
		logger:  logger,
	}
	s.current.Store(catalog.Empty())
	return s
}

// Init parses params and rebuilds the catalog. Build failures are logged and
// whatever the builder produced is published.
func (s *Service) Init(ctx context.Context, params map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = copyParams(params)
	if _, err := s.rebuild(ctx); err != nil {
		s.logger.Error("catalog build aborted", "err", err)
	}
}

// Refresh rebuilds the catalog from the parameters of the last Init
func (s *Service) Refresh(ctx context.Context) (*catalog.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.rebuild(ctx)
	if err != nil {
		s.logger.Error("catalog refresh aborted", "err", err)
	}
	return c, err
}

// rebuild must be called with mu held
func (s *Service) rebuild(ctx context.Context) (*catalog.Catalog, error) {
	tables := config.ParseParameters(s.params, s.snapshot)
	s.snapshot = tables.Snapshot

	if !s.versionsSet {
		s.platformVersions = tables.PlatformVersions
		s.frameworkVersions = tables.FrameworkVersions
		s.versionsSet = true
	}
	tables.PlatformVersions = s.platformVersions
	tables.FrameworkVersions = s.frameworkVersions

	s.logger.Info("building archetype catalog", "snapshot", tables.Snapshot)

	c, err := s.builder.Build(ctx, tables)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("catalog build cancelled, keeping the published catalog", "err", err)
		return s.current.Load(), err
	}
	if c == nil {
		c = catalog.Empty()
	}
	s.current.Store(c)

	s.logger.Info("archetype catalog published",
		"archetypes", len(c.Archetypes), "suites", len(c.Suites), "snapshot", c.Snapshot)

	return c, err
}

// Catalog returns the published catalog
func (s *Service) Catalog() *catalog.Catalog {
	return s.current.Load()
}

func (s *Service) Archetypes() []catalog.Archetype {
	return s.Catalog().Archetypes
}

func (s *Service) Builds() []catalog.Build {
	return s.Catalog().Builds
}

func (s *Service) Suites() []catalog.Suite {
	return s.Catalog().Suites
}

func (s *Service) LiferayVersions() []string {
	return s.Catalog().LiferayVersions
}

func (s *Service) JSFVersions() []string {
	return s.Catalog().JSFVersions
}

func (s *Service) Snapshot() bool {
	return s.Catalog().Snapshot
}

func copyParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
