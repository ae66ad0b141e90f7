package catalog

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/liferay-faces/archetype-portal/internal/config"
	"github.com/liferay-faces/archetype-portal/internal/resolver"
)

// Archetype coordinates
const (
	GroupID         = "com.liferay.faces.archetype"
	ArchetypeSuffix = "portlet"
)

const generateCommandTemplate = "mvn archetype:generate \\<br />" +
	"  -DarchetypeGroupId=" + GroupID + " \\<br />" +
	"  -DarchetypeArtifactId=" + GroupID + ".SUITE." + ArchetypeSuffix + " \\<br />" +
	"  -DarchetypeVersion=VERSION \\<br />" +
	"  -DgroupId=com.mycompany \\<br />" +
	"  -DartifactId=com.mycompany.my.SUITE." + ArchetypeSuffix

var versionPattern = regexp.MustCompile(`^(\d+)\.`)

// Lister returns the link targets of a directory listing page
type Lister interface {
	Links(ctx context.Context, url string) ([]string, error)
}

// Extractor reads build snippets out of a downloaded archetype
type Extractor interface {
	MavenDependencies(archivePath string) (string, error)
	GradleBuild(archivePath string) (string, error)
}

// Options configures a Builder
type Options struct {
	Lister    Lister
	Extractor Extractor
	// Resolvers returns the resolution client for release or snapshot mode
	Resolvers func(snapshot bool) resolver.Client
	// ReleaseContext and SnapshotContext are the listing roots per mode
	ReleaseContext  string
	SnapshotContext string
	Logger          *log.Logger
}

// Builder scrapes the archetype repository into a Catalog
type Builder struct {
	lister          Lister
	extractor       Extractor
	resolvers       func(snapshot bool) resolver.Client
	releaseContext  string
	snapshotContext string
	logger          *log.Logger
	now             func() time.Time
}

// NewBuilder creates a catalog builder
func NewBuilder(opts Options) *Builder {
	if opts.ReleaseContext == "" {
		opts.ReleaseContext = config.DefaultReleaseListing
	}
	if opts.SnapshotContext == "" {
		opts.SnapshotContext = config.DefaultSnapshotListing
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Builder{
		lister:          opts.Lister,
		extractor:       opts.Extractor,
		resolvers:       opts.Resolvers,
		releaseContext:  opts.ReleaseContext,
		snapshotContext: opts.SnapshotContext,
		logger:          opts.Logger,
		now:             time.Now,
	}
}

// GenerateCommand renders the archetype:generate command for suite and version
func GenerateCommand(suite, version string) string {
	cmd := strings.ReplaceAll(generateCommandTemplate, "VERSION", version)
	return strings.ReplaceAll(cmd, "SUITE", suite)
}

// Coordinate returns the group:artifact:jar coordinate of a suite's archetype
func Coordinate(suite string) string {
	return GroupID + ":" + GroupID + "." + suite + "." + ArchetypeSuffix + ":jar"
}

// build holds the state of one Build call
type build struct {
	*Builder
	tables   config.VersionTables
	context  string
	resolver resolver.Client
	catalog  *Catalog
	suites   map[string]struct{}
}

// Build scrapes the listing for the mode in tables and returns the catalog.
// A failure to list the suites aborts the scrape: the returned catalog then
// holds only the builds and the error says why. Failures for a single suite
// or version are logged and skipped.
func (b *Builder) Build(ctx context.Context, tables config.VersionTables) (*Catalog, error) {
	run := &build{
		Builder: b,
		tables:  tables,
		context: b.releaseContext,
		catalog: Empty(),
		suites:  make(map[string]struct{}),
	}
	if tables.Snapshot {
		run.context = b.snapshotContext
	}
	run.resolver = b.resolvers(tables.Snapshot)
	run.catalog.Snapshot = tables.Snapshot
	run.catalog.Context = run.context

	b.logger.Debug("building catalog", "context", run.context, "snapshot", tables.Snapshot)

	err := run.scan(ctx)

	run.finish()
	return run.catalog, err
}

func (r *build) scan(ctx context.Context) error {
	links, err := r.lister.Links(ctx, r.context)
	if err != nil {
		return fmt.Errorf("failed to list archetype suites at %s: %w", r.context, err)
	}

	for _, href := range links {
		if !strings.Contains(href, GroupID) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		r.scanSuite(ctx, href)
	}

	return ctx.Err()
}

// scanSuite walks the version listing of one suite
func (r *build) scanSuite(ctx context.Context, href string) {
	var dir, nextURL string
	if strings.HasPrefix(href, r.context) {
		dir = strings.TrimPrefix(href, r.context)
		nextURL = href
	} else {
		dir = href
		nextURL = r.context + href
	}

	name := strings.ReplaceAll(dir, "/", "")
	if !strings.HasPrefix(name, GroupID+".") {
		r.logger.Warn("skipping suite link outside the archetype group", "href", href)
		return
	}
	suite := strings.ReplaceAll(strings.TrimPrefix(name, GroupID+"."), "."+ArchetypeSuffix, "")

	r.suites[suite] = struct{}{}

	links, err := r.lister.Links(ctx, nextURL)
	if err != nil {
		r.logger.Error("failed to list suite versions", "suite", suite, "url", nextURL, "err", err)
		return
	}

	latestMinor := make(map[string]string)

	for _, vhref := range links {
		if ctx.Err() != nil {
			return
		}

		version := lastSegment(vhref)

		m := versionPattern.FindStringSubmatch(version)
		if m == nil {
			continue
		}
		major := m[1]

		r.logger.Debug("candidate version", "suite", suite, "version", version, "major", major)

		latest, cached := latestMinor[major]
		if !cached {
			latest = r.resolveLatestMinor(ctx, suite, major)
			latestMinor[major] = latest
		}

		if latest == "" {
			if !cached {
				r.logger.Error("unable to resolve latest minor version", "suite", suite, "major", major)
			}
			continue
		}

		if latest != version {
			continue
		}

		r.logger.Debug("matched latest minor", "suite", suite, "version", version)
		r.addArchetype(ctx, suite, major, version)
	}
}

// lastSegment returns the final non-empty path segment of a link target
func lastSegment(href string) string {
	trimmed := strings.TrimRight(href, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// resolveLatestMinor returns "" when the resolver has no answer
func (r *build) resolveLatestMinor(ctx context.Context, suite, major string) string {
	n, err := strconv.ParseInt(major, 10, 64)
	if err != nil {
		r.logger.Error("invalid major version", "suite", suite, "major", major, "err", err)
		return ""
	}

	version, err := r.resolver.LatestMinor(ctx, Coordinate(suite), n)
	if err != nil {
		r.logger.Error("latest minor resolution failed", "suite", suite, "major", major, "err", err)
		return ""
	}
	return version
}

func (r *build) addArchetype(ctx context.Context, suite, major, version string) {
	artifact, err := r.resolver.Artifact(ctx, Coordinate(suite)+":"+version)
	if err != nil {
		r.logger.Error("failed to fetch archetype", "suite", suite, "version", version, "err", err)
		return
	}

	maven, err := r.extractor.MavenDependencies(artifact)
	if err != nil {
		r.logger.Error("failed to extract maven dependencies", "artifact", artifact, "err", err)
	}

	gradle, err := r.extractor.GradleBuild(artifact)
	if err != nil {
		r.logger.Error("failed to extract gradle build", "artifact", artifact, "err", err)
	}

	qualified := config.QualifyMajor(major, r.tables.Snapshot)
	archetype := Archetype{
		LiferayVersion:     r.tables.Platform[qualified],
		JSFVersion:         r.tables.Framework[qualified],
		Suite:              suite,
		Version:            version,
		MavenDependencies:  maven,
		GradleDependencies: gradle,
		GenerateCommand:    GenerateCommand(suite, version),
	}

	r.logger.Debug("adding archetype",
		"liferay", archetype.LiferayVersion, "jsf", archetype.JSFVersion, "suite", suite, "version", version)
	r.catalog.Archetypes = append(r.catalog.Archetypes, archetype)
}

// finish derives the suite list and stamps the catalog
func (r *build) finish() {
	keys := make([]string, 0, len(r.suites))
	for key := range r.suites {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		r.catalog.Suites = append(r.catalog.Suites, NewSuite(key))
	}

	r.catalog.LiferayVersions = append(r.catalog.LiferayVersions, r.tables.PlatformVersions...)
	r.catalog.JSFVersions = append(r.catalog.JSFVersions, r.tables.FrameworkVersions...)
	r.catalog.BuiltAt = r.now()
}
