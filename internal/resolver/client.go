package resolver

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"deps.dev/util/maven"
	"deps.dev/util/semver"
	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html/charset"
)

// Well-known repository roots
const (
	MavenCentralURL     = "https://repo1.maven.org/maven2/"
	SonatypeSnapshotURL = "https://oss.sonatype.org/content/repositories/snapshots/"
)

// Client is the resolution contract the catalog builder depends on
type Client interface {
	// LatestMinor returns the highest published version of coordinate whose
	// major version number equals major.
	LatestMinor(ctx context.Context, coordinate string, major int64) (string, error)
	// Artifact downloads the versioned coordinate and returns a local path.
	Artifact(ctx context.Context, coordinate string) (string, error)
}

// Options configures a MavenClient
type Options struct {
	// RepositoryURL is the repository root, with or without trailing slash
	RepositoryURL string
	// Snapshots admits -SNAPSHOT versions in LatestMinor
	Snapshots bool
	// CacheDir holds downloaded artifacts; defaults to the user cache dir
	CacheDir string
	// MetadataCacheSize bounds the number of memoised metadata documents
	MetadataCacheSize int
	HTTPClient        *http.Client
	Logger            *log.Logger
}

// MavenClient resolves artifacts against a Maven 2 layout repository over HTTP
type MavenClient struct {
	repo      string
	snapshots bool
	cacheDir  string
	http      *http.Client
	metadata  *lru.Cache[string, *maven.Metadata]
	logger    *log.Logger
}

// NewMavenClient creates a client for one repository
func NewMavenClient(opts Options) (*MavenClient, error) {
	if opts.RepositoryURL == "" {
		opts.RepositoryURL = MavenCentralURL
	}
	if !strings.HasSuffix(opts.RepositoryURL, "/") {
		opts.RepositoryURL += "/"
	}

	if opts.CacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		opts.CacheDir = filepath.Join(dir, "archetype-portal", "artifacts")
	}

	if opts.MetadataCacheSize <= 0 {
		opts.MetadataCacheSize = 128
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	cache, err := lru.New[string, *maven.Metadata](opts.MetadataCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata cache: %w", err)
	}

	return &MavenClient{
		repo:      opts.RepositoryURL,
		snapshots: opts.Snapshots,
		cacheDir:  opts.CacheDir,
		http:      opts.HTTPClient,
		metadata:  cache,
		logger:    opts.Logger,
	}, nil
}

// Repository returns the repository root the client resolves against
func (c *MavenClient) Repository() string {
	return c.repo
}

// LatestMinor implements Client
func (c *MavenClient) LatestMinor(ctx context.Context, coordinate string, major int64) (string, error) {
	coord, err := ParseCoordinate(coordinate)
	if err != nil {
		return "", &ResolutionError{Coordinate: coordinate, Err: err}
	}

	meta, err := c.fetchMetadata(ctx, c.repo+coord.metadataPath())
	if err != nil {
		return "", &ResolutionError{Coordinate: coordinate, Err: err}
	}

	var best *semver.Version
	for _, raw := range meta.Versioning.Versions {
		str := string(raw)
		if IsSnapshot(str) != c.snapshots {
			continue
		}

		v, err := semver.Maven.Parse(str)
		if err != nil {
			c.logger.Debug("skipping unparsable version", "coordinate", coordinate, "version", str, "err", err)
			continue
		}

		if m, ok := majorOf(str); !ok || m != major {
			continue
		}

		if best == nil || v.Compare(best) > 0 {
			best = v
		}
	}

	if best == nil {
		return "", &ResolutionError{
			Coordinate: coordinate,
			Err:        fmt.Errorf("%w for major version %d", ErrNoVersion, major),
		}
	}

	c.logger.Debug("resolved latest minor", "coordinate", coordinate, "major", major, "version", best.String())
	return best.String(), nil
}

// Artifact implements Client. Release artifacts are served from the local
// cache when present; snapshots are always re-downloaded.
func (c *MavenClient) Artifact(ctx context.Context, coordinate string) (string, error) {
	coord, err := ParseCoordinate(coordinate)
	if err != nil {
		return "", &ResolutionError{Coordinate: coordinate, Err: err}
	}
	if coord.Version == "" {
		return "", &ResolutionError{Coordinate: coordinate, Err: fmt.Errorf("coordinate has no version")}
	}

	fileVersion := coord.Version
	if IsSnapshot(coord.Version) {
		fileVersion, err = c.snapshotFileVersion(ctx, coord)
		if err != nil {
			return "", &ResolutionError{Coordinate: coordinate, Err: err}
		}
	}

	name := coord.fileName(fileVersion)
	localPath := filepath.Join(c.cacheDir, coord.GroupID, coord.ArtifactID, coord.Version, name)

	if !IsSnapshot(coord.Version) {
		if _, err := os.Stat(localPath); err == nil {
			c.logger.Debug("using cached artifact", "path", localPath)
			return localPath, nil
		}
	}

	if err := c.download(ctx, c.repo+coord.versionDir()+name, localPath); err != nil {
		return "", &ResolutionError{Coordinate: coordinate, Err: err}
	}

	return localPath, nil
}

// majorOf reads the leading integer of a version string
func majorOf(version string) (int64, bool) {
	end := strings.IndexFunc(version, func(r rune) bool { return r < '0' || r > '9' })
	if end == 0 {
		return 0, false
	}
	if end < 0 {
		end = len(version)
	}

	major, err := strconv.ParseInt(version[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return major, true
}

func (c *MavenClient) fetchMetadata(ctx context.Context, url string) (*maven.Metadata, error) {
	if meta, ok := c.metadata.Get(url); ok {
		return meta, nil
	}

	var meta maven.Metadata
	if err := c.decodeXML(ctx, url, &meta); err != nil {
		return nil, err
	}

	c.metadata.Add(url, &meta)
	return &meta, nil
}

// snapshotMetadata is the version-level maven-metadata.xml of a snapshot
type snapshotMetadata struct {
	Versioning struct {
		Snapshot struct {
			Timestamp   string `xml:"timestamp"`
			BuildNumber string `xml:"buildNumber"`
		} `xml:"snapshot"`
		SnapshotVersions []struct {
			Classifier string `xml:"classifier"`
			Extension  string `xml:"extension"`
			Value      string `xml:"value"`
		} `xml:"snapshotVersions>snapshotVersion"`
	} `xml:"versioning"`
}

// snapshotFileVersion resolves the timestamped file version of a snapshot.
// Repositories without version-level metadata fall back to the plain version.
func (c *MavenClient) snapshotFileVersion(ctx context.Context, coord Coordinate) (string, error) {
	var meta snapshotMetadata
	if err := c.decodeXML(ctx, c.repo+coord.versionDir()+"maven-metadata.xml", &meta); err != nil {
		c.logger.Warn("snapshot metadata unavailable, using plain version", "coordinate", coord.String(), "err", err)
		return coord.Version, nil
	}

	for _, sv := range meta.Versioning.SnapshotVersions {
		if sv.Extension == coord.Extension && sv.Classifier == "" && sv.Value != "" {
			return sv.Value, nil
		}
	}

	snap := meta.Versioning.Snapshot
	if snap.Timestamp != "" && snap.BuildNumber != "" {
		return strings.TrimSuffix(coord.Version, "-SNAPSHOT") + "-" + snap.Timestamp + "-" + snap.BuildNumber, nil
	}

	return coord.Version, nil
}

func (c *MavenClient) decodeXML(ctx context.Context, url string, v interface{}) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	decoder := xml.NewDecoder(body)
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return nil
}

func (c *MavenClient) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: HTTP %d", url, resp.StatusCode)
	}

	return resp.Body, nil
}

// download writes url to dest through a temporary file in the same directory
func (c *MavenClient) download(ctx context.Context, url, dest string) error {
	c.logger.Debug("downloading artifact", "url", url)

	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := io.Copy(tmpFile, body); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to save download: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), dest); err != nil {
		return fmt.Errorf("failed to move download into cache: %w", err)
	}

	return nil
}
