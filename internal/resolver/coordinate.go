package resolver

import (
	"fmt"
	"path"
	"strings"
)

// Coordinate identifies an artifact as group:artifact:extension[:version]
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Extension  string
	Version    string
}

// ParseCoordinate parses "group:artifact:ext" or "group:artifact:ext:version"
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Coordinate{}, fmt.Errorf("invalid artifact coordinate %q: expected group:artifact:extension[:version]", s)
	}

	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("invalid artifact coordinate %q: empty component", s)
		}
	}

	c := Coordinate{GroupID: parts[0], ArtifactID: parts[1], Extension: parts[2]}
	if len(parts) == 4 {
		c.Version = parts[3]
	}
	return c, nil
}

func (c Coordinate) String() string {
	s := c.GroupID + ":" + c.ArtifactID + ":" + c.Extension
	if c.Version != "" {
		s += ":" + c.Version
	}
	return s
}

// WithVersion returns a copy of the coordinate pinned to version
func (c Coordinate) WithVersion(version string) Coordinate {
	c.Version = version
	return c
}

// artifactDir is the repository path of the artifact, relative to the root
func (c Coordinate) artifactDir() string {
	return path.Join(strings.ReplaceAll(c.GroupID, ".", "/"), c.ArtifactID) + "/"
}

func (c Coordinate) metadataPath() string {
	return c.artifactDir() + "maven-metadata.xml"
}

func (c Coordinate) versionDir() string {
	return c.artifactDir() + c.Version + "/"
}

// fileName is the artifact file name for a concrete (possibly timestamped) version
func (c Coordinate) fileName(fileVersion string) string {
	return c.ArtifactID + "-" + fileVersion + "." + c.Extension
}

// IsSnapshot reports whether version is a Maven snapshot version
func IsSnapshot(version string) bool {
	return strings.HasSuffix(version, "-SNAPSHOT")
}
