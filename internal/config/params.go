package config

import (
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// SnapshotParam switches the portal to the snapshot repository when "true"
	SnapshotParam = "snapshot"
	// SnapshotSuffix qualifies major versions in snapshot mode
	SnapshotSuffix = "-SNAPSHOT"

	platformPrefix = "liferay-"
)

var (
	platformKeyPattern = regexp.MustCompile(`^liferay-\d+.+`)
	leadingMajor       = regexp.MustCompile(`^(\d+)\.`)
)

// VersionTables maps archetype major lines to the platform and framework
// versions they target. Keys are qualified majors (see QualifyMajor).
type VersionTables struct {
	Snapshot          bool
	Platform          map[string]string
	Framework         map[string]string
	PlatformVersions  []string
	FrameworkVersions []string
}

// QualifyMajor appends the snapshot suffix to major in snapshot mode
func QualifyMajor(major string, snapshot bool) string {
	if snapshot {
		return major + SnapshotSuffix
	}
	return major
}

// ParseParameters builds the version tables from init parameters such as
//
//	snapshot       = "false"
//	liferay-70 2.2 = "3"
//
// where the key names the platform and framework versions and the value is
// the archetype major line that targets them. snapshot is the mode already in
// effect: parameters can switch snapshot mode on but never off.
func ParseParameters(params map[string]string, snapshot bool) VersionTables {
	return parseParameters(params, snapshot, log.Default())
}

func parseParameters(params map[string]string, snapshot bool, logger *log.Logger) VersionTables {
	// snapshot first, since it qualifies the majors
	if params[SnapshotParam] == "true" {
		snapshot = true
	}

	tables := VersionTables{
		Snapshot:  snapshot,
		Platform:  make(map[string]string),
		Framework: make(map[string]string),
	}

	platforms := make(map[string]struct{})
	frameworks := make(map[string]struct{})

	// deterministic iteration so duplicate majors resolve the same way every run
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !platformKeyPattern.MatchString(key) {
			continue
		}

		labels := strings.Split(key, " ")
		if len(labels) < 2 {
			logger.Warn("ignoring version parameter without framework version", "key", key)
			continue
		}

		platform := strings.TrimPrefix(labels[0], platformPrefix)
		framework := labels[1]
		qualified := QualifyMajor(archetypeMajor(params[key]), snapshot)

		tables.Platform[qualified] = platform
		tables.Framework[qualified] = framework
		platforms[platform] = struct{}{}
		frameworks[framework] = struct{}{}
	}

	tables.PlatformVersions = descending(platforms)
	tables.FrameworkVersions = descending(frameworks)

	return tables
}

// archetypeMajor accepts "3" as well as "3.0" for the major line
func archetypeMajor(value string) string {
	value = strings.TrimSpace(value)
	if m := leadingMajor.FindStringSubmatch(value); m != nil {
		return m[1]
	}
	return value
}

func descending(set map[string]struct{}) []string {
	list := make([]string, 0, len(set))
	for v := range set {
		list = append(list, v)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(list)))
	return list
}
