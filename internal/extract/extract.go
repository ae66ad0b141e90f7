package extract

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Entry names inside an archetype jar
const (
	PomEntry    = "archetype-resources/pom.xml"
	GradleEntry = "archetype-resources/build.gradle"
)

// Archive extracts build snippets from archetype jars on disk
type Archive struct{}

// MavenDependencies implements the catalog extractor contract
func (Archive) MavenDependencies(archivePath string) (string, error) {
	return MavenDependencies(archivePath)
}

// GradleBuild implements the catalog extractor contract
func (Archive) GradleBuild(archivePath string) (string, error) {
	return GradleBuild(archivePath)
}

// MavenDependencies returns the dependency and dependencyManagement sections
// of the archetype's pom.xml with ${property} references resolved.
// On error the returned text holds whatever could be read.
func MavenDependencies(archivePath string) (string, error) {
	lines, err := ReadEntryLines(archivePath, PomEntry)
	return DependencyBlock(lines), err
}

// GradleBuild returns the archetype's build.gradle verbatim, one line per row
func GradleBuild(archivePath string) (string, error) {
	lines, err := ReadEntryLines(archivePath, GradleEntry)

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String(), err
}

// ReadEntryLines reads the named entry of a zip archive as UTF-8 lines.
// A missing entry yields no lines and no error.
func ReadEntryLines(archivePath, entryName string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != entryName {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in %s: %w", entryName, archivePath, err)
		}
		defer rc.Close()

		lines, err := readLines(rc)
		if err != nil {
			return lines, fmt.Errorf("failed to read %s in %s: %w", entryName, archivePath, err)
		}
		return lines, nil
	}

	return nil, nil
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.ToValidUTF8(scanner.Text(), "�"))
	}

	return lines, scanner.Err()
}
