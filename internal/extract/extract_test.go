package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePom = `<?xml version="1.0" encoding="UTF-8"?>
<project>
	<properties>
		<faces.api.version>2.2</faces.api.version>
		<liferay.faces.bridge.version>4.1.0</liferay.faces.bridge.version>
		<empty.value/>
	</properties>
	<dependencies>
		<dependency>
			<groupId>javax.faces</groupId>
			<artifactId>javax.faces-api</artifactId>
			<version>${faces.api.version}</version>
		</dependency>
		<dependency>
			<groupId>com.liferay.faces</groupId>
			<artifactId>com.liferay.faces.bridge.impl</artifactId>
			<version>${unknown.version}</version>
		</dependency>
	</dependencies>
	<build>
		<plugins/>
	</build>
</project>`

// writeJar creates a zip archive holding the given entries
func writeJar(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "archetype.jar")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	defer file.Close()

	writer := zip.NewWriter(file)
	for name, content := range entries {
		w, err := writer.Create(name)
		if err != nil {
			t.Fatalf("Failed to create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write entry %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close archive: %v", err)
	}

	return path
}

func TestMavenDependencies(t *testing.T) {
	jar := writeJar(t, map[string]string{
		PomEntry:         samplePom,
		"META-INF/x.txt": "ignored",
	})

	block, err := MavenDependencies(jar)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := strings.Join([]string{
		"<dependencies>",
		"    <dependency>",
		"        <groupId>javax.faces</groupId>",
		"        <artifactId>javax.faces-api</artifactId>",
		"        <version>2.2</version>",
		"    </dependency>",
		"    <dependency>",
		"        <groupId>com.liferay.faces</groupId>",
		"        <artifactId>com.liferay.faces.bridge.impl</artifactId>",
		"        <version>${unknown.version}</version>",
		"    </dependency>",
		"</dependencies>",
	}, "\n") + "\n"

	if block != expected {
		t.Errorf("Unexpected dependency block:\n%s\nwant:\n%s", block, expected)
	}
}

func TestGradleBuild(t *testing.T) {
	gradle := "apply plugin: 'war'\n\ndependencies {\n\tcompileOnly group: 'javax.faces'\n}"
	jar := writeJar(t, map[string]string{GradleEntry: gradle})

	text, err := GradleBuild(jar)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if text != gradle+"\n" {
		t.Errorf("Expected gradle file verbatim with trailing newline, got %q", text)
	}
}

func TestMissingEntry(t *testing.T) {
	jar := writeJar(t, map[string]string{"README": "nothing here"})

	block, err := MavenDependencies(jar)
	if err != nil {
		t.Errorf("Expected no error for missing entry, got %v", err)
	}
	if block != "" {
		t.Errorf("Expected empty block, got %q", block)
	}

	text, err := GradleBuild(jar)
	if err != nil {
		t.Errorf("Expected no error for missing entry, got %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty gradle text, got %q", text)
	}
}

func TestUnreadableArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jar")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	block, err := MavenDependencies(path)
	if err == nil {
		t.Error("Expected error for invalid archive")
	}
	if block != "" {
		t.Errorf("Expected empty block on error, got %q", block)
	}

	if _, err := GradleBuild(filepath.Join(t.TempDir(), "missing.jar")); err == nil {
		t.Error("Expected error for missing archive")
	}
}

func TestArchiveExtractor(t *testing.T) {
	jar := writeJar(t, map[string]string{
		PomEntry:    "<dependencies>\n</dependencies>",
		GradleEntry: "dependencies {}",
	})

	var a Archive
	block, err := a.MavenDependencies(jar)
	if err != nil || block != "<dependencies>\n</dependencies>\n" {
		t.Errorf("Unexpected maven result %q (err %v)", block, err)
	}

	text, err := a.GradleBuild(jar)
	if err != nil || text != "dependencies {}\n" {
		t.Errorf("Unexpected gradle result %q (err %v)", text, err)
	}
}
