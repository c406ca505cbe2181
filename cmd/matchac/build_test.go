package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunBuildWritesSiblingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "greet.matcha"), "{> with name as String\nHi {{ name }}\n")

	if err := runBuild(dir); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "greet.gleam"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty generated output")
	}
}

func TestRunBuildSkipsUnderscoreDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "_skip", "hidden.matcha"), "{{ broken")
	writeFile(t, filepath.Join(dir, "visible.matcha"), "plain text\n")

	if err := runBuild(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "_skip", "hidden.gleam")); !os.IsNotExist(err) {
		t.Fatal("expected _skip directory to be skipped")
	}
	if _, err := os.Stat(filepath.Join(dir, "visible.gleam")); err != nil {
		t.Fatalf("expected visible.gleam to be written: %v", err)
	}
}

func TestRunBuildCompileErrorSurfacesPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.matcha"), "{% endif %}")

	err := runBuild(dir)
	if err == nil {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(err.Error(), "bad.matcha") {
		t.Fatalf("expected the error to name bad.matcha, got: %v", err)
	}
}

func TestRunBuildDetectsCollision(t *testing.T) {
	dir := t.TempDir()
	templates := filepath.Join(dir, "templates")
	writeFile(t, filepath.Join(templates, "a.matcha"), "plain\n")
	// Listing the same root twice is a degenerate manifest, but it
	// exercises the same "two templates, one destination" collision
	// scriggo's build.go guards against: both visits target a.gleam.
	writeFile(t, filepath.Join(dir, "matcha.yaml"), "roots:\n  - "+templates+"\n  - "+templates+"\n")

	err := runBuild(dir)
	if err == nil {
		t.Fatal("expected a collision error")
	}
}

func TestRunBuildManifestRoots(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "templates", "a.matcha"), "plain a\n")
	writeFile(t, filepath.Join(dir, "matcha.yaml"), "roots:\n  - "+filepath.Join(dir, "templates")+"\next: .gl\n")

	if err := runBuild(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "templates", "a.gl")); err != nil {
		t.Fatalf("expected output with manifest extension: %v", err)
	}
}
