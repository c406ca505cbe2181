package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/michaeljones/gleam-templates"
)

// runBuild walks every root named by dir's matcha.yaml manifest (or dir
// itself, absent a manifest), compiles each .matcha file it finds, and
// writes the emitted Gleam source to a sibling file (spec.md §6).
func runBuild(dir string) error {
	m, err := loadManifest(dir)
	if err != nil {
		return err
	}
	outputs := make(map[string]string) // dst path -> src path, for collision detection
	for _, root := range m.Roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), "_") {
					return fs.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".matcha" {
				return nil
			}
			dst := outputPath(path, m.Ext)
			if prev, ok := outputs[dst]; ok {
				return fmt.Errorf("templates %q and %q both render to %q", prev, path, dst)
			}
			outputs[dst] = path
			_, err = compileFile(path, m.Ext)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// outputPath returns the sibling output path for a .matcha source file,
// replacing its extension with ext.
func outputPath(path, ext string) string {
	return strings.TrimSuffix(path, ".matcha") + ext
}

// compileFile compiles the .matcha file at path and writes the emitted
// source to a sibling file with ext in place of ".matcha", returning that
// destination path.
func compileFile(path, ext string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	out, err := matcha.Compile(src)
	if err != nil {
		return "", fmt.Errorf("%s: %s", path, err)
	}
	dst := outputPath(path, ext)
	if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
		return "", err
	}
	return dst, nil
}
