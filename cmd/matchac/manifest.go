package main

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// manifest is the optional matcha.yaml build manifest: a declarative list
// of source roots and an output extension override, read the way
// neurodesk's builder reads build.yaml with yaml.NewDecoder.
type manifest struct {
	Roots []string `yaml:"roots"`
	Ext   string   `yaml:"ext"`
}

const defaultExt = ".gleam"

// loadManifest reads dir/matcha.yaml if present, otherwise falls back to
// walking dir itself with the default output extension (spec.md §6).
func loadManifest(dir string) (*manifest, error) {
	path := filepath.Join(dir, "matcha.yaml")
	fh, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &manifest{Roots: []string{dir}, Ext: defaultExt}, nil
	}
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var m manifest
	if err := yaml.NewDecoder(fh).Decode(&m); err != nil {
		return nil, err
	}
	if len(m.Roots) == 0 {
		m.Roots = []string{dir}
	}
	if m.Ext == "" {
		m.Ext = defaultExt
	}
	return &m, nil
}
