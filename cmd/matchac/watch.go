package main

import (
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// runWatch builds dir once, then recompiles any .matcha file under it
// whenever a Write event fires, following the fsnotify.Watcher wrapper
// shape scriggo's templateFS uses for live rebuilds.
func runWatch(dir string) error {
	if err := runBuild(dir); err != nil {
		log.Print(err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	m, err := loadManifest(dir)
	if err != nil {
		return err
	}
	for _, root := range m.Roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && strings.HasPrefix(d.Name(), "_") {
				return fs.SkipDir
			}
			return fsw.Add(path)
		})
		if err != nil {
			return err
		}
	}

	log.Printf("watching %s for .matcha changes", dir)
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write != fsnotify.Write || filepath.Ext(event.Name) != ".matcha" {
				continue
			}
			dst, err := compileFile(event.Name, m.Ext)
			if err != nil {
				log.Print(err)
				continue
			}
			log.Printf("compiled %s -> %s", event.Name, dst)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Print(err)
		}
	}
}
