package directory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileDirectory loads a course catalog and faculty roster from YAML files on
// disk. Intended for development and seeding; the production directory is the
// external service behind Client.
type FileDirectory struct {
	rootDir string
	courses map[string]Course
	faculty map[string]Faculty
	mu      sync.RWMutex
}

// catalogFile is the YAML document shape: one file may hold courses, faculty,
// or both.
type catalogFile struct {
	Courses []Course  `yaml:"courses"`
	Faculty []Faculty `yaml:"faculty"`
}

// NewFileDirectory creates a file-backed directory and loads all catalog files.
func NewFileDirectory(rootDir string) (*FileDirectory, error) {
	d := &FileDirectory{
		rootDir: rootDir,
		courses: make(map[string]Course),
		faculty: make(map[string]Faculty),
	}

	if err := d.loadAll(); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	slog.Info("course catalog loaded", "courses", len(d.courses), "faculty", len(d.faculty))
	return d, nil
}

func (d *FileDirectory) Courses(_ context.Context) ([]Course, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	courses := make([]Course, 0, len(d.courses))
	for _, c := range d.courses {
		courses = append(courses, c)
	}
	return courses, nil
}

func (d *FileDirectory) Course(_ context.Context, id string) (Course, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.courses[id]
	if !ok {
		return Course{}, ErrNotFound
	}
	return c, nil
}

func (d *FileDirectory) Faculty(_ context.Context, id string) (Faculty, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	f, ok := d.faculty[id]
	if !ok {
		return Faculty{}, ErrNotFound
	}
	return f, nil
}

func (d *FileDirectory) loadAll() error {
	return filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		return d.loadFile(path)
	})
}

func (d *FileDirectory) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		slog.Warn("skipping invalid catalog YAML", "path", path, "error", err)
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range catalog.Courses {
		if c.ID == "" {
			continue
		}
		d.courses[c.ID] = c
	}
	for _, f := range catalog.Faculty {
		if f.ID == "" {
			continue
		}
		d.faculty[f.ID] = f
	}
	return nil
}
