// Package project manages the playmetrics.json manifest that marks an
// analytics project directory and remembers where its dataset lives.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/playmetrics-cli/internal/utils"
)

const manifestFileName = "playmetrics.json"

// Project is the on-disk manifest of an analytics project.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dataset   string    `json:"dataset"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Not serialized: on-disk location of the manifest.
	rootDir string
}

// New constructs an in-memory project manifest. Call Save() to persist.
func New(name, dataset, rootDir string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		Dataset:   dataset,
		CreatedAt: now,
		UpdatedAt: now,
		rootDir:   rootDir,
	}
}

// Load reads a playmetrics.json from the provided directory.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, manifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	p.rootDir = dir
	return &p, nil
}

// Exists reports whether dir already carries a manifest.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, manifestFileName))
	return err == nil
}

// RootDir returns the on-disk project directory path.
func (p *Project) RootDir() string { return p.rootDir }

// DatasetPath resolves the manifest's dataset relative to the project root.
func (p *Project) DatasetPath() string {
	if p.Dataset == "" || filepath.IsAbs(p.Dataset) {
		return p.Dataset
	}
	return filepath.Join(p.rootDir, p.Dataset)
}

// Save writes playmetrics.json using atomic write.
func (p *Project) Save() error {
	if p.rootDir == "" {
		return errors.New("project root directory not set")
	}
	if err := utils.EnsureProjectDir(p.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	p.UpdatedAt = time.Now().UTC()
	data, err := utils.PrettyJSON(p)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(p.rootDir, manifestFileName), data)
}
