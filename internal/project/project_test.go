package project_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/playmetrics-cli/internal/project"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")

	p := project.New("engagement", "data/engagement_data.csv", dir)
	if p.ID == "" {
		t.Fatal("manifest id not set")
	}
	if err := p.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := project.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != p.ID {
		t.Errorf("id = %q, want %q", loaded.ID, p.ID)
	}
	if loaded.Name != "engagement" {
		t.Errorf("name = %q", loaded.Name)
	}
	if loaded.Dataset != "data/engagement_data.csv" {
		t.Errorf("dataset = %q", loaded.Dataset)
	}
	if loaded.CreatedAt.IsZero() {
		t.Error("created_at not persisted")
	}
	if loaded.RootDir() != dir {
		t.Errorf("root dir = %q, want %q", loaded.RootDir(), dir)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := project.Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if !strings.Contains(err.Error(), "project not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()

	if project.Exists(dir) {
		t.Fatal("Exists should be false before save")
	}
	if err := project.New("x", "", dir).Save(); err != nil {
		t.Fatal(err)
	}
	if !project.Exists(dir) {
		t.Fatal("Exists should be true after save")
	}
}

func TestDatasetPath(t *testing.T) {
	p := project.New("x", "data/engagement_data.csv", "/proj")
	if got := p.DatasetPath(); got != filepath.Join("/proj", "data/engagement_data.csv") {
		t.Errorf("relative dataset path = %q", got)
	}

	abs := project.New("x", "/elsewhere/players.csv", "/proj")
	if got := abs.DatasetPath(); got != "/elsewhere/players.csv" {
		t.Errorf("absolute dataset path = %q", got)
	}

	empty := project.New("x", "", "/proj")
	if got := empty.DatasetPath(); got != "" {
		t.Errorf("empty dataset path = %q", got)
	}
}

func TestSaveWithoutRootDir(t *testing.T) {
	var p project.Project
	if err := p.Save(); err == nil {
		t.Fatal("expected error when root directory is unset")
	}
}
