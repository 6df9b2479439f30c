package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const manifestFile = "manifest.json"

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int                       `json:"version"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Artifacts   map[Artifact]ArtifactMeta `json:"artifacts"`
}

// ArtifactMeta describes the last write of one artifact.
type ArtifactMeta struct {
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Artifacts:   map[Artifact]ArtifactMeta{},
	}
}

func (m *Manifest) record(a Artifact, count int, at time.Time) {
	if m.Artifacts == nil {
		m.Artifacts = map[Artifact]ArtifactMeta{}
	}
	m.Artifacts[a] = ArtifactMeta{Count: count, UpdatedAt: at}
}

func readManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Artifacts == nil {
		m.Artifacts = map[Artifact]ArtifactMeta{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := filepath.Join(basePath, manifestFile)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
