package experiment

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the experiment as gzip-compressed JSON. The snapshot is
// the audit record handed between pipeline stages, so the write goes
// through a temp file and rename to avoid a half-written artifact.
func Save(e *Experiment, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".experiment-*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	gw := gzip.NewWriter(tmp)
	enc := json.NewEncoder(gw)
	if err := enc.Encode(e); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode experiment: %w", err)
	}
	if err := gw.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads a snapshot written by Save.
func Load(path string) (*Experiment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open experiment snapshot: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s is not a gzip snapshot: %w", path, err)
	}
	defer gr.Close()

	var e Experiment
	if err := json.NewDecoder(gr).Decode(&e); err != nil {
		return nil, fmt.Errorf("failed to decode experiment snapshot %s: %w", path, err)
	}
	return &e, nil
}
