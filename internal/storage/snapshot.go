package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/routeviz/internal/scene"
)

// Snapshot returns the whole network in the provider payload shape: every
// known city plus every route. Cities without routes are included.
func (d *DB) Snapshot() (*scene.Snapshot, error) {
	cities, err := d.AllCities()
	if err != nil {
		return nil, err
	}
	routes, err := d.AllRoutes()
	if err != nil {
		return nil, err
	}
	return ToSnapshot(cities, routes), nil
}

// ToSnapshot builds a snapshot from stored cities and routes.
func ToSnapshot(cities []string, routes []Route) *scene.Snapshot {
	snap := &scene.Snapshot{
		Cities: append([]string{}, cities...),
		Routes: make([]scene.Route, 0, len(routes)),
	}
	for _, r := range routes {
		snap.Routes = append(snap.Routes, scene.Route{
			From:     r.From,
			To:       r.To,
			Distance: scene.Number(float64(r.Distance)),
		})
	}
	return snap
}

// ReadSnapshot decodes a snapshot document.
func ReadSnapshot(r io.Reader) (*scene.Snapshot, error) {
	var snap scene.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}

// ReadSnapshotFile decodes the snapshot document at path.
func ReadSnapshotFile(path string) (*scene.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}

// WriteSnapshot encodes snap as indented JSON.
func WriteSnapshot(w io.Writer, snap *scene.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}
