// Package project persists a whole session as one versioned JSON
// document. The document is the interchange format the dashboard reads,
// so field names match the dataset's JSON tags exactly.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olsenj65/arrowcrab/internal/dataset"
	"github.com/olsenj65/arrowcrab/internal/dive"
	"github.com/olsenj65/arrowcrab/internal/util"
)

// Version is the current document schema version.
const Version = 1

// Document is the on-disk shape of a project. Trips are stored for
// foreign readers but treated as derived data: loading rebuilds them
// from the dive list instead of trusting the file.
type Document struct {
	Version     int                  `json:"version"`
	SavedAt     time.Time            `json:"savedAt"`
	Computer    dive.ComputerInfo    `json:"computer"`
	Dives       []dive.Dive          `json:"dives"`
	Trips       []dive.Trip          `json:"trips"`
	Photos      map[int][]dive.Media `json:"photos,omitempty"`
	Captions    map[string]string    `json:"captions,omitempty"`
	Colors      map[string]string    `json:"colors,omitempty"`
	ColorCursor int                  `json:"colorCursor,omitempty"`
}

// Save writes the dataset to path atomically: the document lands in a
// temp file in the target directory first, then renames over the
// destination, so a crash mid-write never corrupts an existing project.
func Save(ds *dataset.Dataset, path string) error {
	colors, cursor := ds.Colors().Snapshot()
	doc := Document{
		Version:     Version,
		SavedAt:     time.Now(),
		Computer:    ds.Computer,
		Dives:       ds.Dives,
		Trips:       ds.Trips,
		Photos:      ds.Photos,
		Captions:    ds.Captions,
		Colors:      colors,
		ColorCursor: cursor,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".project-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace project file: %w", err)
	}

	util.DebugLog("Saved project: %s (%d dives)", path, len(ds.Dives))
	return nil
}

// Load reads a project document and rebuilds a live dataset from it.
func Load(path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("project %s: %w", path, util.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read project: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("project %s: %w: %v", path, util.ErrCorrupt, err)
	}
	if doc.Version <= 0 || doc.Version > Version {
		return nil, fmt.Errorf("project %s: unsupported version %d: %w", path, doc.Version, util.ErrCorrupt)
	}

	ds := dataset.New()
	ds.Dives = doc.Dives
	ds.Computer = doc.Computer
	if doc.Photos != nil {
		ds.Photos = doc.Photos
	}
	if doc.Captions != nil {
		ds.Captions = doc.Captions
	}
	ds.RestoreColors(doc.Colors, doc.ColorCursor)

	// Derived stats are rebuilt, never trusted from disk.
	ds.Reaggregate()

	util.DebugLog("Loaded project: %s (%d dives, %d trips)", path, len(ds.Dives), len(ds.Trips))
	return ds, nil
}
