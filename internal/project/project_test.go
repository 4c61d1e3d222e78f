package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/olsenj65/arrowcrab/internal/dataset"
	"github.com/olsenj65/arrowcrab/internal/dive"
	"github.com/olsenj65/arrowcrab/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *dataset.Dataset {
	ds := dataset.New()
	ds.Computer = dive.ComputerInfo{Serial: "PRD-7731", Firmware: "v91"}
	ds.AddDives([]dive.Dive{
		{Number: 1, Date: "2024-03-10", Time: "09:00", DurationSec: 3000, DurationMin: 50, Location: "Bonaire", MaxDepthM: 18.3},
		{Number: 2, Date: "2024-03-11", Time: "09:30", DurationSec: 2700, DurationMin: 45, Location: "Bonaire", MaxDepthM: 21.0},
		{Number: 3, Date: "2024-01-05", Time: "10:00", DurationSec: 3300, DurationMin: 55, Location: "Cozumel", MaxDepthM: 24.5},
	})
	ds.Photos[1] = []dive.Media{{Name: "a.jpg", LastModifiedMs: 1710059400000}}
	ds.SetCaption("a.jpg", "turtle")
	return ds
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	ds := sampleDataset()

	require.NoError(t, Save(ds, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ds.Dives, loaded.Dives)
	assert.Equal(t, ds.Computer, loaded.Computer)
	assert.Equal(t, ds.Photos, loaded.Photos)
	assert.Equal(t, ds.Captions, loaded.Captions)
	assert.Equal(t, ds.Trips, loaded.Trips, "trips must rebuild to the same state")
}

func TestLoad_ColorsSurviveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	ds := sampleDataset()
	before := map[string]string{}
	for _, tr := range ds.Trips {
		before[tr.Name] = tr.Color
	}

	require.NoError(t, Save(ds, path))
	loaded, err := Load(path)
	require.NoError(t, err)

	// New locations after a reload continue from the saved cursor
	loaded.AddDives([]dive.Dive{{Number: 9, Date: "2024-08-01", Location: "Roatan", DurationMin: 40}})
	for _, tr := range loaded.Trips {
		if prev, ok := before[tr.Name]; ok {
			assert.Equal(t, prev, tr.Color, "trip %s", tr.Name)
		}
		if tr.Name == "Roatan" {
			assert.NotEqual(t, before["Bonaire"], tr.Color)
			assert.NotEqual(t, before["Cozumel"], tr.Color)
		}
	}
}

func TestSave_ReplacesExistingAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, Save(sampleDataset(), path))

	ds := sampleDataset()
	ds.AddDives([]dive.Dive{{Number: 4, Date: "2024-03-12", Location: "Bonaire"}})
	require.NoError(t, Save(ds, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Dives, 4)

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, util.ErrNotFound)

	garbled := filepath.Join(dir, "garbled.json")
	require.NoError(t, os.WriteFile(garbled, []byte("{not json"), 0644))
	_, err = Load(garbled)
	assert.ErrorIs(t, err, util.ErrCorrupt)

	future := filepath.Join(dir, "future.json")
	require.NoError(t, os.WriteFile(future, []byte(`{"version": 99, "dives": []}`), 0644))
	_, err = Load(future)
	assert.ErrorIs(t, err, util.ErrCorrupt)
}
