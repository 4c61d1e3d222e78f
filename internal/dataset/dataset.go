// Package dataset owns the in-memory session state: the ordered dive
// log, its derived trips, photo assignments and color bookkeeping. All
// mutation goes through this type so derived state is always rebuilt,
// never patched.
package dataset

import (
	"fmt"
	"sort"

	"github.com/olsenj65/arrowcrab/internal/dive"
	"github.com/olsenj65/arrowcrab/internal/photo"
	"github.com/olsenj65/arrowcrab/internal/trip"
	"github.com/olsenj65/arrowcrab/internal/util"
)

// Dataset is one dive-log session: every dive ever imported, the trips
// derived from them, and the media assigned to each dive.
//
// The core is synchronous and single-owner; callers that share a
// Dataset across goroutines serialize access themselves.
type Dataset struct {
	Dives    []dive.Dive
	Trips    []dive.Trip
	Computer dive.ComputerInfo
	Photos   map[int][]dive.Media // dive number -> ordered media
	Captions map[string]string    // media name -> caption

	colors  *trip.Colors
	numbers *photo.NumberAllocator
}

// New creates an empty dataset.
func New() *Dataset {
	return &Dataset{
		Photos:   make(map[int][]dive.Media),
		Captions: make(map[string]string),
		colors:   trip.NewColors(),
		numbers:  photo.NewNumberAllocator(nil),
	}
}

// Colors exposes the palette assignment for aggregation and persistence.
func (ds *Dataset) Colors() *trip.Colors {
	return ds.colors
}

// RestoreColors replaces the palette state, used when loading a project.
func (ds *Dataset) RestoreColors(assigned map[string]string, cursor int) {
	ds.colors = trip.Restore(assigned, cursor)
}

// Reaggregate rebuilds every derived structure from the dive list:
// trips, and the dive-number high-water mark. Photo assignments keyed
// by numbers that no longer exist are dropped.
func (ds *Dataset) Reaggregate() {
	ds.Trips = trip.Aggregate(ds.Dives, ds.colors)

	ds.numbers = photo.NewNumberAllocator(ds.Dives)

	live := make(map[int]bool, len(ds.Dives))
	for _, d := range ds.Dives {
		live[d.Number] = true
	}
	for number := range ds.Photos {
		if !live[number] {
			delete(ds.Photos, number)
		}
	}
}

// NextDiveNumber returns the next free dive number without consuming it.
func (ds *Dataset) NextDiveNumber() int {
	max := 0
	for _, d := range ds.Dives {
		if d.Number > max {
			max = d.Number
		}
	}
	return max + 1
}

// AddDives appends incoming dives that are not already present, keyed
// by (number, date), preserving source order. Returns how many were
// actually added. Derived state is rebuilt when anything changed.
func (ds *Dataset) AddDives(incoming []dive.Dive) int {
	seen := make(map[dive.Key]bool, len(ds.Dives))
	for i := range ds.Dives {
		seen[ds.Dives[i].Key()] = true
	}

	added := 0
	for _, d := range incoming {
		key := d.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		ds.Dives = append(ds.Dives, d)
		added++
	}

	if added > 0 {
		ds.Reaggregate()
	}
	return added
}

// MatchResult summarizes one photo matching pass.
type MatchResult struct {
	Assigned    int // media placed into existing dive windows
	Unassigned  int // media matching no window
	Synthesized int // photo-only dives created
}

// MatchPhotos assigns media to the dives of one trip by timestamp.
//
// The pass is idempotent: previous assignments for the trip's dives,
// and any photo-only dives previously synthesized for the trip, are
// cleared first, so re-running with the same media reproduces the same
// state. When the trip has no recorded dives at all, the media are
// clustered into photo-only dives instead.
func (ds *Dataset) MatchPhotos(tripName string, media []dive.Media) MatchResult {
	key := dive.NormalizeLocation(tripName)

	// Clear previous state for this trip.
	kept := ds.Dives[:0]
	for _, d := range ds.Dives {
		if d.PhotoOnly && dive.NormalizeLocation(d.Location) == key {
			delete(ds.Photos, d.Number)
			continue
		}
		kept = append(kept, d)
	}
	ds.Dives = kept
	for _, d := range ds.Dives {
		if dive.NormalizeLocation(d.Location) == key {
			delete(ds.Photos, d.Number)
		}
	}
	ds.Reaggregate()

	recorded := 0
	for _, d := range ds.Dives {
		if dive.NormalizeLocation(d.Location) == key {
			recorded++
		}
	}

	var result MatchResult
	if recorded == 0 {
		synthesized := photo.Synthesize(media, tripName, ds.numbers)
		assigned := photo.Matcher{}.Match(synthesized, media)
		ds.Dives = append(ds.Dives, synthesized...)
		for number, items := range assigned {
			ds.Photos[number] = items
			result.Assigned += len(items)
		}
		result.Synthesized = len(synthesized)
		result.Unassigned = len(media) - result.Assigned
		ds.Reaggregate()
		util.InfoLog("Synthesized %d photo-only dives for %s", result.Synthesized, tripName)
		return result
	}

	assigned := photo.Matcher{}.MatchTrip(ds.Dives, tripName, media)
	for number, items := range assigned {
		ds.Photos[number] = items
		result.Assigned += len(items)
	}
	result.Unassigned = len(media) - result.Assigned
	return result
}

// SetCaption records a caption for a media file; empty clears it.
func (ds *Dataset) SetCaption(mediaName, caption string) {
	if caption == "" {
		delete(ds.Captions, mediaName)
		return
	}
	ds.Captions[mediaName] = caption
}

// FindTrip returns the trip whose name normalizes to the same key as
// name.
func (ds *Dataset) FindTrip(name string) (dive.Trip, error) {
	key := dive.NormalizeLocation(name)
	for _, tr := range ds.Trips {
		if dive.NormalizeLocation(tr.Name) == key {
			return tr, nil
		}
	}
	return dive.Trip{}, fmt.Errorf("trip %q: %w", name, util.ErrNoSuchTrip)
}

// TripDives returns the trip's member dives in log order.
func (ds *Dataset) TripDives(name string) []dive.Dive {
	key := dive.NormalizeLocation(name)
	out := make([]dive.Dive, 0)
	for _, d := range ds.Dives {
		if dive.NormalizeLocation(d.Location) == key {
			out = append(out, d)
		}
	}
	return out
}

// FindDive returns the dive with the given number.
func (ds *Dataset) FindDive(number int) (dive.Dive, error) {
	for _, d := range ds.Dives {
		if d.Number == number {
			return d, nil
		}
	}
	return dive.Dive{}, fmt.Errorf("dive %d: %w", number, util.ErrNotFound)
}

// RenameTrip rewrites the location of every dive in the trip. The old
// key's color follows the trip to its new key.
func (ds *Dataset) RenameTrip(oldName, newName string) error {
	if _, err := ds.FindTrip(oldName); err != nil {
		return err
	}
	oldKey := dive.NormalizeLocation(oldName)
	newKey := dive.NormalizeLocation(newName)

	for i := range ds.Dives {
		if dive.NormalizeLocation(ds.Dives[i].Location) == oldKey {
			ds.Dives[i].Location = newName
		}
	}
	if color, ok := ds.colors.Assigned(oldKey); ok {
		ds.colors.Set(newKey, color)
	}
	ds.Reaggregate()
	return nil
}

// DeleteTrip removes the trip's dives, their photo assignments and the
// captions of those photos.
func (ds *Dataset) DeleteTrip(name string) error {
	if _, err := ds.FindTrip(name); err != nil {
		return err
	}
	key := dive.NormalizeLocation(name)

	kept := ds.Dives[:0]
	for _, d := range ds.Dives {
		if dive.NormalizeLocation(d.Location) != key {
			kept = append(kept, d)
			continue
		}
		for _, item := range ds.Photos[d.Number] {
			delete(ds.Captions, item.Name)
		}
		delete(ds.Photos, d.Number)
	}
	ds.Dives = kept
	ds.Reaggregate()
	return nil
}

// SortDives orders the log by date then start time then number. Imports
// can arrive out of order across computers.
func (ds *Dataset) SortDives() {
	sort.SliceStable(ds.Dives, func(i, j int) bool {
		a, b := ds.Dives[i], ds.Dives[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.Number < b.Number
	})
}
