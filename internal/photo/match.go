// Package photo relates media files to dives using nothing but file
// timestamps: matching photos into recorded dive windows, and inferring
// dive boundaries from photo timing when no dives were recorded.
package photo

import (
	"sort"
	"time"

	"github.com/olsenj65/arrowcrab/internal/dive"
)

// MatchBuffer is the tolerance applied around a dive's start and end
// when matching media: cameras and dive computers rarely agree on the
// clock, and surface shots bracket the dive itself.
const MatchBuffer = 30 * time.Minute

// Matcher assigns media items to dives by timestamp.
//
// The overlapping-window policy is first-match-wins in collection
// order. Buffered windows of dives with short surface intervals can
// overlap; picking the first is a deliberate, documented tie-break
// inherited from years of real logs, not an error. The policy lives
// behind this type so it can be replaced wholesale later.
type Matcher struct {
	// Buffer overrides MatchBuffer when positive.
	Buffer time.Duration
}

func (m Matcher) buffer() time.Duration {
	if m.Buffer > 0 {
		return m.Buffer
	}
	return MatchBuffer
}

// Match assigns each media item to the first dive (in collection order)
// whose buffered window contains its timestamp. Items with no timestamp
// or matching no window are left out of the result. The returned map is
// keyed by dive number; per-dive media order follows input order.
//
// Matching is a pure function of its inputs: running it twice yields
// identical assignments.
func (m Matcher) Match(dives []dive.Dive, media []dive.Media) map[int][]dive.Media {
	buffer := m.buffer()
	assigned := make(map[int][]dive.Media)

	for _, item := range media {
		ts, ok := item.Timestamp()
		if !ok {
			continue
		}
		for i := range dives {
			d := &dives[i]
			start, ok := d.Start()
			if !ok {
				continue
			}
			end := start.Add(time.Duration(d.DurationSec) * time.Second)
			if !ts.Before(start.Add(-buffer)) && !ts.After(end.Add(buffer)) {
				assigned[d.Number] = append(assigned[d.Number], item)
				break
			}
		}
	}

	return assigned
}

// MatchTrip restricts matching to the dives of one trip, identified by
// its normalized location key, preserving collection order among them.
func (m Matcher) MatchTrip(dives []dive.Dive, tripName string, media []dive.Media) map[int][]dive.Media {
	key := dive.NormalizeLocation(tripName)
	candidates := make([]dive.Dive, 0)
	for _, d := range dives {
		if dive.NormalizeLocation(d.Location) == key {
			candidates = append(candidates, d)
		}
	}
	return m.Match(candidates, media)
}

// SortByTimestamp orders media ascending by mtime, stably, with
// timestampless items last in their original order.
func SortByTimestamp(media []dive.Media) {
	sort.SliceStable(media, func(i, j int) bool {
		ti, oki := media[i].Timestamp()
		tj, okj := media[j].Timestamp()
		if oki != okj {
			return oki
		}
		return ti.Before(tj)
	})
}
