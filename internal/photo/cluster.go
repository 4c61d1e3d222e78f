package photo

import (
	"math"
	"sort"
	"time"

	"github.com/olsenj65/arrowcrab/internal/dive"
)

// ClusterWindow bounds how long after a cluster's FIRST photo a later
// photo still belongs to the same synthetic dive. The window anchors on
// the cluster's first timestamp and does not slide with each item; a
// long photo session therefore splits into multiple dives the way a
// long day of diving actually does. Deliberate heuristic, kept for
// compatibility with existing projects.
const ClusterWindow = 75 * time.Minute

// Synthesize partitions media timestamps into clusters and builds one
// photo-only dive per cluster. numbers allocates dive numbers and is
// threaded through so allocation state lives with the caller's dataset,
// not in this package.
//
// Safe on empty and single-item input: zero or one dive, respectively.
func Synthesize(media []dive.Media, location string, numbers *NumberAllocator) []dive.Dive {
	stamped := make([]dive.Media, 0, len(media))
	for _, item := range media {
		if _, ok := item.Timestamp(); ok {
			stamped = append(stamped, item)
		}
	}
	if len(stamped) == 0 {
		return nil
	}

	sort.SliceStable(stamped, func(i, j int) bool {
		return stamped[i].LastModifiedMs < stamped[j].LastModifiedMs
	})

	var clusters [][]dive.Media
	var current []dive.Media
	var anchor time.Time

	for _, item := range stamped {
		ts, _ := item.Timestamp()
		if len(current) == 0 || ts.Sub(anchor) > ClusterWindow {
			if len(current) > 0 {
				clusters = append(clusters, current)
			}
			current = []dive.Media{item}
			anchor = ts
			continue
		}
		current = append(current, item)
	}
	clusters = append(clusters, current)

	dives := make([]dive.Dive, 0, len(clusters))
	for _, cluster := range clusters {
		first, _ := cluster[0].Timestamp()
		last, _ := cluster[len(cluster)-1].Timestamp()
		durationSec := int(last.Sub(first) / time.Second)

		dives = append(dives, dive.Dive{
			Number:      numbers.Next(),
			Date:        first.Format("2006-01-02"),
			Time:        first.Format("15:04"),
			EndTime:     last.Format("15:04"),
			Location:    location,
			DurationSec: durationSec,
			DurationMin: int(math.Round(float64(durationSec) / 60)),
			O2Percent:   21,
			PhotoOnly:   true,
		})
	}

	return dives
}

// NumberAllocator hands out dive numbers above everything already in a
// dataset. It is explicit state passed by the owner rather than a
// package global, so concurrent datasets stay independent.
type NumberAllocator struct {
	max int
}

// NewNumberAllocator seeds the allocator with the highest dive number
// currently in use.
func NewNumberAllocator(dives []dive.Dive) *NumberAllocator {
	a := &NumberAllocator{}
	for _, d := range dives {
		if d.Number > a.max {
			a.max = d.Number
		}
	}
	return a
}

// Next returns the next free dive number.
func (a *NumberAllocator) Next() int {
	a.max++
	return a.max
}
