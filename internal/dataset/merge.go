package dataset

import (
	"github.com/olsenj65/arrowcrab/internal/dive"
	"github.com/olsenj65/arrowcrab/internal/trip"
	"github.com/olsenj65/arrowcrab/internal/util"
)

// Merge folds another dataset into this one and returns how many dives
// were actually added.
//
// Dives dedup on (number, date) with the receiver winning; new dives
// append in the source's order. Trips dedup by normalized location: a
// known location keeps its color, a new one keeps the incoming color
// when it is a real color and otherwise earns the next palette slot.
// Everything derived is rebuilt from scratch afterwards. Merging a
// dataset into itself adds nothing.
func (ds *Dataset) Merge(other *Dataset) int {
	if other == nil || ds == other {
		return 0
	}

	// Seed colors before aggregation so incoming trips keep their look.
	for _, tr := range other.Trips {
		key := dive.NormalizeLocation(tr.Name)
		if _, ok := ds.colors.Assigned(key); ok {
			continue
		}
		if tr.Color != "" && tr.Color != trip.PlaceholderColor {
			ds.colors.Set(key, tr.Color)
		}
	}

	seen := make(map[dive.Key]bool, len(ds.Dives))
	for i := range ds.Dives {
		seen[ds.Dives[i].Key()] = true
	}

	added := 0
	for _, d := range other.Dives {
		key := d.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		ds.Dives = append(ds.Dives, d)
		added++

		// Photo assignments and captions travel with their dive. Numbers
		// are only unique per (number, date), so a same-numbered dive on
		// another date may already own a photo list here; the receiver's
		// assignments win.
		if items, ok := other.Photos[d.Number]; ok {
			if _, taken := ds.Photos[d.Number]; taken {
				continue
			}
			ds.Photos[d.Number] = append([]dive.Media(nil), items...)
			for _, item := range items {
				if caption, ok := other.Captions[item.Name]; ok {
					ds.Captions[item.Name] = caption
				}
			}
		}
	}

	if ds.Computer.Serial == "" || ds.Computer.Serial == "Unknown" {
		if other.Computer.Serial != "" {
			ds.Computer = other.Computer
		}
	}

	ds.Reaggregate()

	util.InfoLog("Merge complete: %d dives added, %d total", added, len(ds.Dives))
	return added
}
