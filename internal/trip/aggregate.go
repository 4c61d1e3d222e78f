package trip

import (
	"math"
	"sort"
	"time"

	"github.com/olsenj65/arrowcrab/internal/dive"
)

// Aggregate groups dives by normalized location into trip summaries.
//
// Derived statistics are recomputed wholesale from the member dives;
// callers must re-aggregate after any structural change to the dive
// collection instead of patching counts. Color assignment is delegated
// to colors, which keeps slots stable across re-aggregation.
//
// The result is ordered by each trip's last dive date ascending, with
// the trip name as tie-break, so the same input always yields the same
// output order.
func Aggregate(dives []dive.Dive, colors *Colors) []dive.Trip {
	type group struct {
		key     string
		display string
		members []dive.Dive
		dates   []string
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, d := range dives {
		key := dive.NormalizeLocation(d.Location)
		g, ok := groups[key]
		if !ok {
			g = &group{key: key, display: dive.DisplayLocation(d.Location)}
			groups[key] = g
			order = append(order, key)
		}
		g.members = append(g.members, d)
		if d.Date != "" {
			g.dates = append(g.dates, d.Date)
		}
	}

	trips := make([]dive.Trip, 0, len(groups))
	lastDates := make(map[string]string)

	for _, key := range order {
		g := groups[key]
		if len(g.dates) == 0 {
			// A location with only undated dives is not presentable as a trip
			continue
		}
		sort.Strings(g.dates)
		first, last := g.dates[0], g.dates[len(g.dates)-1]

		totalMin := 0
		maxDepth := 0.0
		gasSum := 0
		for _, d := range g.members {
			totalMin += d.DurationMin
			if d.MaxDepthM > maxDepth {
				maxDepth = d.MaxDepthM
			}
			gasSum += d.GasUsed
		}

		t := dive.Trip{
			Name:     g.display,
			Dates:    formatDateRange(first, last),
			Dives:    len(g.members),
			Hours:    math.Round(float64(totalMin)/60*10) / 10,
			MaxDepth: maxDepth,
			AvgGas:   int(math.Round(float64(gasSum) / float64(len(g.members)))),
			Color:    colors.Get(key),
		}
		trips = append(trips, t)
		lastDates[t.Name] = last
	}

	sort.SliceStable(trips, func(i, j int) bool {
		di, dj := lastDates[trips[i].Name], lastDates[trips[j].Name]
		if di != dj {
			return di < dj
		}
		return trips[i].Name < trips[j].Name
	})

	return trips
}

// formatDateRange renders "Mar 10 - Mar 15, 2024" from two YYYY-MM-DD
// strings, falling back to the raw strings when they do not parse.
func formatDateRange(first, last string) string {
	start, err1 := time.Parse("2006-01-02", first)
	end, err2 := time.Parse("2006-01-02", last)
	if err1 != nil || err2 != nil {
		return first + " - " + last
	}
	return start.Format("Jan 02") + " - " + end.Format("Jan 02, 2006")
}
