package photo

import (
	"testing"
	"time"

	"github.com/olsenj65/arrowcrab/internal/dive"
)

func TestSynthesize_WindowAnchorsOnFirstPhoto(t *testing.T) {
	base := time.Date(2024, 7, 4, 10, 0, 0, 0, time.Local)

	testCases := []struct {
		name     string
		offsets  []time.Duration // from base
		expected int             // dive count
	}{
		{"74 minutes apart joins", []time.Duration{0, 74 * time.Minute}, 1},
		{"76 minutes apart splits", []time.Duration{0, 76 * time.Minute}, 2},
		{"exactly at the window", []time.Duration{0, 75 * time.Minute}, 1},
		{"anchor does not slide", []time.Duration{0, 40 * time.Minute, 80 * time.Minute}, 2},
		{"single photo", []time.Duration{0}, 1},
		{"three clusters", []time.Duration{0, 10 * time.Minute, 3 * time.Hour, 3*time.Hour + 5*time.Minute, 6 * time.Hour}, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			media := make([]dive.Media, 0, len(tc.offsets))
			for i, off := range tc.offsets {
				media = append(media, mediaAt("p"+string(rune('a'+i))+".jpg", base.Add(off)))
			}

			dives := Synthesize(media, "Bonaire", NewNumberAllocator(nil))
			if len(dives) != tc.expected {
				t.Errorf("expected %d dives, got %d", tc.expected, len(dives))
			}
		})
	}
}

func TestSynthesize_DiveFields(t *testing.T) {
	first := time.Date(2024, 7, 4, 10, 0, 0, 0, time.Local)
	last := first.Add(45 * time.Minute)
	media := []dive.Media{
		mediaAt("b.jpg", last),
		mediaAt("a.jpg", first), // out of order on purpose
	}

	existing := []dive.Dive{{Number: 12, Date: "2024-03-10"}}
	dives := Synthesize(media, "Cozumel", NewNumberAllocator(existing))
	if len(dives) != 1 {
		t.Fatalf("expected 1 dive, got %d", len(dives))
	}

	d := dives[0]
	if !d.PhotoOnly {
		t.Error("synthesized dive must be marked photoOnly")
	}
	if d.Number != 13 {
		t.Errorf("expected number 13 (max existing + 1), got %d", d.Number)
	}
	if d.Date != "2024-07-04" || d.Time != "10:00" || d.EndTime != "10:45" {
		t.Errorf("unexpected timing: %s %s - %s", d.Date, d.Time, d.EndTime)
	}
	if d.DurationSec != 2700 || d.DurationMin != 45 {
		t.Errorf("unexpected duration: %ds / %dmin", d.DurationSec, d.DurationMin)
	}
	if d.Location != "Cozumel" {
		t.Errorf("unexpected location: %q", d.Location)
	}
	if d.MaxDepthM != 0 || d.StartPSI != 0 || d.AvgTempC != 0 {
		t.Error("physiological fields must stay zero on a photo-only dive")
	}
	if d.O2Percent != 21 {
		t.Errorf("expected air default 21, got %d", d.O2Percent)
	}
}

func TestSynthesize_SequentialNumbering(t *testing.T) {
	base := time.Date(2024, 7, 4, 8, 0, 0, 0, time.Local)
	media := []dive.Media{
		mediaAt("a.jpg", base),
		mediaAt("b.jpg", base.Add(3*time.Hour)),
		mediaAt("c.jpg", base.Add(6*time.Hour)),
	}

	numbers := NewNumberAllocator([]dive.Dive{{Number: 40}})
	dives := Synthesize(media, "Bonaire", numbers)
	if len(dives) != 3 {
		t.Fatalf("expected 3 dives, got %d", len(dives))
	}
	for i, d := range dives {
		if d.Number != 41+i {
			t.Errorf("dive %d: expected number %d, got %d", i, 41+i, d.Number)
		}
	}
}

func TestSynthesize_Degenerate(t *testing.T) {
	if dives := Synthesize(nil, "Bonaire", NewNumberAllocator(nil)); dives != nil {
		t.Errorf("expected nil for empty media, got %v", dives)
	}

	// Timestampless-only input synthesizes nothing
	media := []dive.Media{{Name: "broken.jpg"}}
	if dives := Synthesize(media, "Bonaire", NewNumberAllocator(nil)); dives != nil {
		t.Errorf("expected nil for timestampless media, got %v", dives)
	}

	// A single photo makes a zero-duration dive
	one := []dive.Media{mediaAt("solo.jpg", time.Date(2024, 7, 4, 10, 0, 0, 0, time.Local))}
	dives := Synthesize(one, "Bonaire", NewNumberAllocator(nil))
	if len(dives) != 1 {
		t.Fatalf("expected 1 dive, got %d", len(dives))
	}
	if dives[0].DurationSec != 0 || dives[0].Time != dives[0].EndTime {
		t.Errorf("single-photo dive should span zero time: %+v", dives[0])
	}
}

func TestNumberAllocator(t *testing.T) {
	a := NewNumberAllocator([]dive.Dive{{Number: 3}, {Number: 9}, {Number: 1}})
	if n := a.Next(); n != 10 {
		t.Errorf("expected 10, got %d", n)
	}
	if n := a.Next(); n != 11 {
		t.Errorf("expected 11, got %d", n)
	}

	empty := NewNumberAllocator(nil)
	if n := empty.Next(); n != 1 {
		t.Errorf("expected 1 from an empty log, got %d", n)
	}
}
