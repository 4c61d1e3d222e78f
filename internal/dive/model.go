package dive

import "time"

// Dive is one logged or photo-inferred underwater excursion.
//
// All fields are JSON-serializable with the same names the dashboard
// layer consumes. Metric and imperial depth are both carried so the
// viewer can toggle units without re-deriving.
type Dive struct {
	Number      int     `json:"number"`
	Date        string  `json:"date"`    // YYYY-MM-DD
	Time        string  `json:"time"`    // HH:MM local start
	EndTime     string  `json:"endTime"` // HH:MM local, empty when start is unknown
	Location    string  `json:"location"`
	Site        string  `json:"site"`
	MaxDepthM   float64 `json:"maxDepthM"`
	MaxDepthFt  int     `json:"maxDepthFt"`
	AvgDepthM   float64 `json:"avgDepthM"`
	DurationMin int     `json:"durationMin"`
	DurationSec int     `json:"durationSec"`
	StartPSI    int     `json:"startPSI"`
	EndPSI      int     `json:"endPSI"`
	GasUsed     int     `json:"gasUsed"`
	O2Percent   int     `json:"o2Percent"`
	AvgTempC    float64 `json:"avgTempC"`
	EndGF99     int     `json:"endGF99"`
	PhotoOnly   bool    `json:"photoOnly,omitempty"`
}

// Key is the dedup identity of a dive. Dive numbers restart between
// computers and exports, so the date is part of the key.
type Key struct {
	Number int
	Date   string
}

// Key returns the dedup identity of the dive.
func (d *Dive) Key() Key {
	return Key{Number: d.Number, Date: d.Date}
}

// Start parses the dive's wall-clock start.
//
// The date and time strings are deliberately interpreted in local time:
// dive computers log local time, and the photo timestamps these values
// are compared against are local filesystem mtimes. Parsing as UTC here
// is the classic off-by-timezone mistake.
func (d *Dive) Start() (time.Time, bool) {
	if d.Date == "" || d.Time == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", d.Date+" "+d.Time, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// End returns the wall-clock end of the dive (start + duration).
func (d *Dive) End() (time.Time, bool) {
	start, ok := d.Start()
	if !ok {
		return time.Time{}, false
	}
	return start.Add(time.Duration(d.DurationSec) * time.Second), true
}

// Trip is an aggregation of all dives sharing a normalized location.
// Every derived field is recomputed on aggregation, never patched.
type Trip struct {
	Name     string  `json:"name"`
	Dates    string  `json:"dates"`
	Dives    int     `json:"dives"`
	Hours    float64 `json:"hours"`
	MaxDepth float64 `json:"maxDepth"` // metric
	AvgGas   int     `json:"avgGas"`
	Color    string  `json:"color"`
}

// Media describes one photo or video file. Only the filesystem mtime is
// used for dive matching; content and EXIF data never enter the core.
type Media struct {
	Name           string `json:"name"`
	LastModifiedMs int64  `json:"lastModified"`
	Path           string `json:"path,omitempty"`
}

// Timestamp returns the media mtime as a wall-clock time, or false when
// the descriptor carries no timestamp.
func (m *Media) Timestamp() (time.Time, bool) {
	if m.LastModifiedMs <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(m.LastModifiedMs), true
}

// ComputerInfo identifies the dive computer an export came from.
type ComputerInfo struct {
	Serial   string `json:"serial"`
	Firmware string `json:"firmware,omitempty"`
}
