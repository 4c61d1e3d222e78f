package dive

import (
	"encoding/json"
	"math"
)

const (
	// defaultO2Percent is assumed when a tank profile carries no gas mix (air).
	defaultO2Percent = 21

	// fallbackAvgTempF stands in when the computer logged no temperature.
	fallbackAvgTempF = 82.0

	feetPerMeter = 3.28084
	metersPerFoot = 0.3048
)

// RawRecord is one row from a dive log export, before normalization.
// The two blobs are JSON documents from the source database and may be
// empty, truncated or structurally off; normalization degrades each
// missing or malformed field to its documented default and never fails.
type RawRecord struct {
	Number      int
	Timestamp   string // ISO-ish: "2024-03-10 09:00:00" or "2024-03-10T09:00:00"
	Location    string
	Site        string
	DepthM      float64 // max depth, meters
	DurationSec int
	TankJSON    string // TankProfileData blob
	CalcJSON    string // calculated_values_from_samples blob
}

// tankProfile mirrors the TankProfileData blob. O2Percent is a pointer
// so an explicit 0 in the source is kept rather than treated as absent.
type tankProfile struct {
	TankData []struct {
		StartPressurePSI float64 `json:"StartPressurePSI"`
		EndPressurePSI   float64 `json:"EndPressurePSI"`
		GasProfile       *struct {
			O2Percent *float64 `json:"O2Percent"`
		} `json:"GasProfile"`
	} `json:"TankData"`
}

// calcValues mirrors the calculated_values_from_samples blob.
// AverageTemp is a pointer so absence can fall back to the constant.
type calcValues struct {
	AverageTemp *float64 `json:"AverageTemp"` // Fahrenheit
	AverageDepth float64 `json:"AverageDepth"` // feet
	EndGF99      float64 `json:"EndGF99"`
}

// Normalize turns one raw log row into a canonical Dive.
//
// Malformed fields degrade to zero/empty defaults individually; a bad
// row never aborts a batch and this function never returns an error.
func Normalize(rec RawRecord) Dive {
	var tank tankProfile
	if rec.TankJSON != "" {
		_ = json.Unmarshal([]byte(rec.TankJSON), &tank)
	}

	var calc calcValues
	if rec.CalcJSON != "" {
		_ = json.Unmarshal([]byte(rec.CalcJSON), &calc)
	}

	startPSI, endPSI := 0, 0
	o2 := defaultO2Percent
	if len(tank.TankData) > 0 {
		td := tank.TankData[0]
		startPSI = int(td.StartPressurePSI)
		endPSI = int(td.EndPressurePSI)
		if td.GasProfile != nil && td.GasProfile.O2Percent != nil {
			o2 = int(*td.GasProfile.O2Percent)
		}
	}

	// A swapped or corrupt pressure pair degrades to zero usage; gasUsed
	// is never negative.
	gasUsed := 0
	if startPSI != 0 && endPSI != 0 && startPSI > endPSI {
		gasUsed = startPSI - endPSI
	}

	avgTempF := fallbackAvgTempF
	if calc.AverageTemp != nil {
		avgTempF = *calc.AverageTemp
	}

	date, clock := splitTimestamp(rec.Timestamp)

	d := Dive{
		Number:      rec.Number,
		Date:        date,
		Time:        clock,
		Location:    rec.Location,
		Site:        rec.Site,
		MaxDepthM:   round1(rec.DepthM),
		MaxDepthFt:  int(math.Round(rec.DepthM * feetPerMeter)),
		AvgDepthM:   round1(calc.AverageDepth * metersPerFoot),
		DurationSec: rec.DurationSec,
		DurationMin: int(math.Round(float64(rec.DurationSec) / 60)),
		StartPSI:    startPSI,
		EndPSI:      endPSI,
		GasUsed:     gasUsed,
		O2Percent:   o2,
		AvgTempC:    round1((avgTempF - 32) * 5 / 9),
		EndGF99:     int(math.Round(calc.EndGF99)),
	}

	// End time derives from the parsed start; an unparsable start leaves
	// it empty rather than raising.
	if end, ok := d.End(); ok {
		d.EndTime = end.Format("15:04")
	}

	return d
}

// splitTimestamp slices "YYYY-MM-DD?HH:MM:SS" into date and HH:MM parts,
// tolerating short or empty input.
func splitTimestamp(ts string) (date, clock string) {
	if len(ts) >= 10 {
		date = ts[:10]
	}
	if len(ts) >= 16 {
		clock = ts[11:16]
	}
	return date, clock
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
