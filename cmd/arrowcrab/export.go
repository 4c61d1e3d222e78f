package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olsenj65/arrowcrab/internal/dive"
	"github.com/olsenj65/arrowcrab/internal/profile"
	"github.com/olsenj65/arrowcrab/internal/util"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <output.json>",
	Short: "Export the dataset with precomputed profiles for the dashboard",
	Long: `Export writes everything the dashboard needs into one JSON document:
dives, trips, photo assignments, captions, and the estimated depth and
pressure curves for every dive, in both unit systems.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

// diveExport is one dive plus its synthesized chart data.
type diveExport struct {
	dive.Dive
	DepthMetric   []profile.Point `json:"depthMetric"`
	DepthImperial []profile.Point `json:"depthImperial"`
	Pressure      []profile.Point `json:"pressure"`
	Photos        []dive.Media    `json:"photos,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	applyLogLevel()
	output := args[0]

	ds, err := mustLoadProject()
	if err != nil {
		return err
	}

	dives := make([]diveExport, 0, len(ds.Dives))
	for _, d := range ds.Dives {
		dives = append(dives, diveExport{
			Dive:          d,
			DepthMetric:   profile.DepthCurve(d, profile.Metric),
			DepthImperial: profile.DepthCurve(d, profile.Imperial),
			Pressure:      profile.PressureCurve(d),
			Photos:        ds.Photos[d.Number],
		})
	}

	doc := struct {
		GeneratedAt time.Time         `json:"generatedAt"`
		Computer    dive.ComputerInfo `json:"computer"`
		Dives       []diveExport      `json:"dives"`
		Trips       []dive.Trip       `json:"trips"`
		Captions    map[string]string `json:"captions,omitempty"`
	}{
		GeneratedAt: time.Now(),
		Computer:    ds.Computer,
		Dives:       dives,
		Trips:       ds.Trips,
		Captions:    ds.Captions,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	util.SuccessLog("Exported %d dives, %d trips to %s (%s)",
		len(dives), len(ds.Trips), output, humanize.Bytes(uint64(len(data))))
	return nil
}
