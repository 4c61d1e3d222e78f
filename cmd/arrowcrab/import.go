package main

import (
	"fmt"
	"time"

	"github.com/olsenj65/arrowcrab/internal/dataset"
	"github.com/olsenj65/arrowcrab/internal/dive"
	"github.com/olsenj65/arrowcrab/internal/project"
	"github.com/olsenj65/arrowcrab/internal/report"
	"github.com/olsenj65/arrowcrab/internal/shearwater"
	"github.com/olsenj65/arrowcrab/internal/util"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <export.db>",
	Short: "Import dives from a Shearwater Cloud export",
	Long: `Import reads a Shearwater Cloud database export, normalizes every dive
record, and merges the result into the project. Dives already in the
project (same number and date) are left untouched, so re-importing the
same export is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	applyLogLevel()
	source := args[0]

	logger := openEventLogger()
	defer logger.Close()

	reader, err := shearwater.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer reader.Close()

	start := time.Now()

	records, err := reader.Records()
	if err != nil {
		logger.LogError(report.EventImport, source, err)
		return fmt.Errorf("failed to read dives: %w", err)
	}
	util.InfoLog("Read %d dive records from %s", len(records), source)

	incoming := dataset.New()
	incoming.Computer = reader.Computer()
	dives := make([]dive.Dive, 0, len(records))
	for _, rec := range records {
		dives = append(dives, dive.Normalize(rec))
	}
	incoming.AddDives(dives)

	ds, err := loadProject()
	if err != nil {
		return err
	}

	added := ds.Merge(incoming)
	ds.SortDives()
	ds.Reaggregate()
	logger.LogImport(source, added)

	if err := project.Save(ds, projectPath()); err != nil {
		return err
	}
	logger.LogSave(projectPath(), len(ds.Dives))

	util.SuccessLog("Import complete in %v: %d new dives, %d total, %d trips",
		time.Since(start).Round(time.Millisecond), added, len(ds.Dives), len(ds.Trips))
	if ds.Computer.Serial != "" && ds.Computer.Serial != "Unknown" {
		util.InfoLog("Computer: %s %s", ds.Computer.Serial, ds.Computer.Firmware)
	}

	return nil
}
