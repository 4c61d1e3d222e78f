package main

import (
	"context"
	"fmt"
	"os"

	"github.com/olsenj65/arrowcrab/internal/photo"
	"github.com/olsenj65/arrowcrab/internal/project"
	"github.com/olsenj65/arrowcrab/internal/util"
	"github.com/spf13/cobra"
)

var photosCmd = &cobra.Command{
	Use:   "photos <trip> <directory>",
	Short: "Match a directory of photos to a trip's dives",
	Long: `Photos scans a directory tree for photo and video files and assigns each
one to the dive whose time window (plus a 30 minute buffer) contains its
modification time.

When the trip has no recorded dives, the photos are clustered by time
and a photo-only dive is created per cluster, numbered after the last
real dive. Re-running the command replaces the trip's previous
assignments instead of stacking new ones.`,
	Args: cobra.ExactArgs(2),
	RunE: runPhotos,
}

var captionCmd = &cobra.Command{
	Use:   "caption <file> [text]",
	Short: "Set or clear a photo caption",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCaption,
}

func init() {
	rootCmd.AddCommand(photosCmd)
	photosCmd.AddCommand(captionCmd)
}

func runPhotos(cmd *cobra.Command, args []string) error {
	applyLogLevel()
	tripName, dir := args[0], args[1]

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("photo directory does not exist: %s", dir)
	}

	logger := openEventLogger()
	defer logger.Close()

	ds, err := mustLoadProject()
	if err != nil {
		return err
	}

	scanner := photo.NewScanner(nil)
	scanned, err := scanner.Scan(context.Background(), dir)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(scanned.Media) == 0 {
		util.WarnLog("No media files found under %s", dir)
		return nil
	}

	result := ds.MatchPhotos(tripName, scanned.Media)
	logger.LogMatch(tripName, result.Assigned, result.Unassigned)
	if result.Synthesized > 0 {
		for _, d := range ds.TripDives(tripName) {
			if d.PhotoOnly {
				logger.LogSynth(tripName, d.Number, len(ds.Photos[d.Number]))
			}
		}
	}

	if err := project.Save(ds, projectPath()); err != nil {
		return err
	}
	logger.LogSave(projectPath(), len(ds.Dives))

	util.SuccessLog("Matched %d of %d photos to %s", result.Assigned, len(scanned.Media), tripName)
	if result.Synthesized > 0 {
		util.InfoLog("Created %d photo-only dives", result.Synthesized)
	}
	if result.Unassigned > 0 {
		util.WarnLog("%d photos matched no dive window", result.Unassigned)
	}

	return nil
}

func runCaption(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	ds, err := mustLoadProject()
	if err != nil {
		return err
	}

	caption := ""
	if len(args) == 2 {
		caption = args[1]
	}
	ds.SetCaption(args[0], caption)

	if err := project.Save(ds, projectPath()); err != nil {
		return err
	}
	if caption == "" {
		util.SuccessLog("Cleared caption for %s", args[0])
	} else {
		util.SuccessLog("Captioned %s", args[0])
	}
	return nil
}
