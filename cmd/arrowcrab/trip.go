package main

import (
	"github.com/olsenj65/arrowcrab/internal/project"
	"github.com/olsenj65/arrowcrab/internal/util"
	"github.com/spf13/cobra"
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Manage trips",
}

var tripRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a trip, moving all its dives to the new location name",
	Args:  cobra.ExactArgs(2),
	RunE:  runTripRename,
}

var tripDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a trip and all its dives and photo assignments",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripDelete,
}

func init() {
	tripCmd.AddCommand(tripRenameCmd)
	tripCmd.AddCommand(tripDeleteCmd)
	rootCmd.AddCommand(tripCmd)
}

func runTripRename(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	ds, err := mustLoadProject()
	if err != nil {
		return err
	}
	if err := ds.RenameTrip(args[0], args[1]); err != nil {
		return err
	}
	if err := project.Save(ds, projectPath()); err != nil {
		return err
	}
	util.SuccessLog("Renamed trip %s to %s", args[0], args[1])
	return nil
}

func runTripDelete(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	ds, err := mustLoadProject()
	if err != nil {
		return err
	}
	before := len(ds.Dives)
	if err := ds.DeleteTrip(args[0]); err != nil {
		return err
	}
	if err := project.Save(ds, projectPath()); err != nil {
		return err
	}
	util.SuccessLog("Deleted trip %s (%d dives removed)", args[0], before-len(ds.Dives))
	return nil
}
