package main

import (
	"github.com/olsenj65/arrowcrab/internal/project"
	"github.com/olsenj65/arrowcrab/internal/util"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <other-project.json>",
	Short: "Merge another project file into this one",
	Long: `Merge folds the dives, trips, photos and captions of another project
into the current one. Dives already present (same number and date) are
kept as-is; incoming trips keep their colors where they carry real
ones. Merging the same project twice is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	applyLogLevel()
	source := args[0]

	logger := openEventLogger()
	defer logger.Close()

	other, err := project.Load(source)
	if err != nil {
		return err
	}
	ds, err := loadProject()
	if err != nil {
		return err
	}

	added := ds.Merge(other)
	ds.SortDives()
	ds.Reaggregate()
	logger.LogMerge(source, added)

	if err := project.Save(ds, projectPath()); err != nil {
		return err
	}
	logger.LogSave(projectPath(), len(ds.Dives))

	util.SuccessLog("Merged %s: %d dives added, %d total, %d trips",
		source, added, len(ds.Dives), len(ds.Trips))
	return nil
}
