package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/olsenj65/arrowcrab/internal/report"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [trip]",
	Short: "Show the dive log summary, or one trip in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

var (
	showMarkdown bool
	showTop      int
)

func init() {
	showCmd.Flags().BoolVar(&showMarkdown, "markdown", false, "emit the summary as markdown")
	showCmd.Flags().IntVar(&showTop, "top", 0, "list only the N busiest locations")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	ds, err := mustLoadProject()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if showTop > 0 {
			faint := color.New(color.Faint).SprintFunc()
			tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "%s\t%s\t%s\n", faint("trip"), faint("dives"), faint("hours"))
			for _, tr := range report.TopLocations(ds, showTop) {
				fmt.Fprintf(tw, "%s\t%d\t%.1f\n", tr.Name, tr.Dives, tr.Hours)
			}
			tw.Flush()
			return nil
		}
		summary := report.Summarize(ds)
		if showMarkdown {
			fmt.Print(summary.Markdown())
			return nil
		}
		summary.Print(os.Stdout)
		return nil
	}

	tr, err := ds.FindTrip(args[0])
	if err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Printf("%s  %s\n\n", bold(tr.Name), faint(tr.Dates))

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		faint("#"), faint("date"), faint("time"), faint("site"), faint("max"), faint("min"), faint("photos"))
	for _, d := range ds.TripDives(tr.Name) {
		site := d.Site
		if d.PhotoOnly {
			site = "(photo-only)"
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%.1f m\t%d\t%d\n",
			d.Number, d.Date, d.Time, site, d.MaxDepthM, d.DurationMin, len(ds.Photos[d.Number]))
	}
	tw.Flush()

	return nil
}
