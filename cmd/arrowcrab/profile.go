package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olsenj65/arrowcrab/internal/profile"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile <dive-number>",
	Short: "Print the estimated depth and pressure profile for a dive",
	Long: `Profile synthesizes an estimated depth curve and tank pressure decay for
one dive from its summary statistics. The curves are estimates for
display, not recorded samples.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

var profileImperial bool

func init() {
	profileCmd.Flags().BoolVar(&profileImperial, "imperial", false, "depth in feet instead of meters")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	number, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid dive number %q", args[0])
	}

	ds, err := mustLoadProject()
	if err != nil {
		return err
	}
	d, err := ds.FindDive(number)
	if err != nil {
		return err
	}

	units := profile.Metric
	if profileImperial {
		units = profile.Imperial
	}

	out := struct {
		Number   int             `json:"number"`
		Date     string          `json:"date"`
		Depth    []profile.Point `json:"depth"`
		Pressure []profile.Point `json:"pressure"`
	}{
		Number:   d.Number,
		Date:     d.Date,
		Depth:    profile.DepthCurve(d, units),
		Pressure: profile.PressureCurve(d),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
