package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olsenj65/arrowcrab/internal/dataset"
	"github.com/olsenj65/arrowcrab/internal/dive"
)

// Summary is the aggregate view of one dataset, for the show command
// and for markdown export.
type Summary struct {
	GeneratedAt time.Time

	Computer   dive.ComputerInfo
	TotalDives int
	PhotoOnly  int
	TotalHours float64
	MaxDepthM  float64
	DeepestNum int
	FirstDate  string
	LastDate   string
	PhotoCount int
	Trips      []dive.Trip
}

// Summarize computes the summary for a dataset.
func Summarize(ds *dataset.Dataset) *Summary {
	s := &Summary{
		GeneratedAt: time.Now(),
		Computer:    ds.Computer,
		TotalDives:  len(ds.Dives),
		Trips:       ds.Trips,
	}

	totalMin := 0
	for _, d := range ds.Dives {
		totalMin += d.DurationMin
		if d.PhotoOnly {
			s.PhotoOnly++
		}
		if d.MaxDepthM > s.MaxDepthM {
			s.MaxDepthM = d.MaxDepthM
			s.DeepestNum = d.Number
		}
		if d.Date != "" && (s.FirstDate == "" || d.Date < s.FirstDate) {
			s.FirstDate = d.Date
		}
		if d.Date > s.LastDate {
			s.LastDate = d.Date
		}
	}
	s.TotalHours = float64(totalMin) / 60

	for _, items := range ds.Photos {
		s.PhotoCount += len(items)
	}

	return s
}

// Print writes the summary as a colored console report. Colors degrade
// automatically when w is not a terminal (fatih/color handles that for
// stdout; for other writers callers set color.NoColor).
func (s *Summary) Print(w io.Writer) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "%s\n\n", bold("Dive log summary"))

	if s.Computer.Serial != "" {
		line := s.Computer.Serial
		if s.Computer.Firmware != "" {
			line += " (" + s.Computer.Firmware + ")"
		}
		fmt.Fprintf(w, "  Computer:   %s\n", line)
	}
	fmt.Fprintf(w, "  Dives:      %s", humanize.Comma(int64(s.TotalDives)))
	if s.PhotoOnly > 0 {
		fmt.Fprintf(w, " %s", faint(fmt.Sprintf("(%d photo-only)", s.PhotoOnly)))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Hours:      %.1f\n", s.TotalHours)
	if s.MaxDepthM > 0 {
		fmt.Fprintf(w, "  Max depth:  %.1f m %s\n", s.MaxDepthM, faint(fmt.Sprintf("(dive %d)", s.DeepestNum)))
	}
	if s.FirstDate != "" {
		fmt.Fprintf(w, "  Logged:     %s to %s\n", s.FirstDate, s.LastDate)
	}
	if s.PhotoCount > 0 {
		fmt.Fprintf(w, "  Photos:     %s\n", humanize.Comma(int64(s.PhotoCount)))
	}

	if len(s.Trips) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\n", bold("Trips"))
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n", faint("name"), faint("dates"), faint("dives"), faint("hours"), faint("max"), faint("avg gas"))
	for _, tr := range s.Trips {
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%.1f\t%.1f m\t%d psi\n",
			cyan(tr.Name), tr.Dates, tr.Dives, tr.Hours, tr.MaxDepth, tr.AvgGas)
	}
	tw.Flush()
}

// Markdown renders the summary as a markdown document for archiving
// next to the event log.
func (s *Summary) Markdown() string {
	var md strings.Builder

	md.WriteString("# Dive Log Summary\n\n")
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05")))

	md.WriteString("| Metric | Value |\n")
	md.WriteString("|--------|-------|\n")
	if s.Computer.Serial != "" {
		md.WriteString(fmt.Sprintf("| Computer | %s |\n", s.Computer.Serial))
	}
	md.WriteString(fmt.Sprintf("| Dives | %d |\n", s.TotalDives))
	if s.PhotoOnly > 0 {
		md.WriteString(fmt.Sprintf("| Photo-only dives | %d |\n", s.PhotoOnly))
	}
	md.WriteString(fmt.Sprintf("| Hours | %.1f |\n", s.TotalHours))
	if s.MaxDepthM > 0 {
		md.WriteString(fmt.Sprintf("| Max depth | %.1f m (dive %d) |\n", s.MaxDepthM, s.DeepestNum))
	}
	if s.PhotoCount > 0 {
		md.WriteString(fmt.Sprintf("| Photos | %d |\n", s.PhotoCount))
	}
	md.WriteString("\n")

	if len(s.Trips) > 0 {
		md.WriteString("## Trips\n\n")
		md.WriteString("| Trip | Dates | Dives | Hours | Max depth | Avg gas |\n")
		md.WriteString("|------|-------|-------|-------|-----------|--------|\n")
		for _, tr := range s.Trips {
			md.WriteString(fmt.Sprintf("| %s | %s | %d | %.1f | %.1f m | %d psi |\n",
				tr.Name, tr.Dates, tr.Dives, tr.Hours, tr.MaxDepth, tr.AvgGas))
		}
		md.WriteString("\n")
	}

	return md.String()
}

// TopLocations returns the busiest locations by dive count, for the
// show command's quick view.
func TopLocations(ds *dataset.Dataset, limit int) []dive.Trip {
	trips := append([]dive.Trip(nil), ds.Trips...)
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].Dives > trips[j].Dives
	})
	if len(trips) > limit {
		trips = trips[:limit]
	}
	return trips
}
