package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/provide-io/covmap/pkg"
	"github.com/provide-io/covmap/pkg/coverage"
)

func printSummary(w io.Writer, s *pkg.Summary) {
	switch s.View {
	case coverage.NameTimeline:
		fmt.Fprintf(w, "Visualizing %s seed segments in %s mode.\n", humanize.Comma(int64(s.Count)), s.Type)
	default:
		fmt.Fprintf(w, "Visualizing %s seeds by value (%s view, TYPE=%s).\n", humanize.Comma(int64(s.Count)), s.View, s.Type)
	}
	fmt.Fprintf(w, " - Total Period Space: %s steps (2^%d-1)\n", humanize.BigComma(s.Period), s.Bits)
	fmt.Fprintf(w, " - Step Size per Segment: %s steps\n", humanize.BigComma(s.Step))
	if s.Skipped > 0 {
		color.New(color.FgYellow).Fprintf(w, " - Dropped %d malformed line(s)\n", s.Skipped)
	}
	if s.Overrun {
		color.New(color.FgYellow).Fprintf(w, " - Run exceeds the period: axis extended to %s\n", humanize.BigComma(s.PlotLimit))
	}
	color.New(color.FgGreen).Fprintf(w, "Saved visualization to %s\n", s.Output)
}
