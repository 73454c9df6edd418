package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/provide-io/covmap/pkg"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var reportFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect <seed-log>",
	Short: "Check a seed log without rendering it",
	Long: `Parse a seed log and report its header, dropped lines, out-of-range or
repeated seeds, and whether the timeline view applies. Exits non-zero
when the report contains errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var verifyCmd = &cobra.Command{
	Use:   "verify <coverage-map>",
	Short: "Check a coverage map against its .meta.json sidecar",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion()
	},
}

func init() {
	inspectCmd.PreRunE = setup
	verifyCmd.PreRunE = setup
	inspectCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "Report format: text, json or yaml")
}

func runInspect(cmd *cobra.Command, args []string) error {
	switch reportFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown report format %q (want text, json or yaml)", reportFormat)
	}

	report, err := pkg.InspectWithLogger(args[0], logger)
	if report == nil {
		return err
	}

	out := cmd.OutOrStdout()
	var werr error
	switch reportFormat {
	case "json":
		werr = printJSON(out, report)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		werr = enc.Encode(report)
		if cerr := enc.Close(); werr == nil {
			werr = cerr
		}
	default:
		printReport(out, report)
	}
	if werr != nil {
		return werr
	}
	return err
}

func runVerify(cmd *cobra.Command, args []string) error {
	record, err := pkg.VerifyArtifactWithLogger(args[0], logger)
	if record == nil {
		return err
	}

	out := cmd.OutOrStdout()
	color.New(color.Bold).Fprintf(out, "Coverage map %s\n", args[0])
	fmt.Fprintf(out, " - Rendered: %s from %s\n", record.Timestamp.Format(time.RFC3339), record.Input)
	fmt.Fprintf(out, " - View: %s, %d seeds, %d-bit, step %s\n", record.View, record.Count, record.Bits, record.Step)
	fmt.Fprintf(out, " - SHA-256: %s\n", record.Checksum)
	if err != nil {
		color.New(color.FgRed).Fprintln(out, "✗ Contents changed since rendering")
		return err
	}
	color.New(color.FgGreen).Fprintln(out, "✓ Matches sidecar")
	return nil
}

func printReport(w io.Writer, r *pkg.Report) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Seed log %s\n", r.Source)
	fmt.Fprintf(w, " - Type: %s\n", r.Type)
	fmt.Fprintf(w, " - Bits: %d\n", r.Bits)
	fmt.Fprintf(w, " - Step: %s\n", r.Step)
	if r.Period != "" {
		fmt.Fprintf(w, " - Period: %s\n", r.Period)
	}
	fmt.Fprintf(w, " - Seeds: %d\n", r.Count)
	if r.DeclaredCount != nil {
		fmt.Fprintf(w, " - Declared count: %d\n", *r.DeclaredCount)
	}
	fmt.Fprintf(w, " - Timeline view: %s\n", yesNo(r.TimelineReady))

	extra := make([]string, 0, len(r.Fields))
	for k, v := range r.Fields {
		switch k {
		case "TYPE", "BITS", "STEP", "COUNT":
			continue
		}
		extra = append(extra, k+"="+v)
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		fmt.Fprintf(w, " - Other headers: %s\n", strings.Join(extra, ", "))
	}

	if len(r.Findings) == 0 {
		color.New(color.FgGreen).Fprintln(w, "✓ No problems found")
		return
	}
	for _, f := range r.Findings {
		c := color.New(color.FgYellow)
		mark := "!"
		if f.Severity == pkg.SeverityError {
			c = color.New(color.FgRed)
			mark = "✗"
		}
		c.Fprintf(w, "%s %s: %s\n", mark, f.Check, f.Message)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "available"
	}
	return "unavailable"
}
