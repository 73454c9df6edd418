package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/covmap/internal/config"
	"github.com/provide-io/covmap/pkg"
	"github.com/provide-io/covmap/pkg/logging"
	"github.com/provide-io/covmap/pkg/render"
	"github.com/provide-io/covmap/pkg/utils/permissions"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	outputPath  string
	view        = viewValue("auto")
	width       int
	height      int
	supersample int
	fileMode    string
	sidecar     bool
	jsonSummary bool
	logLevel    string
	versionFlag bool
	rootCmd     *cobra.Command

	cfg    config.Config
	logger hclog.Logger
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion() {
	fmt.Printf("covmap %s\n", version)
	fmt.Printf("Built: %s\n", getBuildTimestamp())
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "covmap <seed-log>",
		Short: "Render an LFSR reseed coverage map",
		Long: `Render a coverage map of the seeds recorded by an LFSR generator.

The timeline view lays reseed-mode logs out as one segment per seed along
the generator's step axis. The magnitude view places every seed at its raw
value and works for any log. The output format follows the file extension:
.png, .svg, .svgz or .json (the layout itself).`,
		Args:          cobra.MaximumNArgs(1),
		PreRunE:       setup,
		RunE:          visualize,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", pkg.DefaultOutput, "Output image file path")
	rootCmd.Flags().Var(&view, "view", "Coverage view: auto, timeline or magnitude")
	rootCmd.Flags().IntVar(&width, "width", render.DefaultWidth, "Canvas width in pixels")
	rootCmd.Flags().IntVar(&height, "height", render.DefaultHeight, "Canvas height in pixels")
	rootCmd.Flags().IntVar(&supersample, "supersample", render.DefaultSupersample, "PNG supersampling factor (1 disables anti-aliasing)")
	rootCmd.Flags().StringVar(&fileMode, "file-mode", permissions.FormatOctal(permissions.DefaultArtifactPerms), "Permissions for written files")
	rootCmd.Flags().BoolVar(&sidecar, "sidecar", false, "Also write <output>.meta.json describing the run")
	rootCmd.Flags().BoolVar(&jsonSummary, "json", false, "Print the run summary as JSON")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(inspectCmd, verifyCmd, versionCmd)
}

// setup merges environment configuration under explicitly set flags.
// version does not run it, so a bad environment cannot hide the version.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("log-level") {
		logLevel = cfg.LogLevel
	}
	if flags.Lookup("width") != nil && !flags.Changed("width") {
		width = cfg.Width
	}
	if flags.Lookup("height") != nil && !flags.Changed("height") {
		height = cfg.Height
	}
	if flags.Lookup("supersample") != nil && !flags.Changed("supersample") {
		supersample = cfg.Supersample
	}
	if flags.Lookup("file-mode") != nil && !flags.Changed("file-mode") {
		fileMode = cfg.FileMode
	}
	if flags.Lookup("view") != nil && !flags.Changed("view") {
		if err := view.Set(cfg.View); err != nil {
			return fmt.Errorf("COVMAP_VIEW: %w", err)
		}
	}

	logger = logging.NewLoggerWithFormat("covmap", logLevel, cfg.JSONLog, os.Stderr)
	return nil
}

func visualize(cmd *cobra.Command, args []string) error {
	if versionFlag {
		printVersion()
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("missing seed log path\n\n%s", cmd.UsageString())
	}

	mode, err := permissions.ParseFileMode(fileMode)
	if err != nil {
		return err
	}

	summary, err := pkg.Visualize(pkg.Options{
		InputPath:  args[0],
		OutputPath: outputPath,
		View:       view.String(),
		Render: render.Options{
			Width:       width,
			Height:      height,
			Supersample: supersample,
		},
		FileMode: mode,
		Sidecar:  sidecar,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	if jsonSummary {
		return printJSON(cmd.OutOrStdout(), summary)
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		printVersion()
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
