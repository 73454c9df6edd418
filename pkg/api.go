package pkg

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/covmap/internal/artifact"
	"github.com/provide-io/covmap/pkg/coverage"
	"github.com/provide-io/covmap/pkg/render"
	"github.com/provide-io/covmap/pkg/seedlog"
)

// DefaultOutput is the artifact path used when none is given.
const DefaultOutput = "coverage_map.png"

// Options controls one Visualize run.
type Options struct {
	InputPath  string
	OutputPath string
	// View is a coverage strategy name or coverage.NameAuto.
	View     string
	Render   render.Options
	FileMode os.FileMode
	// Sidecar also writes <output>.meta.json describing the run.
	Sidecar bool
	Logger  hclog.Logger
}

// Summary describes a completed run.
type Summary struct {
	Input     string   `json:"input"`
	Output    string   `json:"output"`
	View      string   `json:"view"`
	Renderer  string   `json:"renderer"`
	Type      string   `json:"type"`
	Bits      int      `json:"bits"`
	Count     int      `json:"count"`
	Period    *big.Int `json:"period"`
	Step      *big.Int `json:"step"`
	PlotLimit *big.Int `json:"plot_limit"`
	Overrun   bool     `json:"overrun"`
	Skipped   int      `json:"skipped_lines"`
	Bytes     int      `json:"bytes"`
	Checksum  string   `json:"sha256"`
}

// Visualize parses a seed log, lays it out and writes the coverage map.
// Nothing is written unless every step succeeds.
func Visualize(opts Options) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutput
	}
	if opts.FileMode == 0 {
		opts.FileMode = artifact.DefaultFileMode
	}

	renderer, err := render.ForPath(opts.OutputPath, opts.Render)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	log, err := seedlog.ParseFileWithLogger(opts.InputPath, logger)
	if err != nil {
		return nil, err
	}
	if n := len(log.Skipped); n > 0 {
		logger.Warn("Dropped malformed lines", "count", n, "first_line", log.Skipped[0].Line)
	}

	desc, strategy, err := coverage.Build(opts.View, log)
	if err != nil {
		return nil, err
	}
	logger.Info("Built layout",
		"view", strategy.Name(),
		"segments", len(desc.Segments),
		"markers", len(desc.Markers),
		"labels", len(desc.Labels))

	var buf bytes.Buffer
	if err := renderer.Render(&buf, desc); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", renderer.Name(), err)
	}

	period, _ := log.Meta.Period()
	summary := &Summary{
		Input:     opts.InputPath,
		Output:    opts.OutputPath,
		View:      strategy.Name(),
		Renderer:  renderer.Name(),
		Type:      log.Meta.Type,
		Bits:      log.Meta.Bits,
		Count:     len(log.Seeds),
		Period:    period,
		Step:      new(big.Int).Set(log.Meta.Step),
		PlotLimit: desc.PlotLimit,
		Overrun:   desc.Overrun(),
		Skipped:   len(log.Skipped),
		Bytes:     buf.Len(),
		Checksum:  artifact.Checksum(buf.Bytes()),
	}

	// Written before the map, so a map is never left without its sidecar.
	if opts.Sidecar {
		marker := artifact.Marker{
			Timestamp: time.Now().UTC(),
			Input:     summary.Input,
			View:      summary.View,
			Count:     summary.Count,
			Bits:      summary.Bits,
			Period:    summary.Period.String(),
			Step:      summary.Step.String(),
			Checksum:  summary.Checksum,
		}
		if err := artifact.WriteMarker(opts.OutputPath, marker, opts.FileMode); err != nil {
			return nil, err
		}
		logger.Debug("Wrote sidecar", "path", artifact.MarkerPath(opts.OutputPath))
	}

	if _, err := artifact.Write(opts.OutputPath, buf.Bytes(), opts.FileMode); err != nil {
		if opts.Sidecar {
			if rerr := os.Remove(artifact.MarkerPath(opts.OutputPath)); rerr != nil {
				logger.Debug("Failed to remove sidecar", "path", artifact.MarkerPath(opts.OutputPath), "error", rerr)
			}
		}
		return nil, err
	}
	logger.Info("Saved visualization", "path", opts.OutputPath, "bytes", buf.Len())

	return summary, nil
}
