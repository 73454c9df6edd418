// Package render draws a layout.Description to an image artifact.
//
// Backends are chosen by output file extension: .png rasterises, .svg and
// .svgz emit vector graphics, .json writes the description itself.
// Any registered extension followed by .gz or .bz2 is compressed on the way out.
package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/provide-io/covmap/pkg/codec"
	"github.com/provide-io/covmap/pkg/layout"
)

// ErrUnsupportedFormat is returned for output paths with no registered backend.
var ErrUnsupportedFormat = errors.New("❌ unsupported output format")

// Canvas defaults, matching a 14x6 inch figure at 150 dpi.
const (
	DefaultWidth       = 2100
	DefaultHeight      = 900
	DefaultSupersample = 2
	MaxSupersample     = 4
	minDimension       = 200

	// MaxDimension caps each edge of the drawn canvas, supersampling included.
	MaxDimension = 8192
)

// Options sizes the canvas.
type Options struct {
	Width       int
	Height      int
	Supersample int
}

// Normalize fills zero values with defaults and validates the rest.
func (o Options) Normalize() (Options, error) {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Supersample == 0 {
		o.Supersample = DefaultSupersample
	}
	if o.Width < minDimension || o.Height < minDimension {
		return o, fmt.Errorf("canvas %dx%d is smaller than %dx%d", o.Width, o.Height, minDimension, minDimension)
	}
	if o.Supersample < 1 || o.Supersample > MaxSupersample {
		return o, fmt.Errorf("supersample %d outside 1..%d", o.Supersample, MaxSupersample)
	}
	if o.Width > MaxDimension/o.Supersample || o.Height > MaxDimension/o.Supersample {
		return o, fmt.Errorf("canvas %dx%d at supersample %d exceeds %dx%d",
			o.Width, o.Height, o.Supersample, MaxDimension, MaxDimension)
	}
	return o, nil
}

// Renderer draws a description to w.
type Renderer interface {
	// Name returns the backend name (e.g., "png")
	Name() string

	// Render writes the complete artifact to w.
	Render(w io.Writer, d *layout.Description) error
}

// Factory builds a renderer for normalized options.
type Factory func(opts Options) Renderer

// Registry maps lower-case file extensions to backends
var Registry = make(map[string]Factory)

// Register registers a backend for ext (with the leading dot)
func Register(ext string, f Factory) {
	Registry[strings.ToLower(ext)] = f
}

// Extensions returns the registered extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(Registry))
	for ext := range Registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ForPath returns the renderer for an output path.
func ForPath(path string, opts Options) (Renderer, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := Registry[ext]; ok {
		return f(opts), nil
	}

	if c, inner, ok := codec.ForPath(path); ok {
		if f, ok := Registry[strings.ToLower(filepath.Ext(inner))]; ok {
			return &compressed{inner: f(opts), codec: c}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions(), ", "))
}

// compressed encodes another backend's output with a codec.
type compressed struct {
	inner Renderer
	codec codec.Codec
}

func (c *compressed) Name() string {
	return c.inner.Name() + "+" + strings.ToLower(c.codec.Name())
}

func (c *compressed) Render(w io.Writer, d *layout.Description) error {
	cw, err := c.codec.NewWriter(w)
	if err != nil {
		return err
	}
	if err := c.inner.Render(cw, d); err != nil {
		cw.Close()
		return err
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("closing %s stream: %w", c.codec.Name(), err)
	}
	return nil
}

func init() {
	Register(".svgz", func(opts Options) Renderer {
		gz, err := codec.Get(codec.ID_GZIP)
		if err != nil {
			panic(err)
		}
		return &compressed{inner: NewSVGRenderer(opts), codec: gz}
	})
}
