package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/provide-io/covmap/pkg/layout"
)

func init() {
	Register(".svg", func(opts Options) Renderer { return NewSVGRenderer(opts) })
}

const (
	svgFont     = "font-family:sans-serif;font-size:12px"
	svgLineStep = 14
)

// SVGRenderer emits the description as an SVG document.
type SVGRenderer struct {
	opts Options
}

// NewSVGRenderer creates an SVG backend. opts must be normalized.
func NewSVGRenderer(opts Options) *SVGRenderer {
	return &SVGRenderer{opts: opts}
}

func (r *SVGRenderer) Name() string {
	return "svg"
}

// Render writes a standalone SVG document.
func (r *SVGRenderer) Render(w io.Writer, d *layout.Description) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	f := newFrame(r.opts.Width, r.opts.Height, d.PlotLimit)

	canvas.Start(r.opts.Width, r.opts.Height)
	canvas.Title(d.Title)
	canvas.Rect(0, 0, r.opts.Width, r.opts.Height, "fill:white")

	y0, y1 := px(f.Y(bandHigh)), px(f.Y(bandLow))

	canvas.Gid("period")
	if d.Background.End != nil {
		x0, x1 := px(f.X(d.Background.Start)), px(f.X(d.Background.End))
		canvas.Rect(x0, y0, atLeastOne(x1-x0), y1-y0, "fill:"+hex(background))
	}
	canvas.Gend()

	palette := Viridis(d.Palette)
	canvas.Gid("segments")
	for _, seg := range d.Segments {
		x0, x1 := px(f.X(seg.Start)), px(f.X(seg.End()))
		canvas.Rect(x0, y0, atLeastOne(x1-x0), y1-y0,
			fmt.Sprintf("fill:%s;fill-opacity:0.8", hex(palette.At(seg.ColorIndex))))
	}
	canvas.Gend()

	canvas.Gid("dividers")
	canvas.Gstyle("stroke:black;stroke-opacity:0.3;stroke-width:1")
	for _, pos := range d.Dividers {
		x := px(f.X(pos))
		canvas.Line(x, px(f.Y(dividerHigh)), x, px(f.Y(dividerLow)))
	}
	canvas.Gend()
	canvas.Gend()

	canvas.Gid("markers")
	for _, m := range d.Markers {
		canvas.Circle(px(f.X(m.Position)), px(f.Y(markerY)), 4,
			fmt.Sprintf("fill:%s;fill-opacity:0.9", hex(palette.At(m.ColorIndex))))
	}
	canvas.Gend()

	axisY := px(f.Y(0))
	canvas.Gid("axis")
	canvas.Line(px(f.left), axisY, px(f.left+f.plotWidth()), axisY, "stroke:"+hex(axisGray))
	for _, t := range d.Ticks {
		x := px(f.X(t.Position))
		canvas.Line(x, axisY, x, axisY+6, "stroke:"+hex(axisGray))
		canvas.Text(x, axisY+20, t.Text, svgFont+";text-anchor:middle;fill:"+hex(axisGray))
	}
	textLines(canvas, r.opts.Width/2, axisY+46, d.AxisLabel, svgFont+";text-anchor:middle")
	canvas.Gend()

	textLines(canvas, r.opts.Width/2, px(f.top*0.35), d.Title, "font-family:sans-serif;font-size:16px;font-weight:bold;text-anchor:middle")
	if d.Subtitle != "" {
		textLines(canvas, r.opts.Width/2, px(f.top*0.35)+20, d.Subtitle, svgFont+";text-anchor:middle")
	}

	canvas.Gid("labels")
	for _, l := range d.Labels {
		textLines(canvas, px(f.X(l.Position))+3, px(f.Y(l.Slot.Fraction())), l.Text, svgFont)
	}
	canvas.Gend()

	if d.Boundary != nil {
		x := px(f.X(d.Boundary.Position))
		canvas.Line(x, px(f.Y(1)), x, axisY, "stroke:"+hex(boundary)+";stroke-width:2;stroke-dasharray:2,3")
		canvas.Text(x+4, px(f.Y(markerY)), d.Boundary.Text, svgFont+";font-weight:bold;fill:"+hex(boundary))
	}

	canvas.End()
	return ew.err
}

func textLines(canvas *svg.SVG, x, y int, text, style string) {
	for i, line := range strings.Split(text, "\n") {
		canvas.Text(x, y+i*svgLineStep, line, style)
	}
}

func px(v float64) int {
	return int(math.Round(v))
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
