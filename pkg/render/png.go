package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/provide-io/covmap/pkg/layout"
)

func init() {
	Register(".png", func(opts Options) Renderer { return NewPNGRenderer(opts) })
}

var (
	white      = color.RGBA{255, 255, 255, 255}
	black      = color.RGBA{0, 0, 0, 255}
	background = color.RGBA{0xe0, 0xe0, 0xe0, 255}
	boundary   = color.RGBA{220, 20, 20, 255}
	axisGray   = color.RGBA{90, 90, 90, 255}
)

// PNGRenderer rasterises a description. Shapes are drawn at Supersample
// times the target size and scaled down; text is drawn at target size.
type PNGRenderer struct {
	opts Options
}

// NewPNGRenderer creates a PNG backend. opts must be normalized.
func NewPNGRenderer(opts Options) *PNGRenderer {
	return &PNGRenderer{opts: opts}
}

func (r *PNGRenderer) Name() string {
	return "png"
}

// Render encodes the rasterised description as PNG.
func (r *PNGRenderer) Render(w io.Writer, d *layout.Description) error {
	img := r.Rasterize(d)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Rasterize draws d onto a new RGBA image of the configured size.
func (r *PNGRenderer) Rasterize(d *layout.Description) *image.RGBA {
	s := r.opts.Supersample
	if s < 1 {
		s = 1
	}

	hi := image.NewRGBA(image.Rect(0, 0, r.opts.Width*s, r.opts.Height*s))
	draw.Draw(hi, hi.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	drawShapes(hi, newFrame(r.opts.Width*s, r.opts.Height*s, d.PlotLimit), d, float64(s))

	out := hi
	if s > 1 {
		scaled := resize.Resize(uint(r.opts.Width), uint(r.opts.Height), hi, resize.Lanczos3)
		out = image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
		draw.Draw(out, out.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	}

	drawText(out, newFrame(r.opts.Width, r.opts.Height, d.PlotLimit), d)
	return out
}

func drawShapes(dst draw.Image, f frame, d *layout.Description, scale float64) {
	y0, y1 := f.Y(bandHigh), f.Y(bandLow)

	if d.Background.End != nil {
		fillRect(dst, f.X(d.Background.Start), y0, f.X(d.Background.End), y1, background)
	}

	palette := Viridis(d.Palette)
	for _, seg := range d.Segments {
		c := palette.At(seg.ColorIndex)
		fillRect(dst, f.X(seg.Start), y0, f.X(seg.End()), y1, color.NRGBA{c.R, c.G, c.B, 204})
	}

	for _, pos := range d.Dividers {
		x := f.X(pos)
		fillRect(dst, x-scale/2, f.Y(dividerHigh), x+scale/2, f.Y(dividerLow), color.NRGBA{0, 0, 0, 77})
	}

	radius := 4 * scale
	for _, m := range d.Markers {
		c := palette.At(m.ColorIndex)
		fillCircle(dst, f.X(m.Position), f.Y(markerY), radius, color.NRGBA{c.R, c.G, c.B, 230})
	}

	// axis baseline and tick marks
	axisY := f.Y(0)
	fillRect(dst, f.left, axisY, f.left+f.plotWidth(), axisY+scale, axisGray)
	for _, t := range d.Ticks {
		x := f.X(t.Position)
		fillRect(dst, x-scale/2, axisY, x+scale/2, axisY+6*scale, axisGray)
	}

	if d.Boundary != nil {
		x := f.X(d.Boundary.Position)
		dash := 6 * scale
		for y := f.Y(1); y < f.Y(0); y += 2 * dash {
			fillRect(dst, x-scale, y, x+scale, math.Min(y+dash, f.Y(0)), boundary)
		}
	}
}

func drawText(dst draw.Image, f frame, d *layout.Description) {
	face := basicfont.Face7x13

	drawLines(dst, face, f.width/2, f.top*0.3, d.Title, black, alignCenter)
	if d.Subtitle != "" {
		drawLines(dst, face, f.width/2, f.top*0.3+lineHeight(face)*1.5, d.Subtitle, black, alignCenter)
	}

	axisY := f.Y(0)
	for _, t := range d.Ticks {
		drawLines(dst, face, f.X(t.Position), axisY+10, t.Text, axisGray, alignCenter)
	}
	drawLines(dst, face, f.width/2, axisY+10+lineHeight(face)*2.5, d.AxisLabel, black, alignCenter)

	for _, l := range d.Labels {
		drawLines(dst, face, f.X(l.Position)+3, f.Y(l.Slot.Fraction()), l.Text, black, alignLeft)
	}

	if d.Boundary != nil {
		drawLines(dst, face, f.X(d.Boundary.Position)+4, f.Y(markerY), d.Boundary.Text, boundary, alignLeft)
	}
}

type align int

const (
	alignLeft align = iota
	alignCenter
)

func lineHeight(face font.Face) float64 {
	return float64(face.Metrics().Height.Ceil()) + 2
}

// drawLines draws newline separated text whose first line's top sits at y.
func drawLines(dst draw.Image, face font.Face, x, y float64, text string, c color.Color, a align) {
	ascent := face.Metrics().Ascent.Ceil()
	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	for i, line := range strings.Split(text, "\n") {
		lx := x
		if a == alignCenter {
			lx -= float64(dr.MeasureString(line).Round()) / 2
		}
		ly := y + float64(i)*lineHeight(face) + float64(ascent)
		dr.Dot = fixed.P(int(math.Round(lx)), int(math.Round(ly)))
		dr.DrawString(line)
	}
}

// fillRect composites c over the half-open pixel span covering [x0,x1]x[y0,y1].
// Spans narrower than a pixel still cover one.
func fillRect(dst draw.Image, x0, y0, x1, y1 float64, c color.Color) {
	r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
	if r.Dx() == 0 {
		r.Max.X = r.Min.X + 1
	}
	if r.Dy() == 0 {
		r.Max.Y = r.Min.Y + 1
	}
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

func fillCircle(dst draw.Image, cx, cy, radius float64, c color.Color) {
	m := &circle{cx: cx, cy: cy, r: radius}
	draw.DrawMask(dst, m.Bounds().Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, m, m.Bounds().Intersect(dst.Bounds()).Min, draw.Over)
}

// circle is an alpha mask for a filled disc.
type circle struct {
	cx, cy, r float64
}

func (c *circle) ColorModel() color.Model {
	return color.AlphaModel
}

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(c.cx-c.r)), int(math.Floor(c.cy-c.r)),
		int(math.Ceil(c.cx+c.r))+1, int(math.Ceil(c.cy+c.r))+1,
	)
}

func (c *circle) At(x, y int) color.Color {
	dx, dy := float64(x)+0.5-c.cx, float64(y)+0.5-c.cy
	if dx*dx+dy*dy <= c.r*c.r {
		return color.Alpha{255}
	}
	return color.Alpha{0}
}
