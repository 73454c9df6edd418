package render

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"image/color"
	"image/png"
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/provide-io/covmap/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayout() *layout.Description {
	return &layout.Description{
		Title:      "LFSR Reseed Coverage Map (Timeline View)",
		Subtitle:   "8-bit LFSR, 2 segments of 100 steps each",
		AxisLabel:  "steps",
		Background: layout.Extent{Start: big.NewInt(0), End: big.NewInt(255)},
		PlotLimit:  big.NewInt(255),
		Palette:    2,
		Segments: []layout.Segment{
			{Start: big.NewInt(0), Width: big.NewInt(100), ColorIndex: 0},
			{Start: big.NewInt(100), Width: big.NewInt(100), ColorIndex: 1},
		},
		Dividers: []*big.Int{big.NewInt(0), big.NewInt(100)},
		Labels: []layout.Label{
			{Position: big.NewInt(0), Slot: layout.SlotUpper, Text: "#1\n0x1"},
			{Position: big.NewInt(100), Slot: layout.SlotLower, Text: "#2\n0x<&>"},
		},
		Boundary: &layout.BoundaryMarker{Position: big.NewInt(200), Text: "End of Generated Sequence"},
		Ticks:    layout.Ticks(big.NewInt(255), 5),
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "coverage_map.png", want: "png"},
		{path: "OUT.PNG", want: "png"},
		{path: "map.svg", want: "svg"},
		{path: "map.svgz", want: "svg+gzip"},
		{path: "layout.json", want: "json"},
		{path: "layout.json.bz2", want: "json+bzip2"},
		{path: "map.svg.gz", want: "svg+gzip"},
		{path: "map.jpg", wantErr: true},
		{path: "map", wantErr: true},
		{path: "map.txt.gz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, err := ForPath(tt.path, Options{})
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Name())
		})
	}
}

func TestOptionsNormalize(t *testing.T) {
	o, err := Options{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Options{Width: DefaultWidth, Height: DefaultHeight, Supersample: DefaultSupersample}, o)

	_, err = Options{Width: 50}.Normalize()
	assert.Error(t, err)
	_, err = Options{Supersample: MaxSupersample + 1}.Normalize()
	assert.Error(t, err)
	_, err = Options{Supersample: -1}.Normalize()
	assert.Error(t, err)

	o, err = Options{Width: MaxDimension / 4, Height: 400, Supersample: 4}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, MaxDimension/4, o.Width)
	_, err = Options{Width: MaxDimension/4 + 1, Height: 400, Supersample: 4}.Normalize()
	assert.Error(t, err)
	_, err = Options{Width: 1 << 31, Height: 1 << 31, Supersample: 4}.Normalize()
	assert.Error(t, err)
	_, err = Options{Width: 400, Height: MaxDimension + 1, Supersample: 1}.Normalize()
	assert.Error(t, err)

	_, err = ForPath("x.png", Options{Height: 10})
	assert.Error(t, err)
}

func TestPNGRenderer(t *testing.T) {
	for _, ss := range []int{1, 2} {
		opts := Options{Width: 400, Height: 240, Supersample: ss}
		r := NewPNGRenderer(opts)

		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, sampleLayout()))

		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 400, img.Bounds().Dx())
		assert.Equal(t, 240, img.Bounds().Dy())

		f := newFrame(400, 240, big.NewInt(255))
		// middle of the first segment, away from dividers and labels
		x, y := px(f.X(big.NewInt(60))), px(f.Y(0.4))
		got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
		assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, got, "supersample=%d", ss)
		assert.Greater(t, int(got.B), int(got.G), "first segment is the purple end of the scale")

		corner := color.RGBAModel.Convert(img.At(2, 2)).(color.RGBA)
		assert.GreaterOrEqual(t, corner.R, uint8(250))
		assert.GreaterOrEqual(t, corner.G, uint8(250))
		assert.GreaterOrEqual(t, corner.B, uint8(250))
	}
}

func TestSVGRenderer(t *testing.T) {
	r, err := ForPath("map.svg", Options{Width: 800, Height: 400})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleLayout()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `width="800" height="400"`)
	assert.Contains(t, out, "LFSR Reseed Coverage Map (Timeline View)")
	assert.Contains(t, out, "End of Generated Sequence")
	assert.Contains(t, out, "0x&lt;&amp;&gt;")
	assert.Equal(t, 2, strings.Count(out, "fill-opacity:0.8"))
	assert.Contains(t, out, "</svg>")
}

func TestSVGZRenderer(t *testing.T) {
	r, err := ForPath("map.svgz", Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleLayout()))

	gr, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	plain, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Contains(t, string(plain), "<svg")
}

func TestJSONRenderer(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, JSONRenderer{}.Render(&a, sampleLayout()))
	require.NoError(t, JSONRenderer{}.Render(&b, sampleLayout()))
	assert.Equal(t, a.Bytes(), b.Bytes())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(a.Bytes(), &decoded))
	assert.Equal(t, float64(255), decoded["plot_limit"])
	assert.Len(t, decoded["segments"], 2)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestRenderWriteErrors(t *testing.T) {
	for _, path := range []string{"a.png", "a.svg", "a.json"} {
		r, err := ForPath(path, Options{Width: 300, Height: 300, Supersample: 1})
		require.NoError(t, err)
		assert.Error(t, r.Render(failingWriter{}, sampleLayout()), path)
	}
}

func assertNearColor(t *testing.T, want, got color.RGBA, msg string) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 3, msg)
	assert.InDelta(t, want.G, got.G, 3, msg)
	assert.InDelta(t, want.B, got.B, 3, msg)
	assert.Equal(t, uint8(255), got.A, msg)
}

func TestViridis(t *testing.T) {
	dark := color.RGBA{0x44, 0x01, 0x54, 255}
	bright := color.RGBA{0xfd, 0xe7, 0x25, 255}

	s := Viridis(5)
	assert.Equal(t, 5, s.Len())
	assertNearColor(t, dark, s.At(0), "first entry")
	assertNearColor(t, bright, s.At(4), "last entry")
	assert.Equal(t, s.At(0), s.At(-3))
	assert.Equal(t, s.At(4), s.At(99))

	assert.Equal(t, s.At(0), Viridis(1).At(0))
	assert.Equal(t, s.At(0), Viridis(0).At(0))

	// luminance ordering: green channel rises monotonically along the scale
	wide := Viridis(64)
	for i := 1; i < 64; i++ {
		assert.GreaterOrEqual(t, wide.At(i).G, wide.At(i-1).G, "entry %d", i)
	}
	assert.Equal(t, "#440154", hex(dark))
}

func TestFrameLargeValues(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 200)
	f := newFrame(1000, 500, limit)

	half := new(big.Int).Rsh(limit, 1)
	assert.InDelta(t, f.left+f.plotWidth()/2, f.X(half), 1e-6)
	assert.InDelta(t, f.left, f.X(big.NewInt(0)), 1e-9)
	assert.InDelta(t, f.left+f.plotWidth(), f.X(limit), 1e-6)

	empty := newFrame(1000, 500, big.NewInt(0))
	assert.Equal(t, empty.left, empty.X(big.NewInt(5)))
}
