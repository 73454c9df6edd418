package coverage

import (
	"math/big"
	"testing"

	"github.com/provide-io/covmap/pkg/seedlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnitude_Markers(t *testing.T) {
	meta := seedlog.DefaultMetadata()
	meta.Bits = 8
	seeds := []seedlog.Seed{
		{Index: 0, Value: big.NewInt(200)},
		{Index: 1, Value: big.NewInt(3)},
		{Index: 2, Value: big.NewInt(77)},
	}

	d, err := Magnitude{}.Layout(meta, seeds)
	require.NoError(t, err)

	assert.Equal(t, "0", d.Background.Start.String())
	assert.Equal(t, "255", d.Background.End.String())
	assert.Equal(t, "255", d.PlotLimit.String())
	assert.Equal(t, 3, d.Palette)
	assert.Empty(t, d.Segments)
	assert.Empty(t, d.Dividers)
	assert.Nil(t, d.Boundary)

	require.Len(t, d.Markers, 3)
	for i, m := range d.Markers {
		assert.Zero(t, m.Position.Cmp(seeds[i].Value))
		assert.Equal(t, i, m.ColorIndex, "colored by index, not value")
	}

	require.Len(t, d.Labels, 1)
	assert.Equal(t, "3 seeds", d.Labels[0].Text)
}

func TestMagnitude_AnyMode(t *testing.T) {
	for _, mode := range []string{seedlog.ModeReseed, seedlog.ModeGenerate, seedlog.ModeUnknown, "CUSTOM"} {
		meta := seedlog.DefaultMetadata()
		meta.Type = mode
		d, err := Magnitude{}.Layout(meta, makeSeeds(2))
		require.NoError(t, err, mode)
		assert.Len(t, d.Markers, 2)
	}
}

func TestMagnitude_Empty(t *testing.T) {
	d, err := Magnitude{}.Layout(seedlog.DefaultMetadata(), nil)
	require.NoError(t, err)
	assert.Empty(t, d.Markers)
	assert.Equal(t, "0 seeds", d.Labels[0].Text)
}

func TestMagnitude_OutOfRangeWidensAxis(t *testing.T) {
	meta := seedlog.DefaultMetadata()
	meta.Bits = 4
	seeds := []seedlog.Seed{{Index: 0, Value: big.NewInt(40)}}

	d, err := Magnitude{}.Layout(meta, seeds)
	require.NoError(t, err)
	assert.Equal(t, "15", d.Background.End.String())
	assert.Equal(t, "40", d.PlotLimit.String())
}

func TestMagnitude_Idempotent(t *testing.T) {
	meta := seedlog.DefaultMetadata()
	meta.Bits = 64
	seeds := makeSeeds(25)

	a, err := Magnitude{}.Layout(meta, seeds)
	require.NoError(t, err)
	b, err := Magnitude{}.Layout(meta, seeds)
	require.NoError(t, err)

	ab, err := a.Encode()
	require.NoError(t, err)
	bb, err := b.Encode()
	require.NoError(t, err)
	assert.Equal(t, ab, bb)
	assert.Equal(t, a, b)
}

func TestMagnitude_LargeWidth(t *testing.T) {
	literal := "0xFFEEDDCCBBAA99887766554433221100"
	v, ok := seedlog.ParseLiteral(literal)
	require.True(t, ok)

	meta := seedlog.DefaultMetadata()
	meta.Bits = 128
	d, err := Magnitude{}.Layout(meta, []seedlog.Seed{{Index: 0, Value: v}})
	require.NoError(t, err)

	want, _ := new(big.Int).SetString("FFEEDDCCBBAA99887766554433221100", 16)
	assert.Zero(t, d.Markers[0].Position.Cmp(want))
	assert.True(t, d.Markers[0].Position.BitLen() > 64)
}

func TestMagnitude_InvalidBits(t *testing.T) {
	meta := seedlog.DefaultMetadata()
	meta.Bits = 0
	_, err := Magnitude{}.Layout(meta, makeSeeds(1))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
