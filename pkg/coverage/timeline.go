package coverage

import (
	"fmt"
	"math/big"

	"github.com/provide-io/covmap/pkg/layout"
	"github.com/provide-io/covmap/pkg/seedlog"
)

func init() {
	Register(&Timeline{})
}

// TickCount is the number of axis intervals both strategies emit.
const TickCount = 5

const (
	// edgeLabels is how many segments at each end of the timeline get a label.
	edgeLabels = 2

	endOfSequence = "End of Generated Sequence"
)

// Timeline maps seed i to the segment [i*step, (i+1)*step).
type Timeline struct{}

func (Timeline) Name() string {
	return NameTimeline
}

// Layout requires TYPE=RESEED, STEP > 0 and at least one seed.
func (Timeline) Layout(meta seedlog.Metadata, seeds []seedlog.Seed) (*layout.Description, error) {
	step := meta.Step
	if step == nil {
		step = new(big.Int)
	}
	count := len(seeds)

	if meta.Type != seedlog.ModeReseed {
		return nil, fmt.Errorf("%w: timeline view needs TYPE=%s (TYPE=%s, STEP=%s, count=%d)",
			ErrModeMismatch, seedlog.ModeReseed, meta.Type, meta.Raw(seedlog.KeyStep), count)
	}
	if step.Sign() <= 0 || count == 0 {
		return nil, fmt.Errorf("%w: timeline view needs STEP > 0 and at least one seed (TYPE=%s, STEP=%s, count=%d)",
			ErrInvalidParameter, meta.Type, meta.Raw(seedlog.KeyStep), count)
	}

	period, err := meta.Period()
	if err != nil {
		return nil, err
	}

	finalPos := new(big.Int).Mul(big.NewInt(int64(count)), step)
	plotLimit := maxInt(period, finalPos)

	d := &layout.Description{
		Title:     "LFSR Reseed Coverage Map (Timeline View)",
		Subtitle:  fmt.Sprintf("%d-bit LFSR, %d segments of %s steps each", meta.Bits, count, step),
		AxisLabel: fmt.Sprintf("LFSR Sequence Timeline (Steps from Initial Seed), Total Period: 2^%d-1", meta.Bits),
		Background: layout.Extent{
			Start: new(big.Int),
			End:   minInt(period, plotLimit),
		},
		PlotLimit: plotLimit,
		Palette:   count,
		Segments:  make([]layout.Segment, 0, count),
		Dividers:  make([]*big.Int, 0, count),
		Ticks:     layout.Ticks(plotLimit, TickCount),
	}

	for i, s := range seeds {
		start := new(big.Int).Mul(big.NewInt(int64(i)), step)
		d.Segments = append(d.Segments, layout.Segment{
			Start:      start,
			Width:      new(big.Int).Set(step),
			ColorIndex: i,
		})
		d.Dividers = append(d.Dividers, new(big.Int).Set(start))

		if i < edgeLabels || i >= count-edgeLabels {
			slot := layout.SlotUpper
			if i%2 != 0 {
				slot = layout.SlotLower
			}
			d.Labels = append(d.Labels, layout.Label{
				Position: new(big.Int).Set(start),
				Slot:     slot,
				Text:     fmt.Sprintf("#%d\n0x%X", i+1, s.Value),
			})
		}
	}

	if finalPos.Sign() > 0 {
		d.Boundary = &layout.BoundaryMarker{Position: finalPos, Text: endOfSequence}
	}
	return d, nil
}

func maxInt(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}

func minInt(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}
