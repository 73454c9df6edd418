package coverage

import (
	"fmt"
	"math/big"

	"github.com/provide-io/covmap/pkg/layout"
	"github.com/provide-io/covmap/pkg/seedlog"
)

func init() {
	Register(&Magnitude{})
}

// Magnitude places seed i at its raw value on [0, period].
//
// Successive LFSR states are not a linear function of sequence position, so
// positions here say nothing about time; color still follows log order.
type Magnitude struct{}

func (Magnitude) Name() string {
	return NameMagnitude
}

// Layout accepts any mode. Values above the period widen the axis so they
// stay visible instead of being clipped.
func (Magnitude) Layout(meta seedlog.Metadata, seeds []seedlog.Seed) (*layout.Description, error) {
	period, err := meta.Period()
	if err != nil {
		return nil, err
	}

	plotLimit := new(big.Int).Set(period)
	d := &layout.Description{
		Title:     "LFSR Seed Coverage Map (Magnitude View)",
		Subtitle:  fmt.Sprintf("%d-bit LFSR, TYPE=%s, seeds placed by value (approximation)", meta.Bits, meta.Type),
		AxisLabel: fmt.Sprintf("Seed Value, Total Period: 2^%d-1", meta.Bits),
		Background: layout.Extent{
			Start: new(big.Int),
			End:   new(big.Int).Set(period),
		},
		Palette: len(seeds),
		Markers: make([]layout.Marker, 0, len(seeds)),
	}

	for i, s := range seeds {
		d.Markers = append(d.Markers, layout.Marker{
			Position:   new(big.Int).Set(s.Value),
			ColorIndex: i,
		})
		if s.Value.Cmp(plotLimit) > 0 {
			plotLimit.Set(s.Value)
		}
	}

	d.PlotLimit = plotLimit
	d.Ticks = layout.Ticks(plotLimit, TickCount)
	d.Labels = []layout.Label{{
		Position: new(big.Int),
		Slot:     layout.SlotUpper,
		Text:     fmt.Sprintf("%d seeds", len(seeds)),
	}}
	return d, nil
}
