// Package layout describes a coverage map as render-agnostic primitives.
//
// Positions are exact integers on a single horizontal axis spanning
// [0, PlotLimit]. Vertical placement is expressed as named slots so a
// backend is free to pick its own geometry.
package layout

import (
	"encoding/json"
	"math/big"
)

// Slot is a vertical placement for labels.
type Slot int

const (
	SlotCenter Slot = iota
	SlotUpper
	SlotLower
)

// Fraction returns the vertical position of the slot in [0, 1], bottom up.
func (s Slot) Fraction() float64 {
	switch s {
	case SlotUpper:
		return 0.8
	case SlotLower:
		return 0.15
	default:
		return 0.5
	}
}

func (s Slot) String() string {
	switch s {
	case SlotUpper:
		return "upper"
	case SlotLower:
		return "lower"
	default:
		return "center"
	}
}

// MarshalText encodes the slot by name.
func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Extent is a closed interval on the axis.
type Extent struct {
	Start *big.Int `json:"start"`
	End   *big.Int `json:"end"`
}

// Segment is a filled interval [Start, Start+Width).
type Segment struct {
	Start      *big.Int `json:"start"`
	Width      *big.Int `json:"width"`
	ColorIndex int      `json:"color_index"`
}

// End returns Start+Width.
func (s Segment) End() *big.Int {
	return new(big.Int).Add(s.Start, s.Width)
}

// Marker is a point on the axis.
type Marker struct {
	Position   *big.Int `json:"position"`
	ColorIndex int      `json:"color_index"`
}

// Label is text anchored at an axis position.
type Label struct {
	Position *big.Int `json:"position"`
	Slot     Slot     `json:"slot"`
	Text     string   `json:"text"`
}

// BoundaryMarker flags a notable axis position, such as the end of the run.
type BoundaryMarker struct {
	Position *big.Int `json:"position"`
	Text     string   `json:"text"`
}

// Tick is an axis tick with its formatted value.
type Tick struct {
	Position *big.Int `json:"position"`
	Text     string   `json:"text"`
}

// Description is the complete drawing plan for one coverage map.
type Description struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	AxisLabel string `json:"axis_label"`

	// Background is the theoretical period drawn behind everything else.
	Background Extent `json:"background"`
	// PlotLimit is the right edge of the axis.
	PlotLimit *big.Int `json:"plot_limit"`
	// Palette is the number of entries in the sequential color scale.
	Palette int `json:"palette"`

	Segments []Segment       `json:"segments,omitempty"`
	Markers  []Marker        `json:"markers,omitempty"`
	Dividers []*big.Int      `json:"dividers,omitempty"`
	Labels   []Label         `json:"labels,omitempty"`
	Boundary *BoundaryMarker `json:"boundary,omitempty"`
	Ticks    []Tick          `json:"ticks,omitempty"`
}

// Overrun reports whether the boundary lies beyond the background.
func (d *Description) Overrun() bool {
	return d.Boundary != nil && d.Boundary.Position.Cmp(d.Background.End) > 0
}

// Encode returns the indented JSON form of the description.
func (d *Description) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
