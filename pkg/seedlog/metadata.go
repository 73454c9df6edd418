package seedlog

import (
	"fmt"
	"math/big"
)

// Recognised header keys.
const (
	KeyBits  = "BITS"
	KeyStep  = "STEP"
	KeyType  = "TYPE"
	KeyCount = "COUNT"
)

// Mode tags written by the generator.
const (
	ModeReseed   = "RESEED"
	ModeGenerate = "GENERATE"
	ModeUnknown  = "UNKNOWN"
)

const (
	// DefaultBits is the register width assumed when BITS is absent.
	DefaultBits = 32

	// MaxBits bounds the register width so Period stays allocatable.
	MaxBits = 1 << 16
)

// Value is one header value. Int is set when Raw is a base-10 integer.
type Value struct {
	Raw string   `json:"raw"`
	Int *big.Int `json:"int,omitempty"`
}

// IsInt reports whether the value parsed as an integer.
func (v Value) IsInt() bool {
	return v.Int != nil
}

func (v Value) String() string {
	if v.Int != nil {
		return v.Int.String()
	}
	return v.Raw
}

// Metadata is the typed view of a log header.
type Metadata struct {
	// Bits is the register width. Zero means BITS was present but unusable.
	Bits int
	// Step is the reseed interval in generator steps.
	Step *big.Int
	// Type is the generator mode tag.
	Type string
	// Fields holds every header field verbatim, last occurrence wins.
	Fields map[string]Value
}

// DefaultMetadata returns the metadata of a log with no header.
func DefaultMetadata() Metadata {
	return Metadata{
		Bits:   DefaultBits,
		Step:   new(big.Int),
		Type:   ModeUnknown,
		Fields: map[string]Value{},
	}
}

// resolve fills the typed fields from Fields.
func (m *Metadata) resolve() {
	if v, ok := m.Fields[KeyBits]; ok {
		m.Bits = 0
		if v.Int != nil && v.Int.IsInt64() && v.Int.Sign() > 0 && v.Int.Int64() <= MaxBits {
			m.Bits = int(v.Int.Int64())
		}
	}
	if v, ok := m.Fields[KeyStep]; ok {
		m.Step = new(big.Int)
		if v.Int != nil {
			m.Step.Set(v.Int)
		}
	}
	if v, ok := m.Fields[KeyType]; ok {
		m.Type = v.Raw
	}
}

// DeclaredCount returns the COUNT header when it is a non-negative integer.
func (m Metadata) DeclaredCount() (int, bool) {
	v, ok := m.Fields[KeyCount]
	if !ok || v.Int == nil || !v.Int.IsInt64() || v.Int.Sign() < 0 {
		return 0, false
	}
	return int(v.Int.Int64()), true
}

// Raw returns the header text for key, or the rendering of the typed
// default when the key was absent.
func (m Metadata) Raw(key string) string {
	if v, ok := m.Fields[key]; ok {
		return v.Raw
	}
	switch key {
	case KeyBits:
		return fmt.Sprint(m.Bits)
	case KeyStep:
		return m.step().String()
	case KeyType:
		return m.Type
	}
	return ""
}

// Period returns 2^Bits - 1, the number of distinct non-zero register states.
func (m Metadata) Period() (*big.Int, error) {
	if m.Bits <= 0 || m.Bits > MaxBits {
		return nil, fmt.Errorf("%w: BITS=%s (want 1..%d)", ErrInvalidParameter, m.Raw(KeyBits), MaxBits)
	}
	p := new(big.Int).Lsh(big.NewInt(1), uint(m.Bits))
	return p.Sub(p, big.NewInt(1)), nil
}

// IsReseed reports whether the header declares reseed mode with a usable step.
func (m Metadata) IsReseed() bool {
	return m.Type == ModeReseed && m.step().Sign() > 0
}

func (m Metadata) step() *big.Int {
	if m.Step == nil {
		return new(big.Int)
	}
	return m.Step
}
