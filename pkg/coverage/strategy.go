// Package coverage lays out a parsed seed log as a coverage map.
//
// Two strategies exist. Timeline partitions the generator's step axis into
// one segment per seed and only applies to fixed-interval reseed logs.
// Magnitude places each seed at its raw value and applies to any log, at the
// cost of temporal meaning. Both are pure functions of their input.
package coverage

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/provide-io/covmap/pkg/layout"
	"github.com/provide-io/covmap/pkg/seedlog"
)

var (
	// ErrModeMismatch is returned when a log was not generated in the mode a strategy needs.
	ErrModeMismatch = errors.New("❌ mode mismatch")

	// ErrInvalidParameter is returned for unusable header values or an empty log.
	ErrInvalidParameter = seedlog.ErrInvalidParameter

	// ErrUnknownStrategy is returned by Get and Select for unregistered names.
	ErrUnknownStrategy = errors.New("❌ unknown coverage strategy")
)

// Strategy names.
const (
	NameAuto      = "auto"
	NameTimeline  = "timeline"
	NameMagnitude = "magnitude"
)

// Strategy turns metadata and seeds into a layout description.
type Strategy interface {
	// Name returns the registry name (e.g., NameTimeline)
	Name() string

	// Layout validates its preconditions and returns a fresh description.
	Layout(meta seedlog.Metadata, seeds []seedlog.Seed) (*layout.Description, error)
}

// Registry maps strategy names to implementations
var Registry = make(map[string]Strategy)

// Register registers a strategy implementation
func Register(s Strategy) {
	Registry[s.Name()] = s
}

// Get retrieves a strategy by name
func Get(name string) (Strategy, error) {
	s, ok := Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves a view name against the log metadata. NameAuto picks
// Timeline for reseed logs with a positive step and Magnitude otherwise.
func Select(view string, meta seedlog.Metadata) (Strategy, error) {
	if view == "" || strings.EqualFold(view, NameAuto) {
		if meta.IsReseed() {
			return Get(NameTimeline)
		}
		return Get(NameMagnitude)
	}
	return Get(view)
}

// Build selects a strategy and lays out log with it.
func Build(view string, log *seedlog.Log) (*layout.Description, Strategy, error) {
	s, err := Select(view, log.Meta)
	if err != nil {
		return nil, nil, err
	}
	d, err := s.Layout(log.Meta, log.Seeds)
	if err != nil {
		return nil, s, err
	}
	return d, s, nil
}
