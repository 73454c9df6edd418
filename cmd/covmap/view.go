package main

import (
	"fmt"
	"strings"

	"github.com/provide-io/covmap/pkg/coverage"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*viewValue)(nil)

// viewValue restricts the --view flag to known coverage views.
type viewValue string

func (v *viewValue) String() string {
	return string(*v)
}

func (v *viewValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == coverage.NameAuto {
		*v = viewValue(s)
		return nil
	}
	if _, err := coverage.Get(s); err != nil {
		return fmt.Errorf("unknown view %q (want %s or %s)", s, coverage.NameAuto, strings.Join(coverage.Names(), ", "))
	}
	*v = viewValue(s)
	return nil
}

func (v *viewValue) Type() string {
	return "view"
}
