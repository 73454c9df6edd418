package pkg

import (
	"errors"

	"github.com/provide-io/covmap/pkg/coverage"
	"github.com/provide-io/covmap/pkg/render"
	"github.com/provide-io/covmap/pkg/seedlog"
)

var (
	// Input errors 📄
	ErrSourceNotFound   = seedlog.ErrSourceNotFound
	ErrInvalidParameter = seedlog.ErrInvalidParameter

	// Layout errors 📐
	ErrModeMismatch    = coverage.ErrModeMismatch
	ErrUnknownStrategy = coverage.ErrUnknownStrategy

	// Output errors 🖼️
	ErrUnsupportedFormat = render.ErrUnsupportedFormat
	ErrInvalidOptions    = errors.New("❌ invalid render options")

	// Inspection errors 🔍
	ErrInspectionFailed = errors.New("❌ seed log inspection failed")
	ErrArtifactMismatch = errors.New("❌ artifact does not match its sidecar")
)
