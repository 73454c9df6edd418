package render

import (
	"fmt"
	"io"

	"github.com/provide-io/covmap/pkg/layout"
)

func init() {
	Register(".json", func(Options) Renderer { return JSONRenderer{} })
}

// JSONRenderer writes the layout description itself, for other plotting backends.
type JSONRenderer struct{}

func (JSONRenderer) Name() string {
	return "json"
}

func (JSONRenderer) Render(w io.Writer, d *layout.Description) error {
	b, err := d.Encode()
	if err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("writing layout: %w", err)
	}
	return nil
}
