// Package codec maps file extensions to stream codecs so seed logs and
// rendered artifacts can be read and written compressed.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// Codec identifiers
const (
	ID_NONE  = 0x00
	ID_GZIP  = 0x10
	ID_BZIP2 = 0x13
)

// Codec wraps a stream in a (de)compressing reader or writer.
type Codec interface {
	// ID returns the codec identifier (e.g., ID_GZIP)
	ID() uint8

	// Name returns the human-readable name
	Name() string

	// Extensions lists the file suffixes handled by the codec, lower case with the dot.
	Extensions() []string

	// NewReader wraps r so reads yield decoded data.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// NewWriter wraps w so writes are encoded. Close flushes the trailer.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// BaseCodec provides common functionality for codecs
type BaseCodec struct {
	CodecID   uint8
	CodecName string
	Exts      []string
}

func (c *BaseCodec) ID() uint8 {
	return c.CodecID
}

func (c *BaseCodec) Name() string {
	return c.CodecName
}

func (c *BaseCodec) Extensions() []string {
	return c.Exts
}

// Registry maps codec IDs to implementations
var Registry = make(map[uint8]Codec)

// Register registers a codec implementation
func Register(c Codec) {
	Registry[c.ID()] = c
}

// Get retrieves a codec by ID
func Get(id uint8) (Codec, error) {
	c, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown codec: 0x%02x", id)
	}
	return c, nil
}

// GetName returns the name of a codec by ID
func GetName(id uint8) string {
	switch id {
	case ID_NONE:
		return "NONE"
	case ID_GZIP:
		return "GZIP"
	case ID_BZIP2:
		return "BZIP2"
	default:
		return fmt.Sprintf("UNKNOWN_%02x", id)
	}
}

// ForPath returns the codec whose extension matches path, and the path with
// that extension removed. ok is false for uncompressed paths.
func ForPath(path string) (c Codec, inner string, ok bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, path, false
	}
	for _, id := range ids() {
		for _, e := range Registry[id].Extensions() {
			if e == ext {
				return Registry[id], strings.TrimSuffix(path, filepath.Ext(path)), true
			}
		}
	}
	return nil, path, false
}

// ids returns registered IDs in ascending order so lookups are deterministic.
func ids() []uint8 {
	out := make([]uint8, 0, len(Registry))
	for id := range Registry {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
