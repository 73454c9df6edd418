package codec

import (
	"compress/gzip"
	"fmt"
	"io"
)

func init() {
	Register(NewGzipCodec())
}

// GzipCodec implements GZIP streams
type GzipCodec struct {
	BaseCodec
}

// NewGzipCodec creates a new GZIP codec
func NewGzipCodec() *GzipCodec {
	return &GzipCodec{
		BaseCodec: BaseCodec{
			CodecID:   ID_GZIP,
			CodecName: "GZIP",
			Exts:      []string{".gz", ".svgz"},
		},
	}
}

// NewReader decompresses a GZIP stream
func (c *GzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	return gr, nil
}

// NewWriter compresses into a GZIP stream
func (c *GzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	gw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("creating gzip writer: %w", err)
	}
	return gw, nil
}
