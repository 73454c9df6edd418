package codec

import (
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

func init() {
	Register(NewBzip2Codec())
}

// Bzip2Codec implements BZIP2 streams
type Bzip2Codec struct {
	BaseCodec
}

// NewBzip2Codec creates a new BZIP2 codec
func NewBzip2Codec() *Bzip2Codec {
	return &Bzip2Codec{
		BaseCodec: BaseCodec{
			CodecID:   ID_BZIP2,
			CodecName: "BZIP2",
			Exts:      []string{".bz2"},
		},
	}
}

// NewReader decompresses a BZIP2 stream
func (c *Bzip2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	br, err := bzip2.NewReader(r, nil)
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 reader: %w", err)
	}
	return br, nil
}

// NewWriter compresses into a BZIP2 stream
func (c *Bzip2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	bw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 writer: %w", err)
	}
	return bw, nil
}
