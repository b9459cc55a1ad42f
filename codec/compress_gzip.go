package codec

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

func init() {
	RegisterCompressor(CompressTypeGzip, &GzipCompressor{})
}

type GzipCompressor struct {
}

func (g *GzipCompressor) Compress(in []byte) (out []byte, err error) {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	if _, err := w.Write(in); err != nil {
		return nil, fmt.Errorf("wrpc codec: gzip compress: %v", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("wrpc codec: gzip compress: %v", err)
	}
	return b.Bytes(), nil
}

func (g *GzipCompressor) Decompress(in []byte) (out []byte, err error) {
	r, err := gzip.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("wrpc codec: gzip decompress: %v", err)
	}
	defer r.Close()
	return io.ReadAll(r)
}
