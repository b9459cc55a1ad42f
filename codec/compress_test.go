package codec

import (
	"bytes"
	"testing"
)

func TestCompressors_RoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("wallet rpc wallet rpc wallet rpc "), 20)
	tests := []struct {
		name         string
		compressType int
		shrinks      bool
	}{
		{name: "noop", compressType: CompressTypeNoop, shrinks: false},
		{name: "gzip", compressType: CompressTypeGzip, shrinks: true},
		{name: "snappy", compressType: CompressTypeSnappy, shrinks: true},
		{name: "zlib", compressType: CompressTypeZlib, shrinks: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Compress(tt.compressType, data)
			if err != nil {
				t.Fatalf("Compress err: %v", err)
			}
			if tt.shrinks && len(out) >= len(data) {
				t.Fatalf("compressed %d bytes to %d, expected a reduction", len(data), len(out))
			}
			back, err := Decompress(tt.compressType, out)
			if err != nil {
				t.Fatalf("Decompress err: %v", err)
			}
			if !bytes.Equal(back, data) {
				t.Fatal("round trip changed the data")
			}
		})
	}
}

func TestCompress_Empty(t *testing.T) {
	out, err := Compress(CompressTypeGzip, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Fatalf("Compress(nil) = %v", out)
	}
}

func TestCompress_Unregistered(t *testing.T) {
	if _, err := Compress(99, []byte("x")); err == nil {
		t.Fatal("Compress with unknown compress type should fail")
	}
}
