package codec

import "fmt"

// Compressor shrinks body bytes on the wire. Like serializers, each
// implementation registers itself keyed by compress type.
type Compressor interface {
	Compress(in []byte) (out []byte, err error)
	Decompress(in []byte) (out []byte, err error)
}

const (
	CompressTypeNoop   = 0
	CompressTypeGzip   = 1
	CompressTypeSnappy = 2
	CompressTypeZlib   = 3
)

var compressors = make(map[int]Compressor)

func RegisterCompressor(compressType int, c Compressor) {
	compressors[compressType] = c
}

func GetCompressor(compressType int) Compressor {
	return compressors[compressType]
}

func Compress(compressType int, in []byte) (out []byte, err error) {
	if len(in) == 0 {
		return nil, nil
	}
	compressor := GetCompressor(compressType)
	if compressor == nil {
		return nil, fmt.Errorf("wrpc codec: compressor %v not registered", compressType)
	}
	return compressor.Compress(in)
}

func Decompress(compressType int, in []byte) (out []byte, err error) {
	if len(in) == 0 {
		return nil, nil
	}
	compressor := GetCompressor(compressType)
	if compressor == nil {
		return nil, fmt.Errorf("wrpc codec: compressor %v not registered", compressType)
	}
	return compressor.Decompress(in)
}
