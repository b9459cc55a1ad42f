package codec

import "io"

// Header precedes every message on the wire. Method carries the wallet
// method name, Seq matches a response to its call, Error is filled in by the
// server when the call failed.
type Header struct {
	Method string
	Seq    uint64
	Error  string
}

type Codec interface {
	io.Closer
	ReadHeader(h *Header) error
	ReadBody(body interface{}) error
	Write(h *Header, body interface{}) error
}

type CodecType int

const (
	// CodecTypeGob streams header and body as raw gob values. Callers that
	// ship params inside interface{} must gob.Register the concrete types.
	CodecTypeGob CodecType = 1
	// CodecTypeFrame length-prefixes each message and runs the body through
	// the configured serializer and compressor.
	CodecTypeFrame CodecType = 2
)

// NewCodecFunc builds a codec over conn. serializationType and compressType
// only matter to codecs that frame their own bodies; GobCodec ignores them.
type NewCodecFunc func(conn io.ReadWriteCloser, serializationType, compressType int) Codec

var CodecTypeMap = make(map[CodecType]NewCodecFunc)

func init() {
	CodecTypeMap[CodecTypeGob] = NewGobCodec
	CodecTypeMap[CodecTypeFrame] = NewFrameCodec
}
