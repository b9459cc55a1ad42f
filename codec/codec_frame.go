package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// FrameCodec frames each message as two length-prefixed blocks: the header
// followed by the body. The header is always JSON so both ends can read it
// before they know how the body is encoded; the body goes through the
// serializer and compressor the dial option selected.
type FrameCodec struct {
	conn              io.ReadWriteCloser
	r                 *bufio.Reader
	buf               *bufio.Writer
	serializationType int
	compressType      int
	body              []byte // raw body of the last frame, consumed by ReadBody
}

func NewFrameCodec(conn io.ReadWriteCloser, serializationType, compressType int) Codec {
	return &FrameCodec{
		conn:              conn,
		r:                 bufio.NewReader(conn),
		buf:               bufio.NewWriter(conn),
		serializationType: serializationType,
		compressType:      compressType,
	}
}

func (c *FrameCodec) Close() error {
	return c.conn.Close()
}

func (c *FrameCodec) readBlock() ([]byte, error) {
	var n uint32
	if err := binary.Read(c.r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	block := make([]byte, n)
	if _, err := io.ReadFull(c.r, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (c *FrameCodec) writeBlock(block []byte) error {
	if err := binary.Write(c.buf, binary.BigEndian, uint32(len(block))); err != nil {
		return err
	}
	_, err := c.buf.Write(block)
	return err
}

// ReadHeader consumes a whole frame; the body bytes are held back until the
// caller decides what to decode them into.
func (c *FrameCodec) ReadHeader(h *Header) error {
	block, err := c.readBlock()
	if err != nil {
		return err
	}
	if err := Unmarshal(SerializationTypeJson, block, h); err != nil {
		return fmt.Errorf("wrpc codec: bad frame header: %v", err)
	}
	c.body, err = c.readBlock()
	return err
}

func (c *FrameCodec) ReadBody(body interface{}) error {
	raw := c.body
	c.body = nil
	if body == nil {
		return nil
	}
	raw, err := Decompress(c.compressType, raw)
	if err != nil {
		return err
	}
	return Unmarshal(c.serializationType, raw, body)
}

func (c *FrameCodec) Write(h *Header, body interface{}) (err error) {
	defer func() {
		if flushErr := c.buf.Flush(); err == nil {
			err = flushErr
		}
	}()
	head, err := Marshal(SerializationTypeJson, h)
	if err != nil {
		return err
	}
	if err = c.writeBlock(head); err != nil {
		return err
	}
	raw, err := Marshal(c.serializationType, body)
	if err != nil {
		return err
	}
	raw, err = Compress(c.compressType, raw)
	if err != nil {
		return err
	}
	return c.writeBlock(raw)
}

var _ Codec = (*FrameCodec)(nil)
