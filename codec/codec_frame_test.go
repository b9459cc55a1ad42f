package codec

import (
	"bytes"
	"reflect"
	"testing"
)

type rwc struct {
	bytes.Buffer
}

func (*rwc) Close() error {
	return nil
}

func TestFrameCodec_RoundTrip(t *testing.T) {
	tests := []struct {
		name         string
		compressType int
	}{
		{name: "noop", compressType: CompressTypeNoop},
		{name: "snappy", compressType: CompressTypeSnappy},
		{name: "gzip", compressType: CompressTypeGzip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFrameCodec(&rwc{}, SerializationTypeJson, tt.compressType)
			h := &Header{Method: "getbalance", Seq: 7}
			body := []interface{}{"savings", 1.5}
			if err := c.Write(h, body); err != nil {
				t.Fatalf("Write err: %v", err)
			}
			var gotH Header
			if err := c.ReadHeader(&gotH); err != nil {
				t.Fatalf("ReadHeader err: %v", err)
			}
			if gotH != *h {
				t.Fatalf("header = %+v, want %+v", gotH, *h)
			}
			var gotBody []interface{}
			if err := c.ReadBody(&gotBody); err != nil {
				t.Fatalf("ReadBody err: %v", err)
			}
			if !reflect.DeepEqual(gotBody, body) {
				t.Fatalf("body = %v, want %v", gotBody, body)
			}
		})
	}
}

func TestFrameCodec_ErrorHeader(t *testing.T) {
	c := NewFrameCodec(&rwc{}, SerializationTypeJson, CompressTypeNoop)
	h := &Header{Method: "send", Seq: 3, Error: "wallet is locked"}
	if err := c.Write(h, struct{}{}); err != nil {
		t.Fatalf("Write err: %v", err)
	}
	var gotH Header
	if err := c.ReadHeader(&gotH); err != nil {
		t.Fatalf("ReadHeader err: %v", err)
	}
	if gotH.Error != "wallet is locked" {
		t.Fatalf("header error = %q", gotH.Error)
	}
	// error responses carry no usable body
	if err := c.ReadBody(nil); err != nil {
		t.Fatalf("ReadBody(nil) err: %v", err)
	}
}

func TestFrameCodec_ManyMessages(t *testing.T) {
	c := NewFrameCodec(&rwc{}, SerializationTypeJson, CompressTypeZlib)
	for seq := uint64(0); seq < 5; seq++ {
		if err := c.Write(&Header{Method: "getinfo", Seq: seq}, []interface{}{seq}); err != nil {
			t.Fatalf("Write %d err: %v", seq, err)
		}
	}
	for seq := uint64(0); seq < 5; seq++ {
		var h Header
		if err := c.ReadHeader(&h); err != nil {
			t.Fatalf("ReadHeader %d err: %v", seq, err)
		}
		if h.Seq != seq {
			t.Fatalf("Seq = %d, want %d", h.Seq, seq)
		}
		var body []interface{}
		if err := c.ReadBody(&body); err != nil {
			t.Fatalf("ReadBody %d err: %v", seq, err)
		}
	}
}
