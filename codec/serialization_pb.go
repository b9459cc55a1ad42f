package codec

import (
	"fmt"

	"github.com/golang/protobuf/proto"
)

func init() {
	RegisterSerializer(SerializationTypePB, &PBSerializer{})
}

// PBSerializer serves callers whose wallet types are proto-generated; both
// body values must satisfy proto.Message.
type PBSerializer struct {
}

func (p *PBSerializer) Marshal(in interface{}) (out []byte, err error) {
	msg, ok := in.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("wrpc codec: %T is not a protobuf message", in)
	}
	return proto.Marshal(msg)
}

func (p *PBSerializer) Unmarshal(data []byte, target interface{}) error {
	msg, ok := target.(proto.Message)
	if !ok {
		return fmt.Errorf("wrpc codec: %T is not a protobuf message", target)
	}
	return proto.Unmarshal(data, msg)
}
