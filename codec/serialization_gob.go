package codec

import (
	"bytes"
	"encoding/gob"
)

func init() {
	RegisterSerializer(SerializationTypeGob, &GobSerializer{})
}

type GobSerializer struct {
}

func (g *GobSerializer) Marshal(in interface{}) ([]byte, error) {
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(in); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (g *GobSerializer) Unmarshal(data []byte, target interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(target)
}
