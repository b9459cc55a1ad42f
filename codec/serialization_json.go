package codec

import "encoding/json"

func init() {
	RegisterSerializer(SerializationTypeJson, &JsonSerializer{})
}

// JsonSerializer is the default body encoding: wallet params and results are
// dynamic values, which is what JSON handles best.
type JsonSerializer struct {
}

func (s *JsonSerializer) Marshal(in interface{}) (out []byte, err error) {
	return json.Marshal(in)
}

func (s *JsonSerializer) Unmarshal(data []byte, target interface{}) error {
	return json.Unmarshal(data, target)
}
