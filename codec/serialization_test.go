package codec

import (
	"reflect"
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

type Account struct {
	Label   string  `json:"label" xml:"label"`
	Balance float64 `json:"balance" xml:"balance"`
}

func TestXmlSerializer_Marshal(t *testing.T) {
	type args struct {
		in interface{}
	}
	tests := []struct {
		name    string
		args    args
		wantOut []byte
		wantErr bool
	}{
		{
			name: "account",
			args: args{
				in: &Account{Label: "savings", Balance: 1.5},
			},
			wantOut: []byte(`<Account><label>savings</label><balance>1.5</balance></Account>`),
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := &XmlSerializer{}
			gotOut, err := x.Marshal(tt.args.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Marshal() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(gotOut, tt.wantOut) {
				t.Errorf("Marshal() gotOut = %s, want %s", gotOut, tt.wantOut)
			}
		})
	}
}

func TestSerializers_RoundTrip(t *testing.T) {
	in := &Account{Label: "savings", Balance: 1.5}
	for _, serializationType := range []int{SerializationTypeJson, SerializationTypeXml, SerializationTypeGob} {
		data, err := Marshal(serializationType, in)
		if err != nil {
			t.Fatalf("Marshal(%d) err: %v", serializationType, err)
		}
		out := &Account{}
		if err := Unmarshal(serializationType, data, out); err != nil {
			t.Fatalf("Unmarshal(%d) err: %v", serializationType, err)
		}
		if *out != *in {
			t.Fatalf("round trip via %d = %+v, want %+v", serializationType, out, in)
		}
	}
}

func TestSerialization_Unregistered(t *testing.T) {
	if _, err := Marshal(99, &Account{}); err == nil {
		t.Fatal("Marshal with unknown serialization type should fail")
	}
}

func TestPBSerializer_RoundTrip(t *testing.T) {
	in := wrapperspb.String("wallet-9f2c")
	data, err := Marshal(SerializationTypePB, in)
	if err != nil {
		t.Fatalf("Marshal err: %v", err)
	}
	out := &wrapperspb.StringValue{}
	if err := Unmarshal(SerializationTypePB, data, out); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if out.GetValue() != in.GetValue() {
		t.Fatalf("round trip = %q, want %q", out.GetValue(), in.GetValue())
	}
}

func TestPBSerializer_NotAMessage(t *testing.T) {
	p := &PBSerializer{}
	if _, err := p.Marshal(&Account{}); err == nil {
		t.Fatal("Marshal of a non-proto value should fail")
	}
	if err := p.Unmarshal([]byte{1}, &Account{}); err == nil {
		t.Fatal("Unmarshal into a non-proto value should fail")
	}
}
