package v1alpha1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// CodecName is the content subtype the service speaks: application/grpc+json
const CodecName = "json"

// Codec marshals service messages as JSON. Protobuf messages, such as the
// health and reflection types, go through protojson.
type Codec struct{}

func init() {
	encoding.RegisterCodec(Codec{})
}

// Name implements encoding.Codec
func (Codec) Name() string {
	return CodecName
}

// Marshal implements encoding.Codec
func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec: marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal implements encoding.Codec
func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec: unmarshal %T: %w", v, err)
	}
	return nil
}
