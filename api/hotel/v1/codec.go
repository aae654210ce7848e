// Package hotelv1 defines the hotel.v1.HotelService wire contract.
// Messages travel as JSON through a gRPC codec registered under the "json" content subtype.
package hotelv1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype carrying HotelService messages.
const CodecName = "json"

// Codec marshals HotelService messages as JSON.
type Codec struct{}

func init() {
	encoding.RegisterCodec(Codec{})
}

// Marshal encodes a message.
func (Codec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

// Unmarshal decodes a message.
func (Codec) Unmarshal(data []byte, message any) error {
	return json.Unmarshal(data, message)
}

// Name returns the content subtype.
func (Codec) Name() string {
	return CodecName
}
