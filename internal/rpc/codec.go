// Package rpc exposes the meal plan service over Connect RPC.
//
// Messages are plain Go structs carried by a JSON codec, so the service is
// callable with any Connect client speaking application/json (or with curl)
// without generated protobuf code.
package rpc

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// jsonCodec replaces connect's protobuf-JSON codec for non-proto messages.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

// WithJSON is the codec option handlers and clients of this package must use.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
