// internal/persist/codec.go
package persist

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns snapshots into bytes and back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Ext is the file extension, including the dot.
	Ext() string
}

// JSONCodec writes human-readable saves.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Ext() string { return ".json" }

// MsgpackCodec writes compact binary saves.
type MsgpackCodec struct{}

func (MsgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (MsgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (MsgpackCodec) Ext() string { return ".msgpack" }

// CodecByName resolves "json" or "msgpack"; anything else gets JSON.
func CodecByName(name string) Codec {
	if name == "msgpack" {
		return MsgpackCodec{}
	}
	return JSONCodec{}
}
