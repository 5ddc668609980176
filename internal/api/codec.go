// Package api defines the Connect RPC surface of the bill splitter: the wire
// messages, procedure names, and handler and client constructors for
// BillService, ReceiptService and AuthService.
//
// Messages are plain Go structs carried as JSON, so browsers can call the
// procedures with a simple POST and the Connect protocol's JSON content type.
package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// Codec serializes messages with encoding/json under the "json" codec name,
// replacing Connect's protobuf-only JSON codec.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
