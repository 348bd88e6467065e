package models

import "encoding/json"

// Push message types carried in the frame's "type" discriminant.
const (
	MsgInit      = "init"
	MsgStats     = "stats"
	MsgAlert     = "alert"
	MsgHeartbeat = "heartbeat"
)

// Envelope is the outer shape of every push frame. Only the fields
// relevant to the frame's type are populated; Data stays raw until the
// dispatcher knows what to decode it into.
type Envelope struct {
	Type          string          `json:"type"`
	Key           string          `json:"key,omitempty"`
	Watching      []WatchEntry    `json:"watching,omitempty"`
	ContractCount int             `json:"contract_count,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
}
