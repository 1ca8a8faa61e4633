package entity

import (
	"encoding/json"
	"time"
)

// OperationLogEntry is one append-only audit record of a raw update payload
type OperationLogEntry struct {
	MessageDttm time.Time
	Message     json.RawMessage
}
