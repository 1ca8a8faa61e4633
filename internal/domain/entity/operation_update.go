package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FieldUpdate carries one optional field of an update payload.
// Set with a nil Value clears the stored field.
type FieldUpdate[T any] struct {
	Set   bool
	Value *T
}

// OperationUpdate is a direct user edit of one operation of one job card.
// Only fields present in the payload are written.
type OperationUpdate struct {
	JobCardCode string
	Operation   string
	StartDttm   FieldUpdate[string]
	EndDttm     FieldUpdate[string]
	User        FieldUpdate[string]
	Comment     FieldUpdate[string]
	UsedMnhrs   FieldUpdate[float64]

	// Raw is the payload exactly as received, kept for the audit log
	Raw json.RawMessage
}

// ParseOperationUpdate decodes the wire payload sent by the sheet add-on
func ParseOperationUpdate(raw []byte) (*OperationUpdate, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("invalid update payload: %w", err)
	}

	u := &OperationUpdate{Raw: json.RawMessage(bytes.Clone(raw))}

	var err error
	if u.JobCardCode, err = decodeAddress(fields, "jobCardCode"); err != nil {
		return nil, err
	}
	if u.Operation, err = decodeAddress(fields, "operation"); err != nil {
		return nil, err
	}
	if u.StartDttm, err = decodeField[string](fields, "startDateTime"); err != nil {
		return nil, err
	}
	if u.EndDttm, err = decodeField[string](fields, "endDateTime"); err != nil {
		return nil, err
	}
	if u.User, err = decodeField[string](fields, "email"); err != nil {
		return nil, err
	}
	if u.Comment, err = decodeField[string](fields, "comment"); err != nil {
		return nil, err
	}
	if u.UsedMnhrs, err = decodeField[float64](fields, "used_mnhrs"); err != nil {
		return nil, err
	}
	return u, nil
}

// MissingAddress names the first absent addressing field, or "" when both are present
func (u *OperationUpdate) MissingAddress() string {
	switch {
	case u.JobCardCode == "":
		return "jobCardCode"
	case u.Operation == "":
		return "operation"
	default:
		return ""
	}
}

// HasFields reports whether the payload writes at least one operation field
func (u *OperationUpdate) HasFields() bool {
	return len(u.Fields()) > 0
}

// Fields returns the present fields keyed by their stored names
func (u *OperationUpdate) Fields() map[string]any {
	out := make(map[string]any)
	putField(out, "start_dttm", u.StartDttm)
	putField(out, "end_dttm", u.EndDttm)
	putField(out, "user", u.User)
	putField(out, "comment", u.Comment)
	putField(out, "used_mnhrs", u.UsedMnhrs)
	return out
}

// ApplyTo merges the present fields into rec, leaving absent fields untouched
func (u *OperationUpdate) ApplyTo(rec OperationRecord) OperationRecord {
	if u.StartDttm.Set {
		rec.StartDttm = u.StartDttm.Value
	}
	if u.EndDttm.Set {
		rec.EndDttm = u.EndDttm.Value
	}
	if u.User.Set {
		rec.User = u.User.Value
	}
	if u.Comment.Set {
		rec.Comment = u.Comment.Value
	}
	if u.UsedMnhrs.Set {
		rec.UsedMnhrs = u.UsedMnhrs.Value
	}
	return rec
}

func putField[T any](out map[string]any, key string, f FieldUpdate[T]) {
	if !f.Set {
		return
	}
	if f.Value == nil {
		out[key] = nil
		return
	}
	out[key] = *f.Value
}

func decodeAddress(fields map[string]json.RawMessage, key string) (string, error) {
	f, err := decodeField[string](fields, key)
	if err != nil || f.Value == nil {
		return "", err
	}
	return *f.Value, nil
}

func decodeField[T any](fields map[string]json.RawMessage, key string) (FieldUpdate[T], error) {
	raw, ok := fields[key]
	if !ok {
		return FieldUpdate[T]{}, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return FieldUpdate[T]{Set: true}, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return FieldUpdate[T]{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return FieldUpdate[T]{Set: true, Value: &v}, nil
}
