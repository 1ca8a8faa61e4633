package entity

import (
	"sort"
)

// SentinelOperation closes the whole job card once completed
const SentinelOperation = "PPK"

// OperationStatus is the lifecycle state of one operation
type OperationStatus string

const (
	StatusToDo      OperationStatus = "to_do"
	StatusInWork    OperationStatus = "in_work"
	StatusCompleted OperationStatus = "completed"
)

// OperationRecord holds the progress captured for one operation
type OperationRecord struct {
	StartDttm *string  `json:"start_dttm"`
	EndDttm   *string  `json:"end_dttm"`
	Comment   *string  `json:"comment"`
	User      *string  `json:"user"`
	UsedMnhrs *float64 `json:"used_mnhrs"`
}

// IsEmpty reports whether no field carries a value
func (r OperationRecord) IsEmpty() bool {
	return !hasText(r.StartDttm) &&
		!hasText(r.EndDttm) &&
		!hasText(r.Comment) &&
		!hasText(r.User) &&
		r.UsedMnhrs == nil
}

// Status classifies the record. An end timestamp wins over a start timestamp.
func (r OperationRecord) Status() OperationStatus {
	switch {
	case hasText(r.EndDttm):
		return StatusCompleted
	case hasText(r.StartDttm):
		return StatusInWork
	default:
		return StatusToDo
	}
}

// Equal compares field values, not pointer identity
func (r OperationRecord) Equal(o OperationRecord) bool {
	return equalString(r.StartDttm, o.StartDttm) &&
		equalString(r.EndDttm, o.EndDttm) &&
		equalString(r.Comment, o.Comment) &&
		equalString(r.User, o.User) &&
		equalFloat(r.UsedMnhrs, o.UsedMnhrs)
}

// Operations maps operation name to its record
type Operations map[string]OperationRecord

// Names returns the operation names sorted lexicographically
func (o Operations) Names() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports structural equality of two operation maps
func (o Operations) Equal(other Operations) bool {
	if len(o) != len(other) {
		return false
	}
	for name, rec := range o {
		otherRec, ok := other[name]
		if !ok || !rec.Equal(otherRec) {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no map with the receiver
func (o Operations) Clone() Operations {
	if o == nil {
		return nil
	}
	out := make(Operations, len(o))
	for name, rec := range o {
		out[name] = rec
	}
	return out
}

// IsClosed reports whether the sentinel operation is completed
func (o Operations) IsClosed() bool {
	rec, ok := o[SentinelOperation]
	return ok && rec.Status() == StatusCompleted
}

func hasText(s *string) bool {
	return s != nil && *s != ""
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
