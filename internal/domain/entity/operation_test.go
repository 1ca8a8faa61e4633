package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func str(s string) *string { return &s }

func TestOperationRecord_Status(t *testing.T) {
	tests := []struct {
		name string
		rec  OperationRecord
		want OperationStatus
	}{
		{"empty", OperationRecord{}, StatusToDo},
		{"blank strings", OperationRecord{StartDttm: str(""), EndDttm: str("")}, StatusToDo},
		{"started", OperationRecord{StartDttm: str("2024-01-01T08:00")}, StatusInWork},
		{"finished", OperationRecord{StartDttm: str("2024-01-01T08:00"), EndDttm: str("2024-01-01T12:00")}, StatusCompleted},
		{"end only", OperationRecord{EndDttm: str("2024-01-01T12:00")}, StatusCompleted},
		{"comment only", OperationRecord{Comment: str("waiting for parts")}, StatusToDo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.Status())
		})
	}
}

func TestOperationRecord_IsEmpty(t *testing.T) {
	hours := 0.0
	assert.True(t, OperationRecord{}.IsEmpty())
	assert.True(t, OperationRecord{Comment: str("")}.IsEmpty())
	assert.False(t, OperationRecord{Comment: str("x")}.IsEmpty())
	assert.False(t, OperationRecord{UsedMnhrs: &hours}.IsEmpty())
}

func TestOperations_IsClosed(t *testing.T) {
	open := Operations{"10_COAT": {}, "PPK": {StartDttm: str("2024-01-01T08:00")}}
	closed := Operations{"10_COAT": {}, "PPK": {EndDttm: str("2024-01-01T08:00")}}

	assert.False(t, open.IsClosed())
	assert.True(t, closed.IsClosed())
	assert.False(t, Operations{}.IsClosed())
}

func TestOperations_CloneAndEqual(t *testing.T) {
	ops := Operations{"A": {Comment: str("x")}, "B": {}}
	c := ops.Clone()
	assert.True(t, ops.Equal(c))

	c["C"] = OperationRecord{}
	assert.False(t, ops.Equal(c))
	assert.Len(t, ops, 2)

	assert.Nil(t, Operations(nil).Clone())
	assert.Equal(t, []string{"A", "B"}, ops.Names())
}

func TestCells(t *testing.T) {
	g := Grid{
		{"a", "", "c"},
		{},
		{"x"},
	}
	cells := NewCells(g)

	v, ok := cells.Get(CellRef{Row: 1, Col: 3})
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = cells.Get(CellRef{Row: 1, Col: 2})
	assert.False(t, ok)

	var seen []string
	cells.Column(1, func(row int, value string) bool {
		seen = append(seen, value)
		return true
	})
	assert.Equal(t, []string{"a", "x"}, seen)

	seen = nil
	cells.Column(1, func(row int, value string) bool {
		seen = append(seen, value)
		return false
	})
	assert.Equal(t, []string{"a"}, seen)
}
