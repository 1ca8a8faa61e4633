package google

import (
	"testing"

	"workshop-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestListQuery(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		filter entity.FolderFilter
		want   string
	}{
		{
			name:   "all children",
			parent: "root",
			want:   "'root' in parents and trashed = false",
		},
		{
			name:   "folders only",
			parent: "root",
			filter: entity.FolderFilter{FoldersOnly: true},
			want:   "'root' in parents and trashed = false and mimeType = 'application/vnd.google-apps.folder'",
		},
		{
			name:   "name filter is escaped",
			parent: "p1",
			filter: entity.FolderFilter{FoldersOnly: true, NameContains: "in_work's"},
			want:   `'p1' in parents and trashed = false and mimeType = 'application/vnd.google-apps.folder' and name contains 'in_work\'s'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListQuery(tt.parent, tt.filter))
		})
	}
}

func TestToGrid(t *testing.T) {
	grid := toGrid([][]interface{}{
		{"Name", nil, 12.5},
		{},
		{true},
	})

	assert.Equal(t, entity.Grid{
		{"Name", "", "12.5"},
		{},
		{"true"},
	}, grid)
}
