package entity

import (
	"time"
)

// JobCard represents a tracked work order sourced from one Drive document
type JobCard struct {
	DriveID      string     `json:"drive_id"`
	Name         string     `json:"name"`
	CreationDttm time.Time  `json:"creation_dttm"`
	PartNumber   string     `json:"part_number"`
	SerialNumber *string    `json:"serial_number"`
	ModifiedDttm time.Time  `json:"modified_dttm"`
	Operations   Operations `json:"operations"`
	Project      *string    `json:"project"`
	IsActive     bool       `json:"is_active"`
}

// ProjectName returns the project label or an empty string
func (j *JobCard) ProjectName() string {
	if j.Project == nil {
		return ""
	}
	return *j.Project
}

// SyncState is the stored view of a job card used for change detection
type SyncState struct {
	ModifiedDttm time.Time
	IsActive     bool
	Project      string
}

// DocumentEntry is a file or folder listed from the document source
type DocumentEntry struct {
	ID           string
	Name         string
	ModifiedTime time.Time
	Project      string
}

// FolderFilter narrows a folder listing
type FolderFilter struct {
	FoldersOnly  bool
	NameContains string
}
