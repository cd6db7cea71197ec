// Package catalogue reads the platform's job catalogue. The catalogue is a
// tree of folders and task entries, owned by the platform, this package only
// looks entries up.
package catalogue

import "context"

// DefaultTable the platform's catalogue table
const DefaultTable = "dlink_catalogue"

// Entry a node of the catalogue tree. A folder has an empty Type, a task
// entry has a non-empty Type and a TaskID
type Entry struct {
	ID       int    `json:"id"`
	TaskID   int    `json:"taskId"`
	Name     string `json:"name"`
	ParentID int    `json:"parentId"`
	Type     string `json:"type"`
}

// IsFolder returns true if the entry is a folder
func (ce *Entry) IsFolder() bool {
	return ce.Type == ""
}

// Store looks catalogue entries up. A missing entry is returned as nil, nil
type Store interface {
	GetByID(ctx context.Context, id int) (*Entry, error)
	GetByTaskID(ctx context.Context, taskID int) (*Entry, error)
}
