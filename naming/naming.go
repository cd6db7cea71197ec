// Package naming derives the scheduler-side names of catalogue entries. A
// process definition is named after the folder holding the task entries and a
// task definition after its task entry, both suffixed with the catalogue id so
// that they are unique and can be looked up again.
package naming

import (
	"fmt"
	"strings"

	"github.com/Skyrin/go-dsbridge/catalogue"
	"github.com/Skyrin/go-dsbridge/e"
)

const (
	ECode050101 = e.Code0501 + "01"
	ECode050102 = e.Code0501 + "02"
	ECode050103 = e.Code0501 + "03"
)

// Names the derived names of a task entry
type Names struct {
	Process string
	Task    string
}

// ProcessName returns the process definition name of a folder
func ProcessName(parentName string, parentID int) string {
	return fmt.Sprintf("%s:%d", parentName, parentID)
}

// TaskName returns the task definition name of a task entry
func TaskName(entryName string, entryTaskID int) string {
	return fmt.Sprintf("%s:%d", entryName, entryTaskID)
}

// Resolve returns the process and task names of the entry. The entry must
// have a parent directory, it is checked before the parent
func Resolve(entry, parent *catalogue.Entry) (n Names, err error) {
	if entry == nil {
		return n, e.NK(e.ErrNotFound, ECode050101, e.MsgCatalogueEntryNotExists)
	}
	if entry.ParentID == 0 {
		return n, e.NK(e.ErrConfiguration, ECode050102, e.MsgCatalogueMissingParent)
	}
	if parent == nil {
		return n, e.NK(e.ErrNotFound, ECode050103, e.MsgCatalogueParentNotExists)
	}

	return Names{
		Process: ProcessName(parent.Name, parent.ID),
		Task:    TaskName(entry.Name, entry.TaskID),
	}, nil
}

// FolderProcessName returns the process name of a folder, the folder itself
// being the process
func FolderProcessName(folder *catalogue.Entry) string {
	return ProcessName(folder.Name, folder.ID)
}

// UpstreamExclusionKey the task name the entry is registered under, used to
// leave the entry itself out of its upstream candidates
func UpstreamExclusionKey(entry *catalogue.Entry) string {
	return TaskName(entry.Name, entry.TaskID)
}

// Match returns true if both names are equal, ignoring case. The scheduler's
// searches are fuzzy, every candidate has to be checked with this
func Match(a, b string) bool {
	return strings.EqualFold(a, b)
}
