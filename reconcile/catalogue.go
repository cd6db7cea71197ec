package reconcile

import (
	"context"
	"fmt"

	"github.com/Skyrin/go-dsbridge/catalogue"
	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/naming"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
)

const (
	ECode0A0501 = e.Code0A05 + "01"
	ECode0A0502 = e.Code0A05 + "02"
	ECode0A0503 = e.Code0A05 + "03"
	ECode0A0504 = e.Code0A05 + "04"
	ECode0A0505 = e.Code0A05 + "05"
	ECode0A0506 = e.Code0A05 + "06"
	ECode0A0507 = e.Code0A05 + "07"
	ECode0A0508 = e.Code0A05 + "08"
	ECode0A0509 = e.Code0A05 + "09"
)

// taskContext a task entry with its folder and derived names
type taskContext struct {
	entry  *catalogue.Entry
	parent *catalogue.Entry
	names  naming.Names
}

// folderContext a folder with its process definition
type folderContext struct {
	folder      *catalogue.Entry
	processName string
	process     *model.ProcessDefinition
}

// loadTask loads the task entry of the platform task and its folder. An entry
// without parent directory is rejected before its parent is looked up
func (s *Service) loadTask(ctx context.Context, platformTaskID int) (tc *taskContext, err error) {
	entry, err := s.deps.Catalogue.GetByTaskID(ctx, platformTaskID)
	if err != nil {
		return nil, e.W(err, ECode0A0501, fmt.Sprintf("taskId: %d", platformTaskID))
	}
	if entry == nil {
		return nil, e.NK(e.ErrNotFound, ECode0A0502, e.MsgCatalogueEntryNotExists)
	}

	var parent *catalogue.Entry
	if entry.ParentID != 0 {
		parent, err = s.deps.Catalogue.GetByID(ctx, entry.ParentID)
		if err != nil {
			return nil, e.W(err, ECode0A0503, fmt.Sprintf("parentId: %d", entry.ParentID))
		}
	}

	names, err := naming.Resolve(entry, parent)
	if err != nil {
		return nil, e.W(err, ECode0A0504, fmt.Sprintf("taskId: %d", platformTaskID))
	}

	return &taskContext{entry: entry, parent: parent, names: names}, nil
}

// loadFolder loads the folder and its process definition. The process
// definition must exist
func (s *Service) loadFolder(ctx context.Context, catalogueID int) (fc *folderContext, err error) {
	folder, err := s.deps.Catalogue.GetByID(ctx, catalogueID)
	if err != nil {
		return nil, e.W(err, ECode0A0505, fmt.Sprintf("catalogueId: %d", catalogueID))
	}
	if folder == nil {
		return nil, e.NK(e.ErrNotFound, ECode0A0506, e.MsgCatalogueEntryNotExists)
	}
	if !folder.IsFolder() {
		return nil, e.NK(e.ErrConfiguration, ECode0A0507, e.MsgCatalogueNotDirectory)
	}

	fc = &folderContext{
		folder:      folder,
		processName: naming.FolderProcessName(folder),
	}
	fc.process, err = s.deps.Processes.GetDefinitionByName(ctx, s.project.Code, fc.processName)
	if err != nil {
		return nil, e.W(err, ECode0A0508, fmt.Sprintf("process: %s", fc.processName))
	}
	if fc.process == nil {
		return nil, e.NK(e.ErrNotFound, ECode0A0509, e.MsgProcessNotExists)
	}

	return fc, nil
}
