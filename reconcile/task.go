package reconcile

import (
	"context"
	"fmt"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/event"
	"github.com/Skyrin/go-dsbridge/naming"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
	"github.com/Skyrin/go-dsbridge/taskparam"
	"github.com/rs/zerolog/log"
)

const (
	ECode0A0201 = e.Code0A02 + "01"
	ECode0A0202 = e.Code0A02 + "02"
	ECode0A0203 = e.Code0A02 + "03"
	ECode0A0204 = e.Code0A02 + "04"
	ECode0A0205 = e.Code0A02 + "05"
	ECode0A0206 = e.Code0A02 + "06"
	ECode0A0207 = e.Code0A02 + "07"
	ECode0A0208 = e.Code0A02 + "08"
	ECode0A0209 = e.Code0A02 + "09"
	ECode0A020A = e.Code0A02 + "0A"
	ECode0A020B = e.Code0A02 + "0B"
	ECode0A020C = e.Code0A02 + "0C"
	ECode0A020D = e.Code0A02 + "0D"
	ECode0A020E = e.Code0A02 + "0E"
	ECode0A020F = e.Code0A02 + "0F"
	ECode0A020G = e.Code0A02 + "0G"
	ECode0A020H = e.Code0A02 + "0H"
	ECode0A020I = e.Code0A02 + "0I"
	ECode0A020J = e.Code0A02 + "0J"
	ECode0A020K = e.Code0A02 + "0K"
	ECode0A020L = e.Code0A02 + "0L"
	ECode0A020M = e.Code0A02 + "0M"
	ECode0A020N = e.Code0A02 + "0N"
	ECode0A020O = e.Code0A02 + "0O"
	ECode0A020P = e.Code0A02 + "0P"
)

// Outcome of CreateTaskDefinition
type Outcome string

const (
	// OutcomeProcessCreated the folder had no process definition yet, it was
	// created holding the task
	OutcomeProcessCreated Outcome = "PROCESS_CREATED"
	// OutcomeTaskCreated the task was added to the folder's process definition
	OutcomeTaskCreated Outcome = "TASK_CREATED"
)

// CreateTaskRequest creates the task definition of a platform task
type CreateTaskRequest struct {
	// PlatformTaskID the platform task the task definition runs
	PlatformTaskID int
	// TaskType the kind of task definition to create
	TaskType model.TaskType
	// SubProcessCode the process definition a sub workflow task runs
	SubProcessCode int64
	// UpstreamCodes the tasks the new task runs after, only used when the
	// process definition already exists
	UpstreamCodes []int64
	// Task the caller supplied task settings. Code, Name, TaskType and
	// TaskParams are overwritten
	Task model.TaskRequest
}

// CreateResult what CreateTaskDefinition did
type CreateResult struct {
	Outcome     Outcome `json:"outcome"`
	ProcessCode int64   `json:"processCode"`
	ProcessName string  `json:"processName"`
	TaskCode    int64   `json:"taskCode"`
	TaskName    string  `json:"taskName"`
}

// UpdateTaskRequest updates an existing task definition
type UpdateTaskRequest struct {
	ProcessCode   int64
	TaskCode      int64
	UpstreamCodes []int64
	// Task the caller supplied task settings. Code, Name, TaskType and
	// TaskParams are kept from the existing task definition
	Task model.TaskRequest
}

// GetTaskDefinition returns the task definition of the platform task, nil if
// it has not been created yet
func (s *Service) GetTaskDefinition(ctx context.Context,
	platformTaskID int) (tdd *model.TaskDefinitionDetail, err error) {

	tc, err := s.loadTask(ctx, platformTaskID)
	if err != nil {
		return nil, e.W(err, ECode0A0201)
	}

	tmi, err := s.deps.Tasks.FindMainInfo(ctx, s.project.Code, tc.names.Process, tc.names.Task)
	if err != nil {
		return nil, e.W(err, ECode0A0202)
	}
	if tmi == nil {
		return nil, nil
	}

	td, err := s.deps.Tasks.GetDefinition(ctx, s.project.Code, tmi.TaskCode)
	if err != nil {
		return nil, e.W(err, ECode0A0203)
	}
	if td == nil {
		return nil, e.NK(e.ErrNotFound, ECode0A0204, e.MsgTaskNotSaved)
	}

	return &model.TaskDefinitionDetail{
		TaskDefinition:           *td,
		ProcessDefinitionCode:    tmi.ProcessDefinitionCode,
		ProcessDefinitionName:    tmi.ProcessDefinitionName,
		ProcessDefinitionVersion: tmi.ProcessDefinitionVersion,
		UpstreamTaskMap:          tmi.UpstreamTaskMap,
	}, nil
}

// ListUpstreamTasks returns the tasks of the platform task's process
// definition that can be its upstream tasks, i.e. all but itself
func (s *Service) ListUpstreamTasks(ctx context.Context,
	platformTaskID int) (list []*model.TaskMainInfo, err error) {

	tc, err := s.loadTask(ctx, platformTaskID)
	if err != nil {
		return nil, e.W(err, ECode0A0205)
	}

	all, err := s.deps.Tasks.FindMainInfos(ctx, s.project.Code, tc.names.Process, "")
	if err != nil {
		return nil, e.W(err, ECode0A0206)
	}

	self := naming.UpstreamExclusionKey(tc.entry)
	list = make([]*model.TaskMainInfo, 0, len(all))
	for _, tmi := range all {
		if !naming.Match(tmi.TaskName, self) {
			list = append(list, tmi)
		}
	}

	return list, nil
}

// CreateTaskDefinition creates the task definition of the platform task. If
// the folder has no process definition yet, it is created holding the task.
// Otherwise the task is added to it, unless the process definition is online
// or already holds the task
func (s *Service) CreateTaskDefinition(ctx context.Context,
	req CreateTaskRequest) (cr *CreateResult, err error) {

	params, err := taskparam.Build(req.TaskType, taskparam.Input{
		Address:     s.cfg.PlatformURL,
		TaskID:      req.PlatformTaskID,
		ProcessCode: req.SubProcessCode,
	})
	if err != nil {
		return nil, e.W(err, ECode0A0207)
	}
	if err := s.validate.Struct(&req.Task); err != nil {
		return nil, e.WK(err, e.ErrConfiguration, ECode0A0208, err.Error())
	}

	tc, err := s.loadTask(ctx, req.PlatformTaskID)
	if err != nil {
		return nil, e.W(err, ECode0A0209)
	}

	task := req.Task
	task.Name = tc.names.Task
	task.TaskType = req.TaskType
	task.TaskParams = params

	pd, err := s.deps.Processes.GetDefinitionByName(ctx, s.project.Code, tc.names.Process)
	if err != nil {
		return nil, e.W(err, ECode0A020A)
	}

	if pd == nil {
		return s.createProcess(ctx, tc, &task)
	}

	if pd.IsOnline() {
		return nil, e.NK(e.ErrConflict, ECode0A020B, e.MsgProcessOnline)
	}

	tmi, err := s.deps.Tasks.FindMainInfo(ctx, s.project.Code, tc.names.Process, tc.names.Task)
	if err != nil {
		return nil, e.W(err, ECode0A020C)
	}
	if tmi != nil {
		return nil, e.NK(e.ErrConflict, ECode0A020D, e.MsgTaskExists)
	}

	task.Code, err = s.deps.Tasks.GenCode(ctx, s.project.Code)
	if err != nil {
		return nil, e.W(err, ECode0A020E)
	}

	if _, err := s.deps.Tasks.Create(ctx, s.project.Code, pd.Code, req.UpstreamCodes, &task); err != nil {
		return nil, e.W(err, ECode0A020F, fmt.Sprintf("process: %s, task: %s",
			tc.names.Process, tc.names.Task))
	}
	log.Info().Msgf("created task %s (%d) in process %s (%d)",
		task.Name, task.Code, pd.Name, pd.Code)

	ev := s.newEvent(event.TypeTaskCreated, pd.Code, pd.Name)
	ev.TaskCode = task.Code
	ev.TaskName = task.Name
	ev.CatalogueID = tc.entry.ID
	s.publish(ctx, ev)

	return &CreateResult{
		Outcome:     OutcomeTaskCreated,
		ProcessCode: pd.Code,
		ProcessName: pd.Name,
		TaskCode:    task.Code,
		TaskName:    task.Name,
	}, nil
}

// createProcess creates the folder's process definition with the task as its
// only task
func (s *Service) createProcess(ctx context.Context, tc *taskContext,
	task *model.TaskRequest) (cr *CreateResult, err error) {

	task.Code, err = s.deps.Tasks.GenCode(ctx, s.project.Code)
	if err != nil {
		return nil, e.W(err, ECode0A020G)
	}

	pd, err := s.deps.Processes.Create(ctx, s.project.Code, tc.names.Process, "", task)
	if err != nil {
		return nil, e.W(err, ECode0A020H, fmt.Sprintf("process: %s", tc.names.Process))
	}

	cr = &CreateResult{
		Outcome:     OutcomeProcessCreated,
		ProcessName: tc.names.Process,
		TaskCode:    task.Code,
		TaskName:    task.Name,
	}
	if pd != nil {
		cr.ProcessCode = pd.Code
	}
	log.Info().Msgf("created process %s (%d) holding task %s (%d)",
		cr.ProcessName, cr.ProcessCode, task.Name, task.Code)

	ev := s.newEvent(event.TypeProcessCreated, cr.ProcessCode, cr.ProcessName)
	ev.TaskCode = task.Code
	ev.TaskName = task.Name
	ev.CatalogueID = tc.parent.ID
	s.publish(ctx, ev)

	return cr, nil
}

// UpdateTaskDefinition updates a platform job task definition. Its name, type
// and params are kept, only the caller supplied settings and the upstream
// tasks change. The process definition must not be online
func (s *Service) UpdateTaskDefinition(ctx context.Context, req UpdateTaskRequest) (err error) {
	if err := s.validate.Struct(&req.Task); err != nil {
		return e.WK(err, e.ErrConfiguration, ECode0A020I, err.Error())
	}

	td, err := s.deps.Tasks.GetDefinition(ctx, s.project.Code, req.TaskCode)
	if err != nil {
		return e.W(err, ECode0A020J, fmt.Sprintf("taskCode: %d", req.TaskCode))
	}
	if td == nil {
		return e.NK(e.ErrNotFound, ECode0A020K, e.MsgTaskNotExists)
	}
	if td.TaskType != model.TaskTypePlatformJob {
		return e.NK(e.ErrConflict, ECode0A020L, e.MsgTaskNotPlatformJob)
	}

	dag, err := s.deps.Processes.GetDagByCode(ctx, s.project.Code, req.ProcessCode)
	if err != nil {
		return e.W(err, ECode0A020M, fmt.Sprintf("processCode: %d", req.ProcessCode))
	}
	if dag == nil {
		return e.NK(e.ErrNotFound, ECode0A020N, e.MsgProcessNotExists)
	}
	if dag.ProcessDefinition.IsOnline() {
		return e.NK(e.ErrConflict, ECode0A020O, e.MsgProcessOnline)
	}

	task := req.Task
	task.Code = td.Code
	task.Name = td.Name
	task.TaskType = td.TaskType
	task.TaskParams = td.TaskParams

	if err := s.deps.Tasks.Update(ctx, s.project.Code, td.Code, req.UpstreamCodes, &task); err != nil {
		return e.W(err, ECode0A020P, fmt.Sprintf("taskCode: %d", td.Code))
	}
	log.Info().Msgf("updated task %s (%d) in process %s (%d)",
		task.Name, task.Code, dag.ProcessDefinition.Name, dag.ProcessDefinition.Code)

	ev := s.newEvent(event.TypeTaskUpdated, dag.ProcessDefinition.Code, dag.ProcessDefinition.Name)
	ev.TaskCode = task.Code
	ev.TaskName = task.Name
	s.publish(ctx, ev)

	return nil
}
