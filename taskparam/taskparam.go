// Package taskparam builds the type specific parameters of task definitions.
package taskparam

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
)

const (
	ECode060101 = e.Code0601 + "01"
	ECode060102 = e.Code0601 + "02"
)

// Input what the builders take. Address/TaskID are used by platform job
// tasks, ProcessCode by sub workflow tasks
type Input struct {
	// Address the platform address the scheduler calls back to
	Address string
	// TaskID the platform task id
	TaskID int
	// ProcessCode the code of the process definition to run
	ProcessCode int64
}

// PlatformJobParams task params of a platform job task
type PlatformJobParams struct {
	Address      string        `json:"address"`
	TaskID       string        `json:"taskId"`
	LocalParams  []interface{} `json:"localParams"`
	ResourceList []interface{} `json:"resourceList"`
}

// SubWorkflowParams task params of a sub workflow task
type SubWorkflowParams struct {
	ProcessDefinitionCode int64 `json:"processDefinitionCode"`
}

// PlatformJob returns the params of a task that runs the platform task
func PlatformJob(address string, taskID int) (json.RawMessage, error) {
	return marshal(&PlatformJobParams{
		Address:      address,
		TaskID:       strconv.Itoa(taskID),
		LocalParams:  []interface{}{},
		ResourceList: []interface{}{},
	})
}

// SubWorkflow returns the params of a task that runs the process definition
func SubWorkflow(processCode int64) (json.RawMessage, error) {
	return marshal(&SubWorkflowParams{ProcessDefinitionCode: processCode})
}

// Build returns the params for the task type. An unknown or empty task type is
// a configuration error
func Build(taskType model.TaskType, in Input) (json.RawMessage, error) {
	switch taskType {
	case model.TaskTypePlatformJob:
		return PlatformJob(in.Address, in.TaskID)
	case model.TaskTypeSubWorkflow:
		return SubWorkflow(in.ProcessCode)
	default:
		return nil, e.NK(e.ErrConfiguration, ECode060101,
			fmt.Sprintf("%s: '%s'", e.MsgTaskTypeUnsupported, taskType))
	}
}

func marshal(v interface{}) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, e.W(err, ECode060102)
	}

	return b, nil
}
