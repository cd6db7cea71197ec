package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/naming"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
)

const (
	ECode040501 = e.Code0405 + "01"
	ECode040502 = e.Code0405 + "02"
	ECode040503 = e.Code0405 + "03"
	ECode040504 = e.Code0405 + "04"
	ECode040505 = e.Code0405 + "05"
	ECode040506 = e.Code0405 + "06"
	ECode040507 = e.Code0405 + "07"
	ECode040508 = e.Code0405 + "08"
	ECode040509 = e.Code0405 + "09"
)

// TaskClient task definition calls
type TaskClient struct {
	c *Client
}

// GenCode returns a newly generated task code. A code that ends up unused is
// simply discarded
func (tc *TaskClient) GenCode(ctx context.Context, projectCode int64) (code int64, err error) {
	codes, err := call[[]int64](ctx, tc.c, http.MethodGet,
		projectPath(projectCode, "task-definition", "gen-task-codes"), url.Values{
			"genNum": {"1"},
		})
	if err != nil {
		return 0, e.W(err, ECode040501)
	}
	if len(codes) == 0 {
		return 0, e.NK(e.ErrRemote, ECode040502, e.MsgTaskCodeNotGenerated)
	}

	return codes[0], nil
}

// FindMainInfos returns the tasks of the process definition. The optional
// taskName is passed to the scheduler's search as is
func (tc *TaskClient) FindMainInfos(ctx context.Context, projectCode int64,
	processName, taskName string) (list []*model.TaskMainInfo, err error) {

	params := url.Values{
		"searchWorkflowName": {processName},
	}
	setIfNotEmpty(params, "searchTaskName", taskName)

	all, err := callPage[*model.TaskMainInfo](ctx, tc.c,
		projectPath(projectCode, "task-definition"), params)
	if err != nil {
		return nil, e.W(err, ECode040503, fmt.Sprintf("process: %s, task: %s",
			processName, taskName))
	}

	list = make([]*model.TaskMainInfo, 0, len(all))
	for _, item := range all {
		if item != nil && naming.Match(item.ProcessDefinitionName, processName) {
			list = append(list, item)
		}
	}

	return list, nil
}

// FindMainInfo returns the task with the name in the process definition with
// the name, nil if it does not exist
func (tc *TaskClient) FindMainInfo(ctx context.Context, projectCode int64,
	processName, taskName string) (tmi *model.TaskMainInfo, err error) {

	list, err := tc.FindMainInfos(ctx, projectCode, processName, taskName)
	if err != nil {
		return nil, e.W(err, ECode040504)
	}

	for _, item := range list {
		if naming.Match(item.TaskName, taskName) {
			return item, nil
		}
	}

	return nil, nil
}

// GetDefinition returns the task definition, nil if it does not exist
func (tc *TaskClient) GetDefinition(ctx context.Context, projectCode,
	code int64) (td *model.TaskDefinition, err error) {

	td, err = call[*model.TaskDefinition](ctx, tc.c, http.MethodGet,
		projectPath(projectCode, "task-definition", code), nil)
	if err != nil {
		return nil, e.W(err, ECode040505, fmt.Sprintf("code: %d", code))
	}

	return td, nil
}

// Create creates the task definition in the process definition, downstream of
// the upstream tasks
func (tc *TaskClient) Create(ctx context.Context, projectCode, processCode int64,
	upstreamCodes []int64, task *model.TaskRequest) (td *model.TaskDefinition, err error) {

	taskJSON, err := json.Marshal(task)
	if err != nil {
		return nil, e.W(err, ECode040506)
	}

	td, err = call[*model.TaskDefinition](ctx, tc.c, http.MethodPost,
		projectPath(projectCode, "task-definition", "save-single"), url.Values{
			"processDefinitionCode": {strconv.FormatInt(processCode, 10)},
			"upstreamCodes":         {joinCodes(upstreamCodes)},
			"taskDefinitionJsonObj": {string(taskJSON)},
		})
	if err != nil {
		return nil, e.W(err, ECode040507, fmt.Sprintf("name: %s", task.Name))
	}

	return td, nil
}

// Update replaces the task definition and its upstream tasks
func (tc *TaskClient) Update(ctx context.Context, projectCode, code int64,
	upstreamCodes []int64, task *model.TaskRequest) (err error) {

	taskJSON, err := json.Marshal(task)
	if err != nil {
		return e.W(err, ECode040508)
	}

	_, err = call[json.RawMessage](ctx, tc.c, http.MethodPut,
		projectPath(projectCode, "task-definition", code, "with-upstream"), url.Values{
			"upstreamCodes":         {joinCodes(upstreamCodes)},
			"taskDefinitionJsonObj": {string(taskJSON)},
		})
	if err != nil {
		return e.W(err, ECode040509, fmt.Sprintf("code: %d", code))
	}

	return nil
}

func joinCodes(codes []int64) string {
	list := make([]string, len(codes))
	for i, c := range codes {
		list[i] = strconv.FormatInt(c, 10)
	}

	return strings.Join(list, ",")
}
