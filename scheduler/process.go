package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/naming"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
)

const (
	ECode040401 = e.Code0404 + "01"
	ECode040402 = e.Code0404 + "02"
	ECode040403 = e.Code0404 + "03"
	ECode040404 = e.Code0404 + "04"
	ECode040405 = e.Code0404 + "05"
	ECode040406 = e.Code0404 + "06"
	ECode040407 = e.Code0404 + "07"
	ECode040408 = e.Code0404 + "08"
	ECode040409 = e.Code0404 + "09"
)

const (
	// DefaultTenantCode tenant new process definitions run as
	DefaultTenantCode = "default"
	// DefaultExecutionType of new process definitions
	DefaultExecutionType = "PARALLEL"
	// seed task position in the DAG editor
	seedX = 100
	seedY = 100
)

// ProcessClient process definition and process instance calls
type ProcessClient struct {
	c *Client
}

// GetDefinitionByName returns the process definition with the name, nil if it
// does not exist
func (pc *ProcessClient) GetDefinitionByName(ctx context.Context, projectCode int64,
	name string) (pd *model.ProcessDefinition, err error) {

	list, err := callPage[*model.ProcessDefinition](ctx, pc.c,
		projectPath(projectCode, "process-definition"), url.Values{
			"searchVal": {name},
		})
	if err != nil {
		return nil, e.W(err, ECode040401, fmt.Sprintf("name: %s", name))
	}

	for _, item := range list {
		if item != nil && naming.Match(item.Name, name) {
			return item, nil
		}
	}

	return nil, nil
}

// GetDagByCode returns the process definition with its tasks and relations,
// nil if it does not exist
func (pc *ProcessClient) GetDagByCode(ctx context.Context, projectCode,
	code int64) (dag *model.DagData, err error) {

	dag, err = call[*model.DagData](ctx, pc.c, http.MethodGet,
		projectPath(projectCode, "process-definition", code), nil)
	if err != nil {
		return nil, e.W(err, ECode040402, fmt.Sprintf("code: %d", code))
	}
	if dag != nil && dag.ProcessDefinition == nil {
		return nil, nil
	}

	return dag, nil
}

// Create creates a process definition holding a single task, the seed. The
// seed's code must have been generated with TaskClient.GenCode
func (pc *ProcessClient) Create(ctx context.Context, projectCode int64, name,
	description string, seed *model.TaskRequest) (pd *model.ProcessDefinition, err error) {

	taskJSON, err := json.Marshal([]*model.TaskRequest{seed})
	if err != nil {
		return nil, e.W(err, ECode040403)
	}
	relationJSON, err := json.Marshal([]*model.ProcessTaskRelation{{
		PostTaskCode:    seed.Code,
		ConditionType:   "NONE",
		ConditionParams: map[string]interface{}{},
	}})
	if err != nil {
		return nil, e.W(err, ECode040404)
	}
	locationJSON, err := json.Marshal([]*model.TaskLocation{{
		TaskCode: seed.Code,
		X:        seedX,
		Y:        seedY,
	}})
	if err != nil {
		return nil, e.W(err, ECode040405)
	}

	pd, err = call[*model.ProcessDefinition](ctx, pc.c, http.MethodPost,
		projectPath(projectCode, "process-definition"), url.Values{
			"name":               {name},
			"description":        {description},
			"globalParams":       {"[]"},
			"locations":          {string(locationJSON)},
			"timeout":            {"0"},
			"tenantCode":         {DefaultTenantCode},
			"taskRelationJson":   {string(relationJSON)},
			"taskDefinitionJson": {string(taskJSON)},
			"executionType":      {DefaultExecutionType},
		})
	if err != nil {
		return nil, e.W(err, ECode040406, fmt.Sprintf("name: %s", name))
	}

	return pd, nil
}

// Release sets the release state of the process definition
func (pc *ProcessClient) Release(ctx context.Context, projectCode, code int64,
	state model.ReleaseState) (err error) {

	_, err = call[json.RawMessage](ctx, pc.c, http.MethodPost,
		projectPath(projectCode, "process-definition", code, "release"), url.Values{
			"releaseState": {string(state)},
		})
	if err != nil {
		return e.W(err, ECode040407, fmt.Sprintf("code: %d, state: %s", code, state))
	}

	return nil
}

// ListSimple returns every process definition of the project
func (pc *ProcessClient) ListSimple(ctx context.Context, projectCode int64) (list []*model.ProcessDto, err error) {
	list, err = call[[]*model.ProcessDto](ctx, pc.c, http.MethodGet,
		projectPath(projectCode, "process-definition", "simple-list"), nil)
	if err != nil {
		return nil, e.W(err, ECode040408)
	}
	if list == nil {
		list = []*model.ProcessDto{}
	}

	return list, nil
}

// ListInstances returns the process instances of the process definition
func (pc *ProcessClient) ListInstances(ctx context.Context, projectCode, processCode int64,
	f model.InstanceFilter) (list []*model.ProcessInstance, err error) {

	params := url.Values{
		"processDefineCode": {strconv.FormatInt(processCode, 10)},
	}
	setIfNotEmpty(params, "searchVal", f.SearchVal)
	setIfNotEmpty(params, "executorName", f.ExecutorName)
	setIfNotEmpty(params, "stateType", f.StateType)
	setIfNotEmpty(params, "host", f.Host)
	setIfNotEmpty(params, "startDate", f.StartDate)
	setIfNotEmpty(params, "endDate", f.EndDate)
	if f.PageNo > 0 {
		params.Set("pageNo", strconv.Itoa(f.PageNo))
	}
	if f.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(f.PageSize))
	}

	list, err = callPage[*model.ProcessInstance](ctx, pc.c,
		projectPath(projectCode, "process-instances"), params)
	if err != nil {
		return nil, e.W(err, ECode040409, fmt.Sprintf("processCode: %d", processCode))
	}

	return list, nil
}

func setIfNotEmpty(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
