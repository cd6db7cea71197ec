package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
)

const (
	ECode040601 = e.Code0406 + "01"
)

// ExecutorClient process instance start calls
type ExecutorClient struct {
	c *Client
}

// Start starts a process instance of the process definition. The options are
// sent as given, empty enum fields are left out
func (ec *ExecutorClient) Start(ctx context.Context, projectCode, processCode int64,
	ro model.RunOptions) (err error) {

	params := url.Values{
		"processDefinitionCode":     {strconv.FormatInt(processCode, 10)},
		"warningGroupId":            {strconv.Itoa(ro.WarningGroupID)},
		"workerGroup":               {ro.WorkerGroup},
		"timeout":                   {strconv.Itoa(ro.Timeout)},
		"expectedParallelismNumber": {strconv.Itoa(ro.ExpectedParallelismNumber)},
		"dryRun":                    {strconv.Itoa(ro.DryRun)},
	}
	setIfNotEmpty(params, "failureStrategy", string(ro.FailureStrategy))
	setIfNotEmpty(params, "warningType", string(ro.WarningType))
	setIfNotEmpty(params, "scheduleTime", ro.ScheduleTime)
	setIfNotEmpty(params, "startNodeList", ro.StartNodeList)
	setIfNotEmpty(params, "taskDependType", string(ro.TaskDependType))
	setIfNotEmpty(params, "execType", string(ro.ExecType))
	setIfNotEmpty(params, "runMode", string(ro.RunMode))
	setIfNotEmpty(params, "processInstancePriority", string(ro.ProcessInstancePriority))
	setIfNotEmpty(params, "startParams", ro.StartParams)
	setIfNotEmpty(params, "complementDependentMode", string(ro.ComplementDependentMode))
	if ro.EnvironmentCode != nil {
		params.Set("environmentCode", strconv.FormatInt(*ro.EnvironmentCode, 10))
	}

	_, err = call[json.RawMessage](ctx, ec.c, http.MethodPost,
		projectPath(projectCode, "executors", "start-process-instance"), params)
	if err != nil {
		return e.W(err, ECode040601, fmt.Sprintf("processCode: %d", processCode))
	}

	return nil
}
