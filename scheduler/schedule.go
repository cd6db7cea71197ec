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
	ECode040701 = e.Code0407 + "01"
	ECode040702 = e.Code0407 + "02"
	ECode040703 = e.Code0407 + "03"
	ECode040704 = e.Code0407 + "04"
	ECode040705 = e.Code0407 + "05"
	ECode040706 = e.Code0407 + "06"
	ECode040707 = e.Code0407 + "07"
)

// ScheduleClient schedule calls
type ScheduleClient struct {
	c *Client
}

// Create creates a schedule of the process definition
func (sc *ScheduleClient) Create(ctx context.Context, projectCode, processCode int64,
	sp *model.ScheduleParams) (s *model.Schedule, err error) {

	params, err := scheduleValues(sp)
	if err != nil {
		return nil, e.W(err, ECode040701)
	}
	params.Set("processDefinitionCode", strconv.FormatInt(processCode, 10))

	s, err = call[*model.Schedule](ctx, sc.c, http.MethodPost,
		projectPath(projectCode, "schedules"), params)
	if err != nil {
		return nil, e.W(err, ECode040702, fmt.Sprintf("processCode: %d", processCode))
	}

	return s, nil
}

// Update updates the schedule in place
func (sc *ScheduleClient) Update(ctx context.Context, projectCode int64, id int,
	sp *model.ScheduleParams) (s *model.Schedule, err error) {

	params, err := scheduleValues(sp)
	if err != nil {
		return nil, e.W(err, ECode040703)
	}

	s, err = call[*model.Schedule](ctx, sc.c, http.MethodPut,
		projectPath(projectCode, "schedules", id), params)
	if err != nil {
		return nil, e.W(err, ECode040704, fmt.Sprintf("id: %d", id))
	}

	return s, nil
}

// ListByProcess returns the schedules of the process definition. The optional
// searchVal is passed to the scheduler's search as is
func (sc *ScheduleClient) ListByProcess(ctx context.Context, projectCode, processCode int64,
	searchVal string) (list []*model.Schedule, err error) {

	params := url.Values{
		"processDefinitionCode": {strconv.FormatInt(processCode, 10)},
	}
	setIfNotEmpty(params, "searchVal", searchVal)

	list, err = callPage[*model.Schedule](ctx, sc.c, projectPath(projectCode, "schedules"), params)
	if err != nil {
		return nil, e.W(err, ECode040705, fmt.Sprintf("processCode: %d", processCode))
	}

	return list, nil
}

// FindByExactName returns the first schedule of the process definition whose
// process name matches, nil if none
func (sc *ScheduleClient) FindByExactName(ctx context.Context, projectCode, processCode int64,
	processName string) (s *model.Schedule, err error) {

	list, err := sc.ListByProcess(ctx, projectCode, processCode, processName)
	if err != nil {
		return nil, err
	}

	for _, item := range list {
		if item != nil && naming.Match(item.ProcessDefinitionName, processName) {
			return item, nil
		}
	}

	return nil, nil
}

// PreviewCron returns the next fire times of the schedule. They are advisory,
// computed by the scheduler
func (sc *ScheduleClient) PreviewCron(ctx context.Context, projectCode int64,
	sr *model.ScheduleRequest) (times []string, err error) {

	scheduleJSON, err := json.Marshal(sr)
	if err != nil {
		return nil, e.W(err, ECode040706)
	}

	times, err = call[[]string](ctx, sc.c, http.MethodPost,
		projectPath(projectCode, "schedules", "preview"), url.Values{
			"schedule": {string(scheduleJSON)},
		})
	if err != nil {
		return nil, e.W(err, ECode040707, fmt.Sprintf("crontab: %s", sr.Crontab))
	}
	if times == nil {
		times = []string{}
	}

	return times, nil
}

func scheduleValues(sp *model.ScheduleParams) (url.Values, error) {
	scheduleJSON, err := json.Marshal(&sp.Schedule)
	if err != nil {
		return nil, err
	}

	return url.Values{
		"schedule":                {string(scheduleJSON)},
		"failureStrategy":         {string(sp.FailureStrategy)},
		"warningType":             {string(sp.WarningType)},
		"warningGroupId":          {strconv.Itoa(sp.WarningGroupID)},
		"processInstancePriority": {string(sp.ProcessInstancePriority)},
		"workerGroup":             {sp.WorkerGroup},
		"environmentCode":         {strconv.FormatInt(sp.EnvironmentCode, 10)},
	}, nil
}
