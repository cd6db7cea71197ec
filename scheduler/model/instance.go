package model

import "fmt"

// ProcessInstance one run of a process definition
type ProcessInstance struct {
	ID                       int             `json:"id"`
	Name                     string          `json:"name"`
	ProcessDefinitionCode    int64           `json:"processDefinitionCode"`
	ProcessDefinitionVersion int             `json:"processDefinitionVersion"`
	State                    ExecutionStatus `json:"state"`
	Recovery                 string          `json:"recovery"`
	StartTime                string          `json:"startTime"`
	EndTime                  string          `json:"endTime"`
	RunTimes                 int             `json:"runTimes"`
	Host                     string          `json:"host"`
	CommandType              CommandType     `json:"commandType"`
	TaskDependType           TaskDependType  `json:"taskDependType"`
	FailureStrategy          FailureStrategy `json:"failureStrategy"`
	WarningType              WarningType     `json:"warningType"`
	WarningGroupID           int             `json:"warningGroupId"`
	ScheduleTime             string          `json:"scheduleTime"`
	CommandStartTime         string          `json:"commandStartTime"`
	ExecutorName             string          `json:"executorName"`
	Duration                 string          `json:"duration"`
	ProcessInstancePriority  Priority        `json:"processInstancePriority"`
	WorkerGroup              string          `json:"workerGroup"`
	EnvironmentCode          int64           `json:"environmentCode"`
	Timeout                  int             `json:"timeout"`
	DryRun                   int             `json:"dryRun"`
	RestartTime              string          `json:"restartTime"`

	// SchedulerURL deep link to the instance in the scheduler UI, set on read
	SchedulerURL string `json:"schedulerUrl,omitempty"`
}

// SetSchedulerURL sets the deep link to this instance in the scheduler UI
func (pi *ProcessInstance) SetSchedulerURL(base string, projectCode int64) {
	pi.SchedulerURL = fmt.Sprintf("%s/ui/projects/%d/workflow/instances/%d?code=%d",
		base, projectCode, pi.ID, pi.ProcessDefinitionCode)
}

// InstanceFilter the optional filters of a process instance listing. Zero
// values are not sent
type InstanceFilter struct {
	SearchVal    string `json:"searchVal"`
	ExecutorName string `json:"executorName"`
	StateType    string `json:"stateType" validate:"omitempty,oneof=SUBMITTED_SUCCESS RUNNING_EXECUTION READY_PAUSE PAUSE READY_STOP STOP FAILURE SUCCESS NEED_FAULT_TOLERANCE KILL WAITING_THREAD WAITING_DEPEND DELAY_EXECUTION FORCED_SUCCESS SERIAL_WAIT READY_BLOCK BLOCK DISPATCH"`
	Host         string `json:"host"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	PageNo       int    `json:"pageNo" validate:"gte=0"`
	PageSize     int    `json:"pageSize" validate:"gte=0"`
}
