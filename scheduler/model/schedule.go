package model

// Schedule a cron trigger attached to a process definition
type Schedule struct {
	ID                      int             `json:"id"`
	ProcessDefinitionCode   int64           `json:"processDefinitionCode"`
	ProcessDefinitionName   string          `json:"processDefinitionName"`
	ProjectName             string          `json:"projectName"`
	DefinitionDescription   string          `json:"definitionDescription"`
	StartTime               string          `json:"startTime"`
	EndTime                 string          `json:"endTime"`
	TimezoneID              string          `json:"timezoneId"`
	Crontab                 string          `json:"crontab"`
	FailureStrategy         FailureStrategy `json:"failureStrategy"`
	WarningType             WarningType     `json:"warningType"`
	WarningGroupID          int             `json:"warningGroupId"`
	ProcessInstancePriority Priority        `json:"processInstancePriority"`
	WorkerGroup             string          `json:"workerGroup"`
	EnvironmentCode         int64           `json:"environmentCode"`
	ReleaseState            ReleaseState    `json:"releaseState"`
	UserID                  int             `json:"userId"`
	UserName                string          `json:"userName"`
	CreateTime              string          `json:"createTime"`
	UpdateTime              string          `json:"updateTime"`
}

// ScheduleRequest the time window and cron expression of a schedule, it is
// sent JSON encoded in the "schedule" form field. An empty TimezoneID is left
// out, the scheduler uses its own timezone then
type ScheduleRequest struct {
	StartTime  string `json:"startTime" validate:"required"`
	EndTime    string `json:"endTime" validate:"required"`
	Crontab    string `json:"crontab" validate:"required"`
	TimezoneID string `json:"timezoneId,omitempty"`
}

// ScheduleParams the full parameter set of a schedule create/update
type ScheduleParams struct {
	Schedule                ScheduleRequest
	FailureStrategy         FailureStrategy
	WarningType             WarningType
	WarningGroupID          int
	ProcessInstancePriority Priority
	WorkerGroup             string
	EnvironmentCode         int64
}
