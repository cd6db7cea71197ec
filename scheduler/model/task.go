package model

import "encoding/json"

// TaskDefinition a node of a process definition
type TaskDefinition struct {
	ID                    int             `json:"id"`
	Code                  int64           `json:"code"`
	Name                  string          `json:"name"`
	Version               int             `json:"version"`
	Description           string          `json:"description"`
	ProjectCode           int64           `json:"projectCode"`
	TaskType              TaskType        `json:"taskType"`
	TaskParams            json.RawMessage `json:"taskParams"`
	Flag                  string          `json:"flag"`
	TaskPriority          Priority        `json:"taskPriority"`
	WorkerGroup           string          `json:"workerGroup"`
	EnvironmentCode       int64           `json:"environmentCode"`
	FailRetryTimes        int             `json:"failRetryTimes"`
	FailRetryInterval     int             `json:"failRetryInterval"`
	TimeoutFlag           string          `json:"timeoutFlag"`
	TimeoutNotifyStrategy string          `json:"timeoutNotifyStrategy"`
	Timeout               int             `json:"timeout"`
	DelayTime             int             `json:"delayTime"`
	ResourceIDs           string          `json:"resourceIds"`
	CreateTime            string          `json:"createTime"`
	UpdateTime            string          `json:"updateTime"`
}

// TaskDefinitionDetail a task definition enriched with the process it belongs
// to and its upstream tasks (code => name)
type TaskDefinitionDetail struct {
	TaskDefinition
	ProcessDefinitionCode    int64            `json:"processDefinitionCode"`
	ProcessDefinitionName    string           `json:"processDefinitionName"`
	ProcessDefinitionVersion int              `json:"processDefinitionVersion"`
	UpstreamTaskMap          map[int64]string `json:"upstreamTaskMap"`
}

// TaskMainInfo the lookup record returned by the task definition search
type TaskMainInfo struct {
	ID                       int              `json:"id"`
	TaskCode                 int64            `json:"taskCode"`
	TaskName                 string           `json:"taskName"`
	TaskVersion              int              `json:"taskVersion"`
	TaskType                 TaskType         `json:"taskType"`
	ProcessDefinitionCode    int64            `json:"processDefinitionCode"`
	ProcessDefinitionName    string           `json:"processDefinitionName"`
	ProcessDefinitionVersion int              `json:"processDefinitionVersion"`
	ProcessReleaseState      ReleaseState     `json:"processReleaseState"`
	UpstreamTaskMap          map[int64]string `json:"upstreamTaskMap"`
	TaskCreateTime           string           `json:"taskCreateTime"`
	TaskUpdateTime           string           `json:"taskUpdateTime"`
}

// TaskRequest the task definition body sent when creating/updating a task. The
// caller supplies the mutable fields, Name/Code/TaskType/TaskParams are set
// during reconciliation
type TaskRequest struct {
	Code                  int64           `json:"code"`
	Name                  string          `json:"name"`
	Description           string          `json:"description"`
	TaskType              TaskType        `json:"taskType"`
	TaskParams            json.RawMessage `json:"taskParams"`
	Flag                  string          `json:"flag" validate:"omitempty,oneof=YES NO"`
	TaskPriority          Priority        `json:"taskPriority" validate:"omitempty,oneof=HIGHEST HIGH MEDIUM LOW LOWEST"`
	WorkerGroup           string          `json:"workerGroup"`
	EnvironmentCode       int64           `json:"environmentCode"`
	FailRetryTimes        int             `json:"failRetryTimes" validate:"gte=0"`
	FailRetryInterval     int             `json:"failRetryInterval" validate:"gte=0"`
	TimeoutFlag           string          `json:"timeoutFlag" validate:"omitempty,oneof=OPEN CLOSE"`
	TimeoutNotifyStrategy string          `json:"timeoutNotifyStrategy,omitempty" validate:"omitempty,oneof=WARN FAILED WARNFAILED"`
	Timeout               int             `json:"timeout" validate:"gte=0"`
	DelayTime             int             `json:"delayTime" validate:"gte=0"`
}
