package model

// ProcessDefinition a workflow, i.e. a named, versioned DAG of task definitions
type ProcessDefinition struct {
	ID           int          `json:"id"`
	Code         int64        `json:"code"`
	Name         string       `json:"name"`
	Version      int          `json:"version"`
	ReleaseState ReleaseState `json:"releaseState"`
	ProjectCode  int64        `json:"projectCode"`
	Description  string       `json:"description"`
	GlobalParams string       `json:"globalParams"`
	Locations    string       `json:"locations"`
	Timeout      int          `json:"timeout"`
	TenantID     int          `json:"tenantId"`
	TenantCode   string       `json:"tenantCode"`
	UserName     string       `json:"userName"`
	ProjectName  string       `json:"projectName"`
	CreateTime   string       `json:"createTime"`
	UpdateTime   string       `json:"updateTime"`
}

// IsOnline whether the process is released and therefore must not be modified
func (pd *ProcessDefinition) IsOnline() bool {
	return pd.ReleaseState == ReleaseStateOnline
}

// ProcessTaskRelation an edge of the process DAG. A PreTaskCode of 0 marks a
// root task
type ProcessTaskRelation struct {
	Name            string                 `json:"name"`
	PreTaskCode     int64                  `json:"preTaskCode"`
	PreTaskVersion  int                    `json:"preTaskVersion"`
	PostTaskCode    int64                  `json:"postTaskCode"`
	PostTaskVersion int                    `json:"postTaskVersion"`
	ConditionType   string                 `json:"conditionType"`
	ConditionParams map[string]interface{} `json:"conditionParams"`
}

// TaskLocation the position of a task in the scheduler's DAG editor
type TaskLocation struct {
	TaskCode int64 `json:"taskCode"`
	X        int   `json:"x"`
	Y        int   `json:"y"`
}

// DagData a process definition with its tasks and relations
type DagData struct {
	ProcessDefinition       *ProcessDefinition     `json:"processDefinition"`
	ProcessTaskRelationList []*ProcessTaskRelation `json:"processTaskRelationList"`
	TaskDefinitionList      []*TaskDefinition      `json:"taskDefinitionList"`
}

// ProcessDto entry of the process definition simple list
type ProcessDto struct {
	ID          int    `json:"id"`
	Code        int64  `json:"code"`
	Name        string `json:"name"`
	ProjectCode int64  `json:"projectCode"`
}
