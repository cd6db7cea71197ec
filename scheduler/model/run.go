package model

import "github.com/go-playground/validator/v10"

// DefaultWorkerGroup worker group used when none is given
const DefaultWorkerGroup = "default"

// NoEnvironment environment code meaning "no environment"
const NoEnvironment int64 = -1

// RunOptions options of a process instance start. Enum fields are validated
// against their wire values and omitted from the request when empty
type RunOptions struct {
	ScheduleTime              string                  `json:"scheduleTime"`
	FailureStrategy           FailureStrategy         `json:"failureStrategy" validate:"omitempty,oneof=CONTINUE END"`
	StartNodeList             string                  `json:"startNodeList"`
	TaskDependType            TaskDependType          `json:"taskDependType" validate:"omitempty,oneof=TASK_ONLY TASK_PRE TASK_POST"`
	ExecType                  CommandType             `json:"execType" validate:"omitempty,oneof=START_PROCESS START_CURRENT_TASK_PROCESS RECOVER_TOLERANCE_FAULT_PROCESS RECOVER_SUSPENDED_PROCESS START_FAILURE_TASK_PROCESS COMPLEMENT_DATA SCHEDULER REPEAT_RUNNING PAUSE STOP RECOVER_WAITING_THREAD"`
	WarningType               WarningType             `json:"warningType" validate:"omitempty,oneof=NONE SUCCESS FAILURE ALL"`
	WarningGroupID            int                     `json:"warningGroupId" validate:"gte=0"`
	RunMode                   RunMode                 `json:"runMode" validate:"omitempty,oneof=RUN_MODE_SERIAL RUN_MODE_PARALLEL"`
	ProcessInstancePriority   Priority                `json:"processInstancePriority" validate:"omitempty,oneof=HIGHEST HIGH MEDIUM LOW LOWEST"`
	WorkerGroup               string                  `json:"workerGroup"`
	EnvironmentCode           *int64                  `json:"environmentCode"`
	Timeout                   int                     `json:"timeout" validate:"gte=0"`
	StartParams               string                  `json:"startParams"`
	ExpectedParallelismNumber int                     `json:"expectedParallelismNumber" validate:"gte=0"`
	DryRun                    int                     `json:"dryRun" validate:"oneof=0 1"`
	ComplementDependentMode   ComplementDependentMode `json:"complementDependentMode" validate:"omitempty,oneof=OFF_MODE ALL_DEPENDENT"`
}

// Validate checks the options against their wire values
func (ro *RunOptions) Validate(v *validator.Validate) error {
	return v.Struct(ro)
}

// WithDefaults returns a copy of the options with the worker group and the
// environment defaulted. Empty enum fields are left empty, the scheduler
// applies its own defaults to them
func (ro RunOptions) WithDefaults() RunOptions {
	if ro.WorkerGroup == "" {
		ro.WorkerGroup = DefaultWorkerGroup
	}
	if ro.EnvironmentCode == nil {
		env := NoEnvironment
		ro.EnvironmentCode = &env
	}

	return ro
}
