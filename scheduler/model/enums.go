package model

// The enum values below are the scheduler's wire values, they are sent and
// received as strings

// ReleaseState of a process definition or schedule
type ReleaseState string

const (
	ReleaseStateOnline  ReleaseState = "ONLINE"
	ReleaseStateOffline ReleaseState = "OFFLINE"
)

// TaskType of a task definition
type TaskType string

const (
	// TaskTypePlatformJob a task that calls back into the platform to run one
	// of its jobs
	TaskTypePlatformJob TaskType = "DINKY"
	// TaskTypeSubWorkflow a task that runs another process definition
	TaskTypeSubWorkflow TaskType = "SUB_PROCESS"
)

// FailureStrategy what to do with the other branches when a task fails
type FailureStrategy string

const (
	FailureStrategyContinue FailureStrategy = "CONTINUE"
	FailureStrategyEnd      FailureStrategy = "END"
)

// WarningType when to notify the warning group
type WarningType string

const (
	WarningTypeNone    WarningType = "NONE"
	WarningTypeSuccess WarningType = "SUCCESS"
	WarningTypeFailure WarningType = "FAILURE"
	WarningTypeAll     WarningType = "ALL"
)

// Priority of a process instance
type Priority string

const (
	PriorityHighest Priority = "HIGHEST"
	PriorityHigh    Priority = "HIGH"
	PriorityMedium  Priority = "MEDIUM"
	PriorityLow     Priority = "LOW"
	PriorityLowest  Priority = "LOWEST"
)

// CommandType of a process instance start command
type CommandType string

const (
	CommandTypeStartProcess                 CommandType = "START_PROCESS"
	CommandTypeStartCurrentTaskProcess      CommandType = "START_CURRENT_TASK_PROCESS"
	CommandTypeRecoverToleranceFaultProcess CommandType = "RECOVER_TOLERANCE_FAULT_PROCESS"
	CommandTypeRecoverSuspendedProcess      CommandType = "RECOVER_SUSPENDED_PROCESS"
	CommandTypeStartFailureTaskProcess      CommandType = "START_FAILURE_TASK_PROCESS"
	CommandTypeComplementData               CommandType = "COMPLEMENT_DATA"
	CommandTypeScheduler                    CommandType = "SCHEDULER"
	CommandTypeRepeatRunning                CommandType = "REPEAT_RUNNING"
	CommandTypePause                        CommandType = "PAUSE"
	CommandTypeStop                         CommandType = "STOP"
	CommandTypeRecoverWaitingThread         CommandType = "RECOVER_WAITING_THREAD"
)

// TaskDependType which nodes, relative to the start nodes, are run
type TaskDependType string

const (
	TaskDependTypeTaskOnly TaskDependType = "TASK_ONLY"
	TaskDependTypeTaskPre  TaskDependType = "TASK_PRE"
	TaskDependTypeTaskPost TaskDependType = "TASK_POST"
)

// RunMode of a complement run
type RunMode string

const (
	RunModeSerial   RunMode = "RUN_MODE_SERIAL"
	RunModeParallel RunMode = "RUN_MODE_PARALLEL"
)

// ComplementDependentMode whether dependent workflows are complemented too
type ComplementDependentMode string

const (
	ComplementDependentModeOff ComplementDependentMode = "OFF_MODE"
	ComplementDependentModeAll ComplementDependentMode = "ALL_DEPENDENT"
)

// ExecutionStatus of a process instance
type ExecutionStatus string

const (
	ExecutionStatusSubmittedSuccess   ExecutionStatus = "SUBMITTED_SUCCESS"
	ExecutionStatusRunningExecution   ExecutionStatus = "RUNNING_EXECUTION"
	ExecutionStatusReadyPause         ExecutionStatus = "READY_PAUSE"
	ExecutionStatusPause              ExecutionStatus = "PAUSE"
	ExecutionStatusReadyStop          ExecutionStatus = "READY_STOP"
	ExecutionStatusStop               ExecutionStatus = "STOP"
	ExecutionStatusFailure            ExecutionStatus = "FAILURE"
	ExecutionStatusSuccess            ExecutionStatus = "SUCCESS"
	ExecutionStatusNeedFaultTolerance ExecutionStatus = "NEED_FAULT_TOLERANCE"
	ExecutionStatusKill               ExecutionStatus = "KILL"
	ExecutionStatusWaitingThread      ExecutionStatus = "WAITING_THREAD"
	ExecutionStatusWaitingDepend      ExecutionStatus = "WAITING_DEPEND"
	ExecutionStatusDelayExecution     ExecutionStatus = "DELAY_EXECUTION"
	ExecutionStatusForcedSuccess      ExecutionStatus = "FORCED_SUCCESS"
	ExecutionStatusSerialWait         ExecutionStatus = "SERIAL_WAIT"
	ExecutionStatusReadyBlock         ExecutionStatus = "READY_BLOCK"
	ExecutionStatusBlock              ExecutionStatus = "BLOCK"
	ExecutionStatusDispatch           ExecutionStatus = "DISPATCH"
)
