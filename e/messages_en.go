package e

// This defines reusable error messages

const (
	MsgUnknownInternalServerError = "Unknown Internal Server Error"

	// catalogue
	MsgCatalogueEntryNotExists  = "Catalogue entry does not exist"
	MsgCatalogueParentNotExists = "Catalogue entry parent does not exist"
	MsgCatalogueMissingParent   = "Catalogue entry has no parent directory"
	MsgCatalogueNotDirectory    = "Catalogue entry is not a directory"
	MsgCatalogueTableNotExists  = "Catalogue table does not exist"

	// task types
	MsgTaskTypeUnsupported = "Unsupported task type"

	// scheduler
	MsgSchedulerUnavailable   = "Scheduler is unavailable"
	MsgSchedulerBadResponse   = "Scheduler returned an unreadable response"
	MsgProjectNotExists       = "Scheduler project does not exist"
	MsgProcessNotExists       = "Please create the workflow first"
	MsgProcessOnline          = "Workflow is already online"
	MsgTaskNotExists          = "Task definition does not exist"
	MsgTaskNotSaved           = "Please save the workflow first"
	MsgTaskExists             = "Task definition already exists in the workflow, please refresh"
	MsgTaskNotPlatformJob     = "Only platform job task definitions can be modified"
	MsgTaskCodeNotGenerated   = "Scheduler did not generate a task code"
	MsgRunOptionsInvalid      = "Invalid run options"
	MsgScheduleRequestInvalid = "Invalid schedule"
)
