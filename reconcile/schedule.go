package reconcile

import (
	"context"
	"fmt"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/event"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
	"github.com/rs/zerolog/log"
)

const (
	ECode0A0401 = e.Code0A04 + "01"
	ECode0A0402 = e.Code0A04 + "02"
	ECode0A0403 = e.Code0A04 + "03"
	ECode0A0404 = e.Code0A04 + "04"
	ECode0A0405 = e.Code0A04 + "05"
	ECode0A0406 = e.Code0A04 + "06"
	ECode0A0407 = e.Code0A04 + "07"
	ECode0A0408 = e.Code0A04 + "08"
	ECode0A0409 = e.Code0A04 + "09"
)

// DefaultScheduleWarningGroupID warning group of a schedule saved without one
const DefaultScheduleWarningGroupID = 1

// SaveScheduleRequest creates (ScheduleID 0) or updates a schedule
type SaveScheduleRequest struct {
	ScheduleID              int                   `json:"scheduleId" validate:"gte=0"`
	Schedule                model.ScheduleRequest `json:"schedule"`
	FailureStrategy         model.FailureStrategy `json:"failureStrategy" validate:"omitempty,oneof=CONTINUE END"`
	WarningType             model.WarningType     `json:"warningType" validate:"omitempty,oneof=NONE SUCCESS FAILURE ALL"`
	WarningGroupID          *int                  `json:"warningGroupId" validate:"omitempty,gte=0"`
	ProcessInstancePriority model.Priority        `json:"processInstancePriority" validate:"omitempty,oneof=HIGHEST HIGH MEDIUM LOW LOWEST"`
	WorkerGroup             string                `json:"workerGroup"`
	EnvironmentCode         *int64                `json:"environmentCode"`
}

// params returns the schedule parameters with the empty fields defaulted
func (r *SaveScheduleRequest) params() *model.ScheduleParams {
	sp := &model.ScheduleParams{
		Schedule:                r.Schedule,
		FailureStrategy:         r.FailureStrategy,
		WarningType:             r.WarningType,
		WarningGroupID:          DefaultScheduleWarningGroupID,
		ProcessInstancePriority: r.ProcessInstancePriority,
		WorkerGroup:             r.WorkerGroup,
		EnvironmentCode:         model.NoEnvironment,
	}
	if sp.FailureStrategy == "" {
		sp.FailureStrategy = model.FailureStrategyContinue
	}
	if sp.WarningType == "" {
		sp.WarningType = model.WarningTypeNone
	}
	if r.WarningGroupID != nil {
		sp.WarningGroupID = *r.WarningGroupID
	}
	if sp.ProcessInstancePriority == "" {
		sp.ProcessInstancePriority = model.PriorityMedium
	}
	if sp.WorkerGroup == "" {
		sp.WorkerGroup = model.DefaultWorkerGroup
	}
	if r.EnvironmentCode != nil {
		sp.EnvironmentCode = *r.EnvironmentCode
	}

	return sp
}

// GetSchedule returns the schedule of the folder's process definition, nil if
// it has none
func (s *Service) GetSchedule(ctx context.Context, catalogueID int) (sc *model.Schedule, err error) {
	fc, err := s.loadFolder(ctx, catalogueID)
	if err != nil {
		return nil, e.W(err, ECode0A0401)
	}

	sc, err = s.deps.Schedules.FindByExactName(ctx, s.project.Code, fc.process.Code, fc.processName)
	if err != nil {
		return nil, e.W(err, ECode0A0402, fmt.Sprintf("process: %s", fc.processName))
	}

	return sc, nil
}

// SaveSchedule creates the schedule of the folder's process definition, or
// updates it in place when the request carries its id. The process definition
// must not be online
func (s *Service) SaveSchedule(ctx context.Context, catalogueID int,
	req SaveScheduleRequest) (sc *model.Schedule, err error) {

	if err := s.validate.Struct(&req); err != nil {
		return nil, e.WK(err, e.ErrConfiguration, ECode0A0403, e.MsgScheduleRequestInvalid)
	}

	fc, err := s.loadFolder(ctx, catalogueID)
	if err != nil {
		return nil, e.W(err, ECode0A0404)
	}
	if fc.process.IsOnline() {
		return nil, e.NK(e.ErrConflict, ECode0A0405, e.MsgProcessOnline)
	}

	sp := req.params()
	t := event.TypeScheduleCreated
	if req.ScheduleID == 0 {
		sc, err = s.deps.Schedules.Create(ctx, s.project.Code, fc.process.Code, sp)
		if err != nil {
			return nil, e.W(err, ECode0A0406, fmt.Sprintf("process: %s", fc.processName))
		}
	} else {
		t = event.TypeScheduleUpdated
		sc, err = s.deps.Schedules.Update(ctx, s.project.Code, req.ScheduleID, sp)
		if err != nil {
			return nil, e.W(err, ECode0A0407, fmt.Sprintf("process: %s, schedule: %d",
				fc.processName, req.ScheduleID))
		}
	}
	log.Info().Msgf("%s for process %s (%d): %s", t, fc.processName, fc.process.Code,
		sp.Schedule.Crontab)

	ev := s.newEvent(t, fc.process.Code, fc.processName)
	ev.CatalogueID = fc.folder.ID
	ev.Detail = map[string]interface{}{"crontab": sp.Schedule.Crontab}
	if sc != nil {
		ev.Detail["scheduleId"] = sc.ID
	}
	s.publish(ctx, ev)

	return sc, nil
}

// PreviewSchedule returns the next fire times of the schedule, as computed by
// the scheduler
func (s *Service) PreviewSchedule(ctx context.Context, sr model.ScheduleRequest) (times []string, err error) {
	if err := s.validate.Struct(&sr); err != nil {
		return nil, e.WK(err, e.ErrConfiguration, ECode0A0408, e.MsgScheduleRequestInvalid)
	}

	times, err = s.deps.Schedules.PreviewCron(ctx, s.project.Code, &sr)
	if err != nil {
		return nil, e.W(err, ECode0A0409, fmt.Sprintf("crontab: %s", sr.Crontab))
	}

	return times, nil
}
