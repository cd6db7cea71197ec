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
	ECode0A0301 = e.Code0A03 + "01"
	ECode0A0302 = e.Code0A03 + "02"
	ECode0A0303 = e.Code0A03 + "03"
	ECode0A0304 = e.Code0A03 + "04"
	ECode0A0305 = e.Code0A03 + "05"
	ECode0A0306 = e.Code0A03 + "06"
	ECode0A0307 = e.Code0A03 + "07"
	ECode0A0308 = e.Code0A03 + "08"
	ECode0A0309 = e.Code0A03 + "09"
	ECode0A030A = e.Code0A03 + "0A"
)

// SetReleaseState brings the folder's process definition online or offline
func (s *Service) SetReleaseState(ctx context.Context, catalogueID int,
	state model.ReleaseState) (err error) {

	if state != model.ReleaseStateOnline && state != model.ReleaseStateOffline {
		return e.NK(e.ErrConfiguration, ECode0A0301,
			fmt.Sprintf("invalid release state: %q", state))
	}

	fc, err := s.loadFolder(ctx, catalogueID)
	if err != nil {
		return e.W(err, ECode0A0302)
	}

	if err := s.deps.Processes.Release(ctx, s.project.Code, fc.process.Code, state); err != nil {
		return e.W(err, ECode0A0303, fmt.Sprintf("process: %s, state: %s", fc.processName, state))
	}
	log.Info().Msgf("process %s (%d) released %s", fc.processName, fc.process.Code, state)

	ev := s.newEvent(event.TypeProcessReleased, fc.process.Code, fc.processName)
	ev.CatalogueID = fc.folder.ID
	ev.Detail = map[string]interface{}{"releaseState": state}
	s.publish(ctx, ev)

	return nil
}

// StartProcess starts an instance of the folder's process definition. Empty
// options are defaulted
func (s *Service) StartProcess(ctx context.Context, catalogueID int, ro model.RunOptions) (err error) {
	if err := ro.Validate(s.validate); err != nil {
		return e.WK(err, e.ErrConfiguration, ECode0A0304, e.MsgRunOptionsInvalid)
	}

	fc, err := s.loadFolder(ctx, catalogueID)
	if err != nil {
		return e.W(err, ECode0A0305)
	}

	ro = ro.WithDefaults()
	if err := s.deps.Executors.Start(ctx, s.project.Code, fc.process.Code, ro); err != nil {
		return e.W(err, ECode0A0306, fmt.Sprintf("process: %s", fc.processName))
	}
	log.Info().Msgf("started process %s (%d)", fc.processName, fc.process.Code)

	ev := s.newEvent(event.TypeProcessStarted, fc.process.Code, fc.processName)
	ev.CatalogueID = fc.folder.ID
	ev.Detail = map[string]interface{}{
		"execType": ro.ExecType,
		"dryRun":   ro.DryRun,
	}
	s.publish(ctx, ev)

	return nil
}

// ListInstances returns the instances of the folder's process definition, each
// carrying its link into the scheduler UI
func (s *Service) ListInstances(ctx context.Context, catalogueID int,
	f model.InstanceFilter) (list []*model.ProcessInstance, err error) {

	if err := s.validate.Struct(&f); err != nil {
		return nil, e.WK(err, e.ErrConfiguration, ECode0A0307, err.Error())
	}

	fc, err := s.loadFolder(ctx, catalogueID)
	if err != nil {
		return nil, e.W(err, ECode0A0308)
	}

	list, err = s.deps.Processes.ListInstances(ctx, s.project.Code, fc.process.Code, f)
	if err != nil {
		return nil, e.W(err, ECode0A0309, fmt.Sprintf("process: %s", fc.processName))
	}

	for _, pi := range list {
		pi.SetSchedulerURL(s.schedulerURL(), s.project.Code)
	}

	return list, nil
}

// ListProcesses returns the process definitions of the project
func (s *Service) ListProcesses(ctx context.Context) (list []*model.ProcessDto, err error) {
	list, err = s.deps.Processes.ListSimple(ctx, s.project.Code)
	if err != nil {
		return nil, e.W(err, ECode0A030A)
	}

	return list, nil
}
