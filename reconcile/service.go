// Package reconcile keeps the scheduler's workflows in line with the
// platform's catalogue. Each folder of the catalogue is a process definition on
// the scheduler and each task entry of the folder one of its task definitions.
//
// Every operation is synchronous: it loads the catalogue context, derives the
// scheduler-side names, reads the scheduler's state and then issues at most
// the calls needed. Requests that would be rejected are rejected before any
// mutating call is made.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skyrin/go-dsbridge/catalogue"
	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/event"
	"github.com/Skyrin/go-dsbridge/scheduler"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const (
	ECode0A0101 = e.Code0A01 + "01"
	ECode0A0102 = e.Code0A01 + "02"
	ECode0A0103 = e.Code0A01 + "03"
	ECode0A0104 = e.Code0A01 + "04"
	ECode0A0105 = e.Code0A01 + "05"
	ECode0A0106 = e.Code0A01 + "06"
)

// Projects the project calls used by the service
type Projects interface {
	GetByName(ctx context.Context, name string) (*model.Project, error)
	Resolve(ctx context.Context, name string) (*model.Project, error)
}

// Processes the process definition/instance calls used by the service
type Processes interface {
	GetDefinitionByName(ctx context.Context, projectCode int64, name string) (*model.ProcessDefinition, error)
	GetDagByCode(ctx context.Context, projectCode, code int64) (*model.DagData, error)
	Create(ctx context.Context, projectCode int64, name, description string,
		seed *model.TaskRequest) (*model.ProcessDefinition, error)
	Release(ctx context.Context, projectCode, code int64, state model.ReleaseState) error
	ListSimple(ctx context.Context, projectCode int64) ([]*model.ProcessDto, error)
	ListInstances(ctx context.Context, projectCode, processCode int64,
		f model.InstanceFilter) ([]*model.ProcessInstance, error)
}

// Tasks the task definition calls used by the service
type Tasks interface {
	GenCode(ctx context.Context, projectCode int64) (int64, error)
	FindMainInfo(ctx context.Context, projectCode int64, processName, taskName string) (*model.TaskMainInfo, error)
	FindMainInfos(ctx context.Context, projectCode int64, processName, taskName string) ([]*model.TaskMainInfo, error)
	GetDefinition(ctx context.Context, projectCode, code int64) (*model.TaskDefinition, error)
	Create(ctx context.Context, projectCode, processCode int64, upstreamCodes []int64,
		task *model.TaskRequest) (*model.TaskDefinition, error)
	Update(ctx context.Context, projectCode, code int64, upstreamCodes []int64, task *model.TaskRequest) error
}

// Executors the process start calls used by the service
type Executors interface {
	Start(ctx context.Context, projectCode, processCode int64, ro model.RunOptions) error
}

// Schedules the schedule calls used by the service
type Schedules interface {
	Create(ctx context.Context, projectCode, processCode int64, sp *model.ScheduleParams) (*model.Schedule, error)
	Update(ctx context.Context, projectCode int64, id int, sp *model.ScheduleParams) (*model.Schedule, error)
	FindByExactName(ctx context.Context, projectCode, processCode int64, processName string) (*model.Schedule, error)
	PreviewCron(ctx context.Context, projectCode int64, sr *model.ScheduleRequest) ([]string, error)
}

// Config service settings
type Config struct {
	// ProjectName the scheduler project every process definition lives in
	ProjectName string `validate:"required"`
	// PlatformURL the platform address platform job tasks call back to
	PlatformURL string `validate:"required"`
	// SchedulerURL base of the instance deep links, usually the scheduler
	// client's URL
	SchedulerURL string
}

// Deps what the service talks to
type Deps struct {
	Catalogue catalogue.Store `validate:"required"`
	Projects  Projects        `validate:"required"`
	Processes Processes       `validate:"required"`
	Tasks     Tasks           `validate:"required"`
	Executors Executors       `validate:"required"`
	Schedules Schedules       `validate:"required"`
	// Events optional, events are discarded if nil
	Events event.Publisher
}

// NewDeps returns the dependencies backed by the scheduler client
func NewDeps(c *scheduler.Client, store catalogue.Store, pub event.Publisher) Deps {
	return Deps{
		Catalogue: store,
		Projects:  c.Projects(),
		Processes: c.Processes(),
		Tasks:     c.Tasks(),
		Executors: c.Executors(),
		Schedules: c.Schedules(),
		Events:    pub,
	}
}

// Service the reconciliation service. It is immutable once created and safe
// for concurrent use
type Service struct {
	cfg      Config
	deps     Deps
	project  *model.Project
	validate *validator.Validate
}

// New returns a new service. The scheduler project is resolved (created if it
// does not exist) once, here, so an unreachable scheduler fails fast
func New(ctx context.Context, cfg Config, deps Deps) (s *Service, err error) {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, e.WK(err, e.ErrConfiguration, ECode0A0101, err.Error())
	}
	if err := v.Struct(deps); err != nil {
		return nil, e.WK(err, e.ErrConfiguration, ECode0A0102, err.Error())
	}
	if deps.Events == nil {
		deps.Events = event.NopPublisher{}
	}

	p, err := deps.Projects.Resolve(ctx, cfg.ProjectName)
	if err != nil {
		return nil, e.W(err, ECode0A0103, fmt.Sprintf("project: %s", cfg.ProjectName))
	}
	if p == nil {
		return nil, e.NK(e.ErrNotFound, ECode0A0104, e.MsgProjectNotExists)
	}
	log.Info().Msgf("using scheduler project %s (%d)", p.Name, p.Code)

	return &Service{
		cfg:      cfg,
		deps:     deps,
		project:  p,
		validate: v,
	}, nil
}

// Project returns the resolved scheduler project
func (s *Service) Project() *model.Project {
	return s.project
}

// Probe returns true if the scheduler is reachable and the project exists
func (s *Service) Probe(ctx context.Context) bool {
	p, err := s.deps.Projects.GetByName(ctx, s.cfg.ProjectName)
	if err != nil {
		log.Warn().Err(err).Msgf("[%s]scheduler probe failed", ECode0A0105)
		return false
	}

	return p != nil
}

// publish publishes the event, a failure is only logged
func (s *Service) publish(ctx context.Context, ev *event.Event) {
	if err := s.deps.Events.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).Msgf("[%s]failed to publish %s event of %s",
			ECode0A0106, ev.Type, ev.ProcessName)
	}
}

// newEvent returns a new event of the type for the service's project
func (s *Service) newEvent(t event.Type, processCode int64, processName string) *event.Event {
	ev := event.New(t, s.project.Code)
	ev.ProcessCode = processCode
	ev.ProcessName = processName

	return ev
}

// schedulerURL base of the scheduler UI links
func (s *Service) schedulerURL() string {
	return strings.TrimSuffix(s.cfg.SchedulerURL, "/")
}
