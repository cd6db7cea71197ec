package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/Skyrin/go-dsbridge/catalogue"
	"github.com/Skyrin/go-dsbridge/event"
	"github.com/Skyrin/go-dsbridge/naming"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
	"github.com/stretchr/testify/require"
)

const (
	testProjectCode  = int64(1000)
	testPlatformURL  = "http://platform:8888"
	testSchedulerURL = "http://ds:12345/dolphinscheduler"
)

// fakeScheduler an in-memory scheduler counting every call it serves
type fakeScheduler struct {
	calls map[string]int

	project   *model.Project
	processes []*model.ProcessDefinition
	tasks     map[int64]*model.TaskDefinition
	// taskProcess task code => process code
	taskProcess map[int64]int64
	upstreams   map[int64][]int64
	// unsaved task codes found by the search but without definition
	unsaved     map[int64]bool
	schedules   []*model.Schedule
	instances   []*model.ProcessInstance
	started     []model.RunOptions
	released    []model.ReleaseState
	lastUpdate  *model.TaskRequest
	nextCode    int64
	nextID      int

	// failOn call name => error returned by that call
	failOn map[string]error
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		calls:       map[string]int{},
		project:     &model.Project{ID: 1, Code: testProjectCode, Name: "platform"},
		tasks:       map[int64]*model.TaskDefinition{},
		taskProcess: map[int64]int64{},
		upstreams:   map[int64][]int64{},
		unsaved:     map[int64]bool{},
		nextCode:    5000,
		nextID:      1,
		failOn:      map[string]error{},
	}
}

func (fs *fakeScheduler) call(name string) error {
	fs.calls[name]++
	return fs.failOn[name]
}

// total returns the number of calls served
func (fs *fakeScheduler) total() (n int) {
	for _, c := range fs.calls {
		n += c
	}
	return n
}

// mutations returns the number of mutating calls served
func (fs *fakeScheduler) mutations() int {
	return fs.calls["process.create"] + fs.calls["process.release"] +
		fs.calls["task.create"] + fs.calls["task.update"] +
		fs.calls["executor.start"] + fs.calls["schedule.create"] +
		fs.calls["schedule.update"]
}

func (fs *fakeScheduler) reset() {
	fs.calls = map[string]int{}
}

func (fs *fakeScheduler) genCode() int64 {
	fs.nextCode++
	return fs.nextCode
}

// addProcess registers a process definition holding the given tasks
func (fs *fakeScheduler) addProcess(name string, state model.ReleaseState,
	tasks ...*model.TaskDefinition) *model.ProcessDefinition {

	pd := &model.ProcessDefinition{
		ID:           len(fs.processes) + 1,
		Code:         fs.genCode(),
		Name:         name,
		Version:      1,
		ReleaseState: state,
		ProjectCode:  testProjectCode,
	}
	fs.processes = append(fs.processes, pd)
	for _, td := range tasks {
		if td.Code == 0 {
			td.Code = fs.genCode()
		}
		fs.tasks[td.Code] = td
		fs.taskProcess[td.Code] = pd.Code
	}

	return pd
}

func (fs *fakeScheduler) processByCode(code int64) *model.ProcessDefinition {
	for _, pd := range fs.processes {
		if pd.Code == code {
			return pd
		}
	}
	return nil
}

type fakeProjects struct{ fs *fakeScheduler }

func (fp fakeProjects) GetByName(ctx context.Context, name string) (*model.Project, error) {
	if err := fp.fs.call("project.get"); err != nil {
		return nil, err
	}
	if fp.fs.project == nil || !naming.Match(fp.fs.project.Name, name) {
		return nil, nil
	}
	return fp.fs.project, nil
}

func (fp fakeProjects) Resolve(ctx context.Context, name string) (*model.Project, error) {
	if err := fp.fs.call("project.resolve"); err != nil {
		return nil, err
	}
	return fp.fs.project, nil
}

type fakeProcesses struct{ fs *fakeScheduler }

func (fp fakeProcesses) GetDefinitionByName(ctx context.Context, projectCode int64,
	name string) (*model.ProcessDefinition, error) {

	if err := fp.fs.call("process.getByName"); err != nil {
		return nil, err
	}
	for _, pd := range fp.fs.processes {
		if naming.Match(pd.Name, name) {
			return pd, nil
		}
	}
	return nil, nil
}

func (fp fakeProcesses) GetDagByCode(ctx context.Context, projectCode, code int64) (*model.DagData, error) {
	if err := fp.fs.call("process.dag"); err != nil {
		return nil, err
	}
	pd := fp.fs.processByCode(code)
	if pd == nil {
		return nil, nil
	}
	return &model.DagData{ProcessDefinition: pd}, nil
}

func (fp fakeProcesses) Create(ctx context.Context, projectCode int64, name, description string,
	seed *model.TaskRequest) (*model.ProcessDefinition, error) {

	if err := fp.fs.call("process.create"); err != nil {
		return nil, err
	}
	return fp.fs.addProcess(name, model.ReleaseStateOffline, &model.TaskDefinition{
		Code:       seed.Code,
		Name:       seed.Name,
		TaskType:   seed.TaskType,
		TaskParams: seed.TaskParams,
	}), nil
}

func (fp fakeProcesses) Release(ctx context.Context, projectCode, code int64, state model.ReleaseState) error {
	if err := fp.fs.call("process.release"); err != nil {
		return err
	}
	if pd := fp.fs.processByCode(code); pd != nil {
		pd.ReleaseState = state
	}
	fp.fs.released = append(fp.fs.released, state)
	return nil
}

func (fp fakeProcesses) ListSimple(ctx context.Context, projectCode int64) ([]*model.ProcessDto, error) {
	if err := fp.fs.call("process.listSimple"); err != nil {
		return nil, err
	}
	list := make([]*model.ProcessDto, 0, len(fp.fs.processes))
	for _, pd := range fp.fs.processes {
		list = append(list, &model.ProcessDto{ID: pd.ID, Code: pd.Code, Name: pd.Name, ProjectCode: projectCode})
	}
	return list, nil
}

func (fp fakeProcesses) ListInstances(ctx context.Context, projectCode, processCode int64,
	f model.InstanceFilter) ([]*model.ProcessInstance, error) {

	if err := fp.fs.call("process.instances"); err != nil {
		return nil, err
	}
	list := []*model.ProcessInstance{}
	for _, pi := range fp.fs.instances {
		if pi.ProcessDefinitionCode == processCode {
			list = append(list, pi)
		}
	}
	return list, nil
}

type fakeTasks struct{ fs *fakeScheduler }

func (ft fakeTasks) GenCode(ctx context.Context, projectCode int64) (int64, error) {
	if err := ft.fs.call("task.genCode"); err != nil {
		return 0, err
	}
	return ft.fs.genCode(), nil
}

func (ft fakeTasks) FindMainInfos(ctx context.Context, projectCode int64,
	processName, taskName string) ([]*model.TaskMainInfo, error) {

	if err := ft.fs.call("task.findMainInfos"); err != nil {
		return nil, err
	}
	list := []*model.TaskMainInfo{}
	for code, td := range ft.fs.tasks {
		pd := ft.fs.processByCode(ft.fs.taskProcess[code])
		if pd == nil || !naming.Match(pd.Name, processName) {
			continue
		}
		if taskName != "" && !naming.Match(td.Name, taskName) {
			continue
		}
		list = append(list, &model.TaskMainInfo{
			TaskCode:                 td.Code,
			TaskName:                 td.Name,
			TaskType:                 td.TaskType,
			ProcessDefinitionCode:    pd.Code,
			ProcessDefinitionName:    pd.Name,
			ProcessDefinitionVersion: pd.Version,
			ProcessReleaseState:      pd.ReleaseState,
			UpstreamTaskMap:          map[int64]string{},
		})
	}
	return list, nil
}

func (ft fakeTasks) FindMainInfo(ctx context.Context, projectCode int64,
	processName, taskName string) (*model.TaskMainInfo, error) {

	list, err := ft.FindMainInfos(ctx, projectCode, processName, taskName)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (ft fakeTasks) GetDefinition(ctx context.Context, projectCode, code int64) (*model.TaskDefinition, error) {
	if err := ft.fs.call("task.get"); err != nil {
		return nil, err
	}
	td, ok := ft.fs.tasks[code]
	if !ok || ft.fs.unsaved[code] {
		return nil, nil
	}
	c := *td
	return &c, nil
}

func (ft fakeTasks) Create(ctx context.Context, projectCode, processCode int64, upstreamCodes []int64,
	task *model.TaskRequest) (*model.TaskDefinition, error) {

	if err := ft.fs.call("task.create"); err != nil {
		return nil, err
	}
	td := &model.TaskDefinition{
		Code:        task.Code,
		Name:        task.Name,
		ProjectCode: projectCode,
		TaskType:    task.TaskType,
		TaskParams:  task.TaskParams,
	}
	ft.fs.tasks[td.Code] = td
	ft.fs.taskProcess[td.Code] = processCode
	ft.fs.upstreams[td.Code] = upstreamCodes
	return td, nil
}

func (ft fakeTasks) Update(ctx context.Context, projectCode, code int64, upstreamCodes []int64,
	task *model.TaskRequest) error {

	if err := ft.fs.call("task.update"); err != nil {
		return err
	}
	c := *task
	ft.fs.lastUpdate = &c
	ft.fs.upstreams[code] = upstreamCodes
	return nil
}

type fakeExecutors struct{ fs *fakeScheduler }

func (fe fakeExecutors) Start(ctx context.Context, projectCode, processCode int64, ro model.RunOptions) error {
	if err := fe.fs.call("executor.start"); err != nil {
		return err
	}
	fe.fs.started = append(fe.fs.started, ro)
	return nil
}

type fakeSchedules struct{ fs *fakeScheduler }

func (fs fakeSchedules) Create(ctx context.Context, projectCode, processCode int64,
	sp *model.ScheduleParams) (*model.Schedule, error) {

	if err := fs.fs.call("schedule.create"); err != nil {
		return nil, err
	}
	pd := fs.fs.processByCode(processCode)
	sc := &model.Schedule{
		ID:                    fs.fs.nextID,
		ProcessDefinitionCode: processCode,
		ProcessDefinitionName: pd.Name,
	}
	fs.fs.nextID++
	applyScheduleParams(sc, sp)
	fs.fs.schedules = append(fs.fs.schedules, sc)
	return sc, nil
}

func (fs fakeSchedules) Update(ctx context.Context, projectCode int64, id int,
	sp *model.ScheduleParams) (*model.Schedule, error) {

	if err := fs.fs.call("schedule.update"); err != nil {
		return nil, err
	}
	for _, sc := range fs.fs.schedules {
		if sc.ID == id {
			applyScheduleParams(sc, sp)
			return sc, nil
		}
	}
	return nil, errors.New("schedule not found")
}

func (fs fakeSchedules) FindByExactName(ctx context.Context, projectCode, processCode int64,
	processName string) (*model.Schedule, error) {

	if err := fs.fs.call("schedule.find"); err != nil {
		return nil, err
	}
	for _, sc := range fs.fs.schedules {
		if sc.ProcessDefinitionCode == processCode && naming.Match(sc.ProcessDefinitionName, processName) {
			return sc, nil
		}
	}
	return nil, nil
}

func (fs fakeSchedules) PreviewCron(ctx context.Context, projectCode int64,
	sr *model.ScheduleRequest) ([]string, error) {

	if err := fs.fs.call("schedule.preview"); err != nil {
		return nil, err
	}
	return []string{"2026-01-01 00:00:00", "2026-01-02 00:00:00"}, nil
}

func applyScheduleParams(sc *model.Schedule, sp *model.ScheduleParams) {
	sc.StartTime = sp.Schedule.StartTime
	sc.EndTime = sp.Schedule.EndTime
	sc.Crontab = sp.Schedule.Crontab
	sc.TimezoneID = sp.Schedule.TimezoneID
	sc.FailureStrategy = sp.FailureStrategy
	sc.WarningType = sp.WarningType
	sc.WarningGroupID = sp.WarningGroupID
	sc.ProcessInstancePriority = sp.ProcessInstancePriority
	sc.WorkerGroup = sp.WorkerGroup
	sc.EnvironmentCode = sp.EnvironmentCode
}

type fakePublisher struct {
	events []*event.Event
	err    error
}

func (fp *fakePublisher) Publish(ctx context.Context, ev *event.Event) error {
	if fp.err != nil {
		return fp.err
	}
	fp.events = append(fp.events, ev)
	return nil
}

func (fp *fakePublisher) Close() error {
	return nil
}

func (fp *fakePublisher) types() []event.Type {
	types := make([]event.Type, 0, len(fp.events))
	for _, ev := range fp.events {
		types = append(types, ev.Type)
	}
	return types
}

// Catalogue of the tests: folder ETL (3) holding the task entry Load (task 42),
// a second task entry Transform (task 43) and an entry without folder
var (
	folderETL     = &catalogue.Entry{ID: 3, Name: "ETL"}
	entryLoad     = &catalogue.Entry{ID: 10, TaskID: 42, Name: "Load", ParentID: 3, Type: "FlinkSql"}
	entryXform    = &catalogue.Entry{ID: 11, TaskID: 43, Name: "Transform", ParentID: 3, Type: "FlinkSql"}
	entryOrphan   = &catalogue.Entry{ID: 12, TaskID: 44, Name: "Orphan", Type: "FlinkSql"}
	entryNoFolder = &catalogue.Entry{ID: 13, TaskID: 45, Name: "Lost", ParentID: 99, Type: "FlinkSql"}
)

type testEnv struct {
	svc   *Service
	fs    *fakeScheduler
	store *catalogue.MemoryStore
	pub   *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fs := newFakeScheduler()
	store := catalogue.NewMemoryStore(folderETL, entryLoad, entryXform, entryOrphan, entryNoFolder)
	pub := &fakePublisher{}

	svc, err := New(context.Background(), Config{
		ProjectName:  "platform",
		PlatformURL:  testPlatformURL,
		SchedulerURL: testSchedulerURL + "/",
	}, Deps{
		Catalogue: store,
		Projects:  fakeProjects{fs},
		Processes: fakeProcesses{fs},
		Tasks:     fakeTasks{fs},
		Executors: fakeExecutors{fs},
		Schedules: fakeSchedules{fs},
		Events:    pub,
	})
	require.NoError(t, err)
	fs.reset()

	return &testEnv{svc: svc, fs: fs, store: store, pub: pub}
}
