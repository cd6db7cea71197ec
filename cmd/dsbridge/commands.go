package main

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/Skyrin/go-dsbridge/config"
	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/reconcile"
	"github.com/Skyrin/go-dsbridge/scheduler"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	ECode0C0201 = e.Code0C02 + "01"
	ECode0C0202 = e.Code0C02 + "02"
	ECode0C0203 = e.Code0C02 + "03"
	ECode0C0204 = e.Code0C02 + "04"
)

// runFunc the body of a command, given the wired service
type runFunc func(ctx context.Context, svc *reconcile.Service, args []string) (interface{}, error)

// run wires the service, runs the command body and prints its result
func run(configPath *string, needsCatalogue bool, fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), *configPath, needsCatalogue)
		if err != nil {
			return err
		}
		defer a.close()

		res, err := fn(cmd.Context(), a.svc, args)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), res)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return e.W(err, ECode0C0201)
	}

	return nil
}

// codeArg parses the positional argument as a scheduler code
func codeArg(args []string, i int, name string) (int64, error) {
	code, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil {
		return 0, e.WK(err, e.ErrConfiguration, ECode0C0204, "invalid "+name+": "+args[i])
	}

	return code, nil
}

// intArg parses the positional argument as an id
func intArg(args []string, i int, name string) (int, error) {
	id, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, e.WK(err, e.ErrConfiguration, ECode0C0202, "invalid "+name+": "+args[i])
	}

	return id, nil
}

func probeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Checks the scheduler is reachable and the project exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), probe(cmd.Context(), cfg.Scheduler))
		},
	}
}

// probe looks the project up with a bare scheduler client, failures are
// reported in the result instead of returned
func probe(ctx context.Context, sc config.Scheduler) map[string]interface{} {
	res := map[string]interface{}{"ok": false}

	client, err := scheduler.NewClient(sc.ClientConfig())
	if err != nil {
		res["error"] = e.UserMessage(err)
		return res
	}

	p, err := client.Projects().GetByName(ctx, sc.ProjectName)
	switch {
	case err != nil:
		log.Warn().Err(err).Msgf("[%s]scheduler probe failed", ECode0C0203)
		res["error"] = e.UserMessage(err)
	case p == nil:
		res["error"] = e.MsgProjectNotExists
	default:
		res["ok"] = true
		res["project"] = p
	}

	return res
}

func processesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "processes",
		Short: "Lists the process definitions of the project",
		Args:  cobra.NoArgs,
		RunE: run(configPath, false, func(ctx context.Context, svc *reconcile.Service,
			args []string) (interface{}, error) {

			return svc.ListProcesses(ctx)
		}),
	}
}

func previewCmd(configPath *string) *cobra.Command {
	sr := model.ScheduleRequest{}
	cmd := &cobra.Command{
		Use:   "preview <crontab>",
		Short: "Shows the next fire times of a cron expression",
		Args:  cobra.ExactArgs(1),
		RunE: run(configPath, false, func(ctx context.Context, svc *reconcile.Service,
			args []string) (interface{}, error) {

			sr.Crontab = args[0]
			return svc.PreviewSchedule(ctx, sr)
		}),
	}
	addScheduleFlags(cmd, &sr)

	return cmd
}

func releaseCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "release <catalogueId> <ONLINE|OFFLINE>",
		Short:     "Brings the process definition of a folder online or offline",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(model.ReleaseStateOnline), string(model.ReleaseStateOffline)},
		RunE: run(configPath, true, func(ctx context.Context, svc *reconcile.Service,
			args []string) (interface{}, error) {

			id, err := intArg(args, 0, "catalogueId")
			if err != nil {
				return nil, err
			}
			state := model.ReleaseState(args[1])
			if err := svc.SetReleaseState(ctx, id, state); err != nil {
				return nil, err
			}

			return map[string]interface{}{"catalogueId": id, "releaseState": state}, nil
		}),
	}
}

func startCmd(configPath *string) *cobra.Command {
	ro := model.RunOptions{}
	var env int64
	cmd := &cobra.Command{
		Use:   "start <catalogueId>",
		Short: "Starts an instance of the process definition of a folder",
		Args:  cobra.ExactArgs(1),
		RunE: run(configPath, true, func(ctx context.Context, svc *reconcile.Service,
			args []string) (interface{}, error) {

			id, err := intArg(args, 0, "catalogueId")
			if err != nil {
				return nil, err
			}
			if env != model.NoEnvironment {
				ro.EnvironmentCode = &env
			}
			if err := svc.StartProcess(ctx, id, ro); err != nil {
				return nil, err
			}

			return map[string]interface{}{"catalogueId": id, "started": true}, nil
		}),
	}
	f := cmd.Flags()
	f.StringVar((*string)(&ro.FailureStrategy), "failure-strategy", string(model.FailureStrategyContinue), "CONTINUE or END")
	f.StringVar((*string)(&ro.WarningType), "warning-type", string(model.WarningTypeNone), "NONE, SUCCESS, FAILURE or ALL")
	f.StringVar((*string)(&ro.ExecType), "exec-type", "", "command type, i.e. START_PROCESS")
	f.StringVar((*string)(&ro.ProcessInstancePriority), "priority", "", "HIGHEST, HIGH, MEDIUM, LOW or LOWEST")
	f.StringVar(&ro.WorkerGroup, "worker-group", "", "worker group, default by default")
	f.Int64Var(&env, "environment", model.NoEnvironment, "environment code")
	f.StringVar(&ro.ScheduleTime, "schedule-time", "", "schedule time of a complement run")
	f.StringVar(&ro.StartParams, "start-params", "", "start parameters, JSON encoded")
	f.IntVar(&ro.DryRun, "dry-run", 0, "1 to dry run")

	return cmd
}

func instancesCmd(configPath *string) *cobra.Command {
	filter := model.InstanceFilter{}
	cmd := &cobra.Command{
		Use:   "instances <catalogueId>",
		Short: "Lists the instances of the process definition of a folder",
		Args:  cobra.ExactArgs(1),
		RunE: run(configPath, true, func(ctx context.Context, svc *reconcile.Service,
			args []string) (interface{}, error) {

			id, err := intArg(args, 0, "catalogueId")
			if err != nil {
				return nil, err
			}

			return svc.ListInstances(ctx, id, filter)
		}),
	}
	f := cmd.Flags()
	f.StringVar(&filter.SearchVal, "search", "", "instance name filter")
	f.StringVar(&filter.ExecutorName, "executor", "", "executor name filter")
	f.StringVar(&filter.StateType, "state", "", "execution status filter, i.e. SUCCESS")
	f.StringVar(&filter.Host, "host", "", "host filter")
	f.StringVar(&filter.StartDate, "start-date", "", "started after, yyyy-MM-dd HH:mm:ss")
	f.StringVar(&filter.EndDate, "end-date", "", "started before, yyyy-MM-dd HH:mm:ss")
	f.IntVar(&filter.PageNo, "page", 0, "page number")
	f.IntVar(&filter.PageSize, "page-size", 0, "page size")

	return cmd
}

func scheduleCmd(configPath *string) *cobra.Command {
	req := reconcile.SaveScheduleRequest{}
	var save bool
	cmd := &cobra.Command{
		Use:   "schedule <catalogueId>",
		Short: "Shows, or with --save creates/updates, the schedule of a folder's process definition",
		Args:  cobra.ExactArgs(1),
		RunE: run(configPath, true, func(ctx context.Context, svc *reconcile.Service,
			args []string) (interface{}, error) {

			id, err := intArg(args, 0, "catalogueId")
			if err != nil {
				return nil, err
			}
			if !save {
				return svc.GetSchedule(ctx, id)
			}

			return svc.SaveSchedule(ctx, id, req)
		}),
	}
	f := cmd.Flags()
	f.BoolVar(&save, "save", false, "create the schedule, or update it when --id is given")
	f.IntVar(&req.ScheduleID, "id", 0, "id of the schedule to update")
	f.StringVar(&req.Schedule.Crontab, "crontab", "", "cron expression")
	f.StringVar((*string)(&req.FailureStrategy), "failure-strategy", "", "CONTINUE or END")
	f.StringVar((*string)(&req.WarningType), "warning-type", "", "NONE, SUCCESS, FAILURE or ALL")
	f.StringVar((*string)(&req.ProcessInstancePriority), "priority", "", "HIGHEST, HIGH, MEDIUM, LOW or LOWEST")
	f.StringVar(&req.WorkerGroup, "worker-group", "", "worker group, default by default")
	addScheduleFlags(cmd, &req.Schedule)

	return cmd
}

func taskCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Shows, creates or updates the task definition of a platform task",
	}
	cmd.AddCommand(
		taskGetCmd(configPath),
		taskCreateCmd(configPath),
		taskUpdateCmd(configPath),
	)

	return cmd
}

func taskGetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <platformTaskId>",
		Short: "Shows the task definition of a platform task",
		Args:  cobra.ExactArgs(1),
		RunE: run(configPath, true, func(ctx context.Context, svc *reconcile.Service,
			args []string) (interface{}, error) {

			id, err := intArg(args, 0, "platformTaskId")
			if err != nil {
				return nil, err
			}

			return svc.GetTaskDefinition(ctx, id)
		}),
	}
}

func taskCreateCmd(configPath *string) *cobra.Command {
	req := reconcile.CreateTaskRequest{}
	cmd := &cobra.Command{
		Use: "create <platformTaskId>",
		Short: "Creates the task definition of a platform task, and the process " +
			"definition of its folder if it does not exist yet",
		Args: cobra.ExactArgs(1),
		RunE: run(configPath, true, func(ctx context.Context, svc *reconcile.Service,
			args []string) (interface{}, error) {

			id, err := intArg(args, 0, "platformTaskId")
			if err != nil {
				return nil, err
			}
			req.PlatformTaskID = id

			return svc.CreateTaskDefinition(ctx, req)
		}),
	}
	bindCreateFlags(cmd, &req)

	return cmd
}

func taskUpdateCmd(configPath *string) *cobra.Command {
	req := reconcile.UpdateTaskRequest{}
	cmd := &cobra.Command{
		Use:   "update <processCode> <taskCode>",
		Short: "Updates the settings and upstream tasks of a platform job task definition",
		Args:  cobra.ExactArgs(2),
		RunE: run(configPath, false, func(ctx context.Context, svc *reconcile.Service,
			args []string) (interface{}, error) {

			var err error
			if req.ProcessCode, err = codeArg(args, 0, "processCode"); err != nil {
				return nil, err
			}
			if req.TaskCode, err = codeArg(args, 1, "taskCode"); err != nil {
				return nil, err
			}
			if err := svc.UpdateTaskDefinition(ctx, req); err != nil {
				return nil, err
			}

			return map[string]interface{}{"processCode": req.ProcessCode, "taskCode": req.TaskCode,
				"updated": true}, nil
		}),
	}
	f := cmd.Flags()
	f.Int64SliceVar(&req.UpstreamCodes, "upstream", nil, "codes of the tasks to run after, comma separated")
	addTaskFlags(cmd, &req.Task)

	return cmd
}

// bindCreateFlags binds the flags of task create to the request
func bindCreateFlags(cmd *cobra.Command, req *reconcile.CreateTaskRequest) {
	f := cmd.Flags()
	f.StringVar((*string)(&req.TaskType), "type", string(model.TaskTypePlatformJob), "DINKY or SUB_PROCESS")
	f.Int64Var(&req.SubProcessCode, "sub-process", 0, "code of the process definition a SUB_PROCESS task runs")
	f.Int64SliceVar(&req.UpstreamCodes, "upstream", nil, "codes of the tasks to run after, comma separated")
	addTaskFlags(cmd, &req.Task)
}

// addTaskFlags binds the caller supplied settings of a task definition
func addTaskFlags(cmd *cobra.Command, tr *model.TaskRequest) {
	f := cmd.Flags()
	f.StringVar(&tr.Description, "description", "", "task description")
	f.StringVar(&tr.Flag, "flag", "YES", "YES to run the task, NO to skip it")
	f.StringVar((*string)(&tr.TaskPriority), "priority", string(model.PriorityMedium), "HIGHEST, HIGH, MEDIUM, LOW or LOWEST")
	f.StringVar(&tr.WorkerGroup, "worker-group", model.DefaultWorkerGroup, "worker group")
	f.Int64Var(&tr.EnvironmentCode, "environment", model.NoEnvironment, "environment code")
	f.IntVar(&tr.FailRetryTimes, "retry-times", 0, "retries on failure")
	f.IntVar(&tr.FailRetryInterval, "retry-interval", 1, "minutes between retries")
	f.StringVar(&tr.TimeoutFlag, "timeout-flag", "CLOSE", "OPEN to enable the timeout")
	f.StringVar(&tr.TimeoutNotifyStrategy, "timeout-notify", "", "WARN, FAILED or WARNFAILED")
	f.IntVar(&tr.Timeout, "timeout", 0, "timeout in minutes")
	f.IntVar(&tr.DelayTime, "delay", 0, "delay in minutes before the task runs")
}

func upstreamCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "upstream <platformTaskId>",
		Short: "Lists the tasks a platform task can run after",
		Args:  cobra.ExactArgs(1),
		RunE: run(configPath, true, func(ctx context.Context, svc *reconcile.Service,
			args []string) (interface{}, error) {

			id, err := intArg(args, 0, "platformTaskId")
			if err != nil {
				return nil, err
			}

			return svc.ListUpstreamTasks(ctx, id)
		}),
	}
}

// addScheduleFlags binds the time window flags of a schedule
func addScheduleFlags(cmd *cobra.Command, sr *model.ScheduleRequest) {
	f := cmd.Flags()
	f.StringVar(&sr.StartTime, "start", "", "start of the schedule, yyyy-MM-dd HH:mm:ss")
	f.StringVar(&sr.EndTime, "end", "", "end of the schedule, yyyy-MM-dd HH:mm:ss")
	f.StringVar(&sr.TimezoneID, "timezone", "", "timezone id, i.e. Asia/Shanghai, the scheduler's own when empty")
}
