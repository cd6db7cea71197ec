package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/event"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testScheduleRequest = model.ScheduleRequest{
	StartTime:  "2026-01-01 00:00:00",
	EndTime:    "2027-01-01 00:00:00",
	Crontab:    "0 0 2 * * ? *",
	TimezoneID: "Asia/Shanghai",
}

func TestSaveScheduleCreateThenUpdate(t *testing.T) {
	te := newTestEnv(t)
	pd := te.fs.addProcess("ETL:3", model.ReleaseStateOffline)

	sc, err := te.svc.SaveSchedule(context.Background(), folderETL.ID, SaveScheduleRequest{
		Schedule: testScheduleRequest,
	})
	require.NoError(t, err)
	require.NotNil(t, sc)
	assert.Equal(t, 1, te.fs.calls["schedule.create"])
	assert.Equal(t, pd.Code, sc.ProcessDefinitionCode)

	// defaults
	assert.Equal(t, model.WarningTypeNone, sc.WarningType)
	assert.Equal(t, DefaultScheduleWarningGroupID, sc.WarningGroupID)
	assert.Equal(t, model.FailureStrategyContinue, sc.FailureStrategy)
	assert.Equal(t, model.PriorityMedium, sc.ProcessInstancePriority)
	assert.Equal(t, model.DefaultWorkerGroup, sc.WorkerGroup)
	assert.Equal(t, model.NoEnvironment, sc.EnvironmentCode)

	got, err := te.svc.GetSchedule(context.Background(), folderETL.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sc.ID, got.ID)

	// update in place by the returned id
	wg := 0
	env := int64(7)
	upd := testScheduleRequest
	upd.Crontab = "0 30 3 * * ? *"
	sc2, err := te.svc.SaveSchedule(context.Background(), folderETL.ID, SaveScheduleRequest{
		ScheduleID:      sc.ID,
		Schedule:        upd,
		WarningType:     model.WarningTypeFailure,
		WarningGroupID:  &wg,
		EnvironmentCode: &env,
	})
	require.NoError(t, err)
	assert.Equal(t, sc.ID, sc2.ID)
	assert.Equal(t, 1, te.fs.calls["schedule.create"])
	assert.Equal(t, 1, te.fs.calls["schedule.update"])
	require.Len(t, te.fs.schedules, 1)
	assert.Equal(t, "0 30 3 * * ? *", te.fs.schedules[0].Crontab)
	assert.Equal(t, model.WarningTypeFailure, te.fs.schedules[0].WarningType)
	assert.Equal(t, 0, te.fs.schedules[0].WarningGroupID)
	assert.Equal(t, int64(7), te.fs.schedules[0].EnvironmentCode)

	assert.Equal(t, []event.Type{event.TypeScheduleCreated, event.TypeScheduleUpdated}, te.pub.types())
	assert.Equal(t, sc.ID, te.pub.events[1].Detail["scheduleId"])
}

func TestSaveScheduleOnlineProcess(t *testing.T) {
	te := newTestEnv(t)
	te.fs.addProcess("ETL:3", model.ReleaseStateOnline)

	for _, id := range []int{0, 1} {
		_, err := te.svc.SaveSchedule(context.Background(), folderETL.ID, SaveScheduleRequest{
			ScheduleID: id,
			Schedule:   testScheduleRequest,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, e.ErrConflict))
		assert.Equal(t, e.MsgProcessOnline, e.UserMessage(err))
	}
	assert.Equal(t, 0, te.fs.mutations())
	assert.Empty(t, te.pub.events)
}

func TestSaveScheduleInvalid(t *testing.T) {
	te := newTestEnv(t)
	te.fs.addProcess("ETL:3", model.ReleaseStateOffline)

	incomplete := testScheduleRequest
	incomplete.Crontab = ""

	tests := []struct {
		name string
		req  SaveScheduleRequest
	}{
		{name: "missing crontab", req: SaveScheduleRequest{Schedule: incomplete}},
		{name: "priority", req: SaveScheduleRequest{Schedule: testScheduleRequest, ProcessInstancePriority: "URGENT"}},
		{name: "negative id", req: SaveScheduleRequest{ScheduleID: -1, Schedule: testScheduleRequest}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te.fs.reset()
			_, err := te.svc.SaveSchedule(context.Background(), folderETL.ID, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, e.ErrConfiguration))
			assert.Equal(t, e.MsgScheduleRequestInvalid, e.UserMessage(err))
			assert.Equal(t, 0, te.fs.total())
		})
	}
}

func TestGetScheduleNone(t *testing.T) {
	te := newTestEnv(t)
	te.fs.addProcess("ETL:3", model.ReleaseStateOffline)

	sc, err := te.svc.GetSchedule(context.Background(), folderETL.ID)
	require.NoError(t, err)
	assert.Nil(t, sc)
}

func TestPreviewSchedule(t *testing.T) {
	te := newTestEnv(t)

	times, err := te.svc.PreviewSchedule(context.Background(), testScheduleRequest)
	require.NoError(t, err)
	assert.Len(t, times, 2)

	_, err = te.svc.PreviewSchedule(context.Background(), model.ScheduleRequest{Crontab: "0 0 * * * ? *"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrConfiguration))
	assert.Equal(t, 1, te.fs.calls["schedule.preview"])
}

func TestScheduleWithoutTimezone(t *testing.T) {
	te := newTestEnv(t)
	te.fs.addProcess("ETL:3", model.ReleaseStateOffline)

	noTZ := testScheduleRequest
	noTZ.TimezoneID = ""

	times, err := te.svc.PreviewSchedule(context.Background(), noTZ)
	require.NoError(t, err)
	assert.Len(t, times, 2)

	sc, err := te.svc.SaveSchedule(context.Background(), folderETL.ID, SaveScheduleRequest{Schedule: noTZ})
	require.NoError(t, err)
	assert.Empty(t, sc.TimezoneID)
	assert.Equal(t, 1, te.fs.calls["schedule.create"])
}
