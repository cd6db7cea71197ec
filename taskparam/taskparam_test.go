package taskparam

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/scheduler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformJob(t *testing.T) {
	raw, err := Build(model.TaskTypePlatformJob, Input{Address: "http://platform:8888", TaskID: 42})
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":"http://platform:8888","taskId":"42","localParams":[],"resourceList":[]}`, string(raw))

	p := &PlatformJobParams{}
	require.NoError(t, json.Unmarshal(raw, p))
	assert.Equal(t, "42", p.TaskID)
	assert.Equal(t, "http://platform:8888", p.Address)
}

func TestSubWorkflow(t *testing.T) {
	raw, err := Build(model.TaskTypeSubWorkflow, Input{ProcessCode: 9876543210})
	require.NoError(t, err)
	assert.JSONEq(t, `{"processDefinitionCode":9876543210}`, string(raw))

	p := &SubWorkflowParams{}
	require.NoError(t, json.Unmarshal(raw, p))
	assert.Equal(t, int64(9876543210), p.ProcessDefinitionCode)
}

func TestBuildUnknownType(t *testing.T) {
	for _, tt := range []model.TaskType{"", "SHELL", "dinky"} {
		raw, err := Build(tt, Input{TaskID: 1})
		require.Error(t, err, tt)
		assert.Nil(t, raw)
		assert.True(t, errors.Is(err, e.ErrConfiguration))
	}
}
