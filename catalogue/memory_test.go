package catalogue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore(
		&Entry{ID: 3, Name: "ETL"},
		&Entry{ID: 7, TaskID: 42, Name: "Load", ParentID: 3, Type: "FlinkSql"},
	)

	ce, err := ms.GetByID(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, ce)
	assert.True(t, ce.IsFolder())

	ce, err = ms.GetByTaskID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, ce)
	assert.Equal(t, 7, ce.ID)

	// returned entries are copies
	ce.Name = "changed"
	ce, _ = ms.GetByID(ctx, 7)
	assert.Equal(t, "Load", ce.Name)

	ce, err = ms.GetByID(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, ce)

	// folders have no task id, 0 must not match them
	ce, err = ms.GetByTaskID(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, ce)
}
