package naming

import (
	"errors"
	"testing"

	"github.com/Skyrin/go-dsbridge/catalogue"
	"github.com/Skyrin/go-dsbridge/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	parent := &catalogue.Entry{ID: 3, Name: "ETL"}
	entry := &catalogue.Entry{ID: 7, TaskID: 42, Name: "Load", ParentID: 3, Type: "FlinkSql"}

	n, err := Resolve(entry, parent)
	require.NoError(t, err)
	assert.Equal(t, Names{Process: "ETL:3", Task: "Load:42"}, n)

	// deterministic
	n2, err := Resolve(entry, parent)
	require.NoError(t, err)
	assert.Equal(t, n, n2)

	assert.Equal(t, "Load:42", UpstreamExclusionKey(entry))
	assert.Equal(t, "ETL:3", FolderProcessName(parent))
}

func TestResolveMissingParentDirectory(t *testing.T) {
	entry := &catalogue.Entry{ID: 7, TaskID: 42, Name: "Load", Type: "FlinkSql"}

	_, err := Resolve(entry, &catalogue.Entry{ID: 3, Name: "ETL"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrConfiguration))
	assert.Equal(t, e.MsgCatalogueMissingParent, e.UserMessage(err))
}

func TestResolveParentNotFound(t *testing.T) {
	entry := &catalogue.Entry{ID: 7, TaskID: 42, Name: "Load", ParentID: 3}

	_, err := Resolve(entry, nil)
	assert.True(t, errors.Is(err, e.ErrNotFound))

	_, err = Resolve(nil, nil)
	assert.True(t, errors.Is(err, e.ErrNotFound))
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("ETL:3", "etl:3"))
	assert.True(t, Match("Load:42", "LOAD:42"))
	assert.False(t, Match("ETL:3", "ETL:30"))
	assert.False(t, Match("ETL:3", "ETL:3 "))
}
