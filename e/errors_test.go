package e

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNKCarriesKindAndMessage(t *testing.T) {
	err := NK(ErrConflict, "0A0201", MsgProcessOnline)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, MsgProcessOnline, UserMessage(err))
	assert.Contains(t, err.Error(), "0A0201")
}

func TestWKeepsKindAndMessage(t *testing.T) {
	err := NK(ErrNotFound, "0A0101", MsgProcessNotExists)
	err = W(err, "0A0301")
	err = W(err, "0A0401", "extra")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, MsgProcessNotExists, UserMessage(err))
	assert.Contains(t, err.Error(), "0A0401: extra")
	assert.Contains(t, err.Error(), "0A0301")

	ee := AsExtendedError(err)
	require.NotNil(t, ee)
	assert.Equal(t, "0A0101", ee.Code)
}

func TestWUnclassifiedError(t *testing.T) {
	err := W(fmt.Errorf("boom"), "040101")

	assert.False(t, errors.Is(err, ErrRemote))
	assert.Equal(t, MsgUnknownInternalServerError, UserMessage(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestRemoteErrorPassesThroughVerbatim(t *testing.T) {
	err := W(&RemoteError{Code: 10001, Message: "process definition name ETL:3 already exists"}, "040201")
	err = W(err, "0A0201")

	assert.True(t, errors.Is(err, ErrRemote))
	assert.Equal(t, "process definition name ETL:3 already exists", UserMessage(err))

	var re *RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 10001, re.Code)
}

func TestDecodeIsTransport(t *testing.T) {
	err := WK(fmt.Errorf("invalid character"), ErrDecode, "040202", MsgSchedulerBadResponse)

	assert.True(t, errors.Is(err, ErrDecode))
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Equal(t, MsgSchedulerBadResponse, UserMessage(err))
}

func TestUserMessageNil(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
}
