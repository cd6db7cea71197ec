package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Skyrin/go-dsbridge/config"
	"github.com/Skyrin/go-dsbridge/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// downURL returns the address of a scheduler that refuses connections
func downURL(t *testing.T) string {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	return srv.URL + "/dolphinscheduler"
}

func setSchedulerEnv(t *testing.T, url string) {
	t.Setenv("DSBRIDGE_SCHEDULER_URL", url)
	t.Setenv("DSBRIDGE_SCHEDULER_TOKEN", "test-token")
	t.Setenv("DSBRIDGE_SCHEDULER_PROJECTNAME", "platform")
	t.Setenv("DSBRIDGE_SCHEDULER_PLATFORMURL", "http://platform:8888")
}

func TestNewAppSchedulerDown(t *testing.T) {
	setSchedulerEnv(t, downURL(t))

	var (
		a   *app
		err error
	)
	require.NotPanics(t, func() {
		a, err = newApp(context.Background(), "", false)
	})
	require.Error(t, err)
	assert.Nil(t, a)
	assert.True(t, errors.Is(err, e.ErrTransport))
	assert.Equal(t, e.MsgSchedulerUnavailable, e.UserMessage(err))
}

func TestNewAppInvalidConfig(t *testing.T) {
	setSchedulerEnv(t, "")

	a, err := newApp(context.Background(), "", false)
	require.Error(t, err)
	assert.Nil(t, a)
	assert.True(t, errors.Is(err, e.ErrConfiguration))
}

func TestCloseNilApp(t *testing.T) {
	var a *app
	assert.NotPanics(t, a.close)

	closed := []int{}
	a = &app{closers: []func() error{
		func() error {
			closed = append(closed, 1)
			return nil
		},
		func() error {
			closed = append(closed, 2)
			return errors.New("already closed")
		},
	}}
	a.close()
	assert.Equal(t, []int{2, 1}, closed)
	assert.Empty(t, a.closers)
}

func projectsServer(t *testing.T, items string) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/projects" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"code":0,"msg":"success","success":true,"failed":false,
			"data":{"totalList":%s,"total":1,"currentPage":1,"pageSize":10,"totalPage":1}}`, items)
	}))
	t.Cleanup(srv.Close)

	return srv.URL + "/"
}

func TestProbe(t *testing.T) {
	sc := config.Scheduler{Token: "test-token", ProjectName: "platform"}

	tests := []struct {
		name    string
		url     string
		ok      bool
		message string
	}{
		{name: "found", url: projectsServer(t, `[{"code":11,"name":"platform"}]`), ok: true},
		{name: "missing project", url: projectsServer(t, `[{"code":10,"name":"platform-old"}]`),
			message: e.MsgProjectNotExists},
		{name: "scheduler down", url: downURL(t), message: e.MsgSchedulerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc.URL = tt.url
			res := probe(context.Background(), sc)
			assert.Equal(t, tt.ok, res["ok"])
			if tt.ok {
				assert.NotNil(t, res["project"])
				assert.NotContains(t, res, "error")
				return
			}
			assert.Equal(t, tt.message, res["error"])
		})
	}
}

func TestProbeCommandReportsFailure(t *testing.T) {
	setSchedulerEnv(t, downURL(t))

	out := &bytes.Buffer{}
	root := rootCmd()
	root.SetArgs([]string{"probe"})
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	require.NoError(t, root.Execute())

	res := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, false, res["ok"])
	assert.Equal(t, e.MsgSchedulerUnavailable, res["error"])
}
