package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/rs/zerolog/log"
)

const (
	ECode040201 = e.Code0402 + "01"
	ECode040202 = e.Code0402 + "02"
	ECode040203 = e.Code0402 + "03"
	ECode040204 = e.Code0402 + "04"
	ECode040205 = e.Code0402 + "05"
	ECode040206 = e.Code0402 + "06"
)

// Result the scheduler's result envelope. Success is a pointer so an absent
// flag can be told apart from false
type Result struct {
	Code    int             `json:"code"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
	Success *bool           `json:"success"`
	Failed  bool            `json:"failed"`
}

// IsFailure returns true if the envelope reports a failure, i.e. failed is set
// or success is present and false
func (r *Result) IsFailure() bool {
	if r.Failed {
		return true
	}

	return r.Success != nil && !*r.Success
}

// Page paged payload of list calls
type Page[T any] struct {
	TotalList   []T `json:"totalList"`
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPage   int `json:"totalPage"`
}

// call sends one request and unwraps the data of the result envelope into T.
// Params are sent as the query string for GET and as a form body otherwise.
// The request is detached from the caller's cancellation, it runs to
// completion or timeout
func call[T any](ctx context.Context, c *Client, method, path string,
	params url.Values) (out T, err error) {

	req := c.http.R().SetContext(context.WithoutCancel(ctx))
	if len(params) > 0 {
		if method == http.MethodGet {
			req.SetQueryParamsFromValues(params)
		} else {
			req.SetFormDataFromValues(params)
		}
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	log.Debug().Msgf("scheduler %s %s (%s)", method, path, time.Since(start))
	if err != nil {
		return out, e.WK(err, e.ErrTransport, ECode040201,
			e.MsgSchedulerUnavailable)
	}

	res := &Result{}
	if err := json.Unmarshal(resp.Body(), res); err != nil {
		return out, e.WK(err, e.ErrDecode, ECode040202,
			fmt.Sprintf("%s (status %d)", e.MsgSchedulerBadResponse, resp.StatusCode()))
	}

	if res.IsFailure() {
		re := &e.RemoteError{Code: res.Code, Message: res.Msg}
		log.Warn().Msgf("[%s] scheduler %s %s failed, code: %d, msg: %s",
			ECode040203, method, path, res.Code, res.Msg)
		return out, e.WK(re, e.ErrRemote, ECode040203, res.Msg)
	}

	if resp.IsError() {
		re := &e.RemoteError{Code: resp.StatusCode(), Message: resp.Status()}
		if res.Msg != "" {
			re.Message = res.Msg
		}
		return out, e.WK(re, e.ErrRemote, ECode040204, re.Message)
	}

	if len(res.Data) == 0 || bytes.Equal(res.Data, []byte("null")) {
		return out, nil
	}

	if err := json.Unmarshal(res.Data, &out); err != nil {
		return out, e.WK(err, e.ErrDecode, ECode040205, e.MsgSchedulerBadResponse)
	}

	return out, nil
}

// callPage calls a list endpoint and returns the page's items. Unless the
// caller set them, the first page of MaxPageSize items is requested. An absent
// page or item list is returned as an empty slice
func callPage[T any](ctx context.Context, c *Client, path string,
	params url.Values) (list []T, err error) {

	if params == nil {
		params = url.Values{}
	}
	if params.Get("pageNo") == "" {
		params.Set("pageNo", "1")
	}
	if params.Get("pageSize") == "" {
		params.Set("pageSize", strconv.Itoa(MaxPageSize))
	}

	p, err := call[*Page[T]](ctx, c, http.MethodGet, path, params)
	if err != nil {
		return nil, e.W(err, ECode040206)
	}

	if p == nil || p.TotalList == nil {
		return []T{}, nil
	}

	return p.TotalList, nil
}
