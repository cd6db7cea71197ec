// Package scheduler talks to the workflow scheduler's HTTP API. Every call
// returns the scheduler's result envelope, which is unwrapped into the
// expected payload or turned into an error.
//
// Basic usage:
//
//	c, err := scheduler.NewClient(scheduler.Config{
//		URL:   "http://127.0.0.1:12345/dolphinscheduler",
//		Token: "token",
//	})
//	if err != nil {
//		return err
//	}
//
//	p, err := c.Projects().Resolve(ctx, "platform")
package scheduler

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/go-resty/resty/v2"
)

const (
	ECode040101 = e.Code0401 + "01"
)

const (
	// DefaultTimeout per request timeout if none is configured
	DefaultTimeout = 5 * time.Second
	// TokenHeader the header the static access token is sent in
	TokenHeader = "token"
	// MaxPageSize the page size sent on list calls, so a list is a single page
	MaxPageSize = math.MaxInt32
)

// Config connection settings of the scheduler. It is immutable once the client
// is created
type Config struct {
	// URL the base URL of the scheduler API, i.e. http://host:12345/dolphinscheduler
	URL string
	// Token static access token
	Token string
	// Timeout per request, defaults to DefaultTimeout
	Timeout time.Duration
}

// Client scheduler API client. It is safe for concurrent use
type Client struct {
	cfg  Config
	http *resty.Client

	projects  *ProjectClient
	processes *ProcessClient
	tasks     *TaskClient
	executors *ExecutorClient
	schedules *ScheduleClient
}

// NewClient returns a new scheduler client
func NewClient(cfg Config) (c *Client, err error) {
	cfg.URL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if cfg.URL == "" {
		return nil, e.NK(e.ErrConfiguration, ECode040101, "scheduler url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c = &Client{
		cfg: cfg,
		http: resty.New().
			SetBaseURL(cfg.URL).
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", "application/json").
			SetHeader(TokenHeader, cfg.Token),
	}
	c.projects = &ProjectClient{c: c}
	c.processes = &ProcessClient{c: c}
	c.tasks = &TaskClient{c: c}
	c.executors = &ExecutorClient{c: c}
	c.schedules = &ScheduleClient{c: c}

	return c, nil
}

// URL returns the base URL of the scheduler
func (c *Client) URL() string {
	return c.cfg.URL
}

// Projects returns the project client
func (c *Client) Projects() *ProjectClient {
	return c.projects
}

// Processes returns the process definition/instance client
func (c *Client) Processes() *ProcessClient {
	return c.processes
}

// Tasks returns the task definition client
func (c *Client) Tasks() *TaskClient {
	return c.tasks
}

// Executors returns the executor client
func (c *Client) Executors() *ExecutorClient {
	return c.executors
}

// Schedules returns the schedule client
func (c *Client) Schedules() *ScheduleClient {
	return c.schedules
}

// projectPath builds /projects/{projectCode}/<parts...>
func projectPath(projectCode int64, parts ...interface{}) string {
	var sb strings.Builder
	_, _ = sb.WriteString(fmt.Sprintf("/projects/%d", projectCode))
	for _, p := range parts {
		_, _ = sb.WriteString(fmt.Sprintf("/%v", p))
	}

	return sb.String()
}
