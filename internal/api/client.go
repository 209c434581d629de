package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/td0m/taskclient/pkg/task"
)

// TasksPath is the tasks resource on the backend
const TasksPath = "/v1/tasks"

// Request describes a single exchange. The zero Method is GET.
type Request struct {
	Method string
	Path   string
	// Body is encoded as JSON when not nil
	Body interface{}
}

type Options struct {
	HTTP    *http.Client
	Logger  logrus.FieldLogger
	Policy  Policy
	Metrics *Metrics
}

// Client talks JSON to the tasks backend
type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
	policy  Policy
	metrics *Metrics
}

func New(baseURL string, opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    opts.HTTP,
		log:     opts.Logger,
		policy:  opts.Policy,
		metrics: opts.Metrics,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	return c
}

func (c *Client) Policy() Policy {
	return c.policy
}

// Fetch performs req and returns the raw JSON body.
// An empty body is an empty collection. Under the Suppress policy every
// failure is logged and reported as a nil body with a nil error.
func (c *Client) Fetch(ctx context.Context, req Request) (json.RawMessage, error) {
	body, err := c.fetch(ctx, req)
	if err != nil {
		return nil, c.failed(err)
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, req Request) (json.RawMessage, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	var payload io.Reader
	if req.Body != nil {
		bs, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		payload = bytes.NewReader(bs)
	}
	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, payload)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	r.Header.Set("X-Request-ID", requestID)

	log := c.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       req.Path,
	})
	log.WithField("body", req.Body).Debug("fetching")

	start := time.Now()
	resp, err := c.http.Do(r)
	if err != nil {
		c.metrics.observe(method, "error", time.Since(start))
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}
	defer resp.Body.Close()
	c.metrics.observe(method, fmt.Sprint(resp.StatusCode), time.Since(start))
	log = log.WithField("status", resp.StatusCode)
	log.Debug("response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: req.Path, Code: resp.StatusCode, Status: resp.Status}
	}
	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	log.WithField("text", string(bs)).Debug("response text")

	if len(bytes.TrimSpace(bs)) == 0 {
		return json.RawMessage("[]"), nil
	}
	if !json.Valid(bs) {
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, ErrInvalidJSON)
	}
	return json.RawMessage(bs), nil
}

// ListTasks returns every task. A nil slice is the no-data sentinel
// of the Suppress policy, an empty one means there are no tasks.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	body, err := c.Fetch(ctx, Request{Path: TasksPath})
	if err != nil || body == nil {
		return nil, err
	}
	tasks := []task.Task{}
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, c.failed(fmt.Errorf("decoding response: %w", err))
	}
	if tasks == nil {
		// a null body decodes to nil, which would read as the sentinel
		tasks = []task.Task{}
	}
	return tasks, nil
}

// CreateTask submits t and returns what the server made of it.
// created is nil when the server did not echo the task back. ok is false
// when a failure was suppressed and nothing was created.
func (c *Client) CreateTask(ctx context.Context, t task.Task) (created *task.Task, ok bool, err error) {
	body, err := c.Fetch(ctx, Request{Method: http.MethodPost, Path: TasksPath, Body: t})
	if err != nil || body == nil {
		return nil, false, err
	}
	var echoed task.Task
	if err := json.Unmarshal(body, &echoed); err != nil {
		// acknowledgements are not always the task itself
		c.log.WithError(err).Debug("create response is not a task")
		return nil, true, nil
	}
	return &echoed, true, nil
}

// DeleteTask removes the task addressed by key. The key is path-escaped,
// so labels with spaces or slashes stay one path segment. ok is false
// when a failure was suppressed.
func (c *Client) DeleteTask(ctx context.Context, key string) (ok bool, err error) {
	body, err := c.Fetch(ctx, Request{Method: http.MethodDelete, Path: TaskPath(key)})
	return body != nil, err
}

// TaskPath is the path addressing a single task
func TaskPath(key string) string {
	return TasksPath + "/" + url.PathEscape(key)
}

// failed applies the policy to err: it is either returned or logged
// and swallowed
func (c *Client) failed(err error) error {
	if c.policy == Suppress {
		c.log.WithError(err).Warn("request failed, no data")
		return nil
	}
	return err
}
