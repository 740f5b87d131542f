package controller

import (
	"context"
	"sync"

	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
	"github.com/puzpuzpuz/xsync"
	"go.uber.org/zap"
)

type taskAPI interface {
	ListTasks(ctx context.Context, f types.TaskFilter) (*types.TasksResponse, error)
	StartTask(ctx context.Context, taskID string) (*types.StartTaskResponse, error)
	CheckTask(ctx context.Context, taskID string, verification map[string]any) (*types.TaskCheckResponse, error)
}

type CheckResult struct {
	TaskID    string          `json:"task_id"`
	Completed bool            `json:"completed"`
	Points    int             `json:"points,omitempty"`
	Message   string          `json:"message,omitempty"`
	User      *types.UserData `json:"user,omitempty"`
}

// TaskView is a task plus everything the view needs to render its card.
type TaskView struct {
	*types.Task
	Template     types.TaskTemplate `json:"template"`
	Verification types.Verification `json:"verification"`
	Affordance   types.Affordance   `json:"affordance"`
	Checking     bool               `json:"checking"`
}

// Tasks drives tasks through available -> in_progress -> completed.
// Start and check are guarded per task id; different ids never block each other.
type Tasks struct {
	api    taskAPI
	users  *UserStore
	logger *zap.Logger

	mu    sync.RWMutex
	tasks map[string]*types.Task
	order []string

	starting *xsync.MapOf[string, struct{}]
	checking *xsync.MapOf[string, struct{}]
}

func NewTasks(api taskAPI, users *UserStore, logger *zap.Logger) *Tasks {
	return &Tasks{
		api:      api,
		users:    users,
		logger:   logger.Named("tasks"),
		tasks:    make(map[string]*types.Task),
		starting: xsync.NewMapOf[struct{}](),
		checking: xsync.NewMapOf[struct{}](),
	}
}

func (c *Tasks) LoadTasks(ctx context.Context, filter types.TaskFilter) ([]*types.Task, bool, error) {
	resp, err := c.api.ListTasks(ctx, filter)
	if err != nil {
		return nil, false, errors.Wrap(err, "api.ListTasks failed: ")
	}
	return c.Track(resp.Tasks...), resp.HasMore, nil
}

// Lookup pages through the server's task list until id shows up.
func (c *Tasks) Lookup(ctx context.Context, id string, pageSize int) (*types.Task, error) {
	for page := 1; ; page++ {
		_, more, err := c.LoadTasks(ctx, types.TaskFilter{Page: page, PageSize: pageSize})
		if err != nil {
			return nil, err
		}
		if t, ok := c.Task(id); ok {
			return t, nil
		}
		if !more {
			return nil, ErrTaskNotFound
		}
	}
}

// Track registers tasks reported by the server. A task already completed
// locally stays completed.
func (c *Tasks) Track(tasks ...*types.Task) []*types.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*types.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil || t.ID == "" {
			continue
		}
		cp := *t
		prev, ok := c.tasks[t.ID]
		if !ok {
			c.order = append(c.order, t.ID)
		} else if prev.Status == types.StatusCompleted {
			cp.Status = types.StatusCompleted
		}
		c.tasks[t.ID] = &cp
		view := cp
		out = append(out, &view)
	}
	return out
}

func (c *Tasks) Task(id string) (*types.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tasks[id]
	if !ok {
		return nil, false
	}
	cp := *t
	return &cp, true
}

func (c *Tasks) Snapshot() []*types.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*types.Task, 0, len(c.order))
	for _, id := range c.order {
		cp := *c.tasks[id]
		out = append(out, &cp)
	}
	return out
}

func (c *Tasks) IsChecking(id string) bool {
	_, ok := c.checking.Load(id)
	return ok
}

func (c *Tasks) View(t *types.Task) TaskView {
	v, err := types.DecodeVerification(t)
	if err != nil {
		c.logger.Warn("types.DecodeVerification failed: ", zap.String("task_id", t.ID), zap.Error(err))
	}
	return TaskView{
		Task:         t,
		Template:     types.TemplateFor(t.Type),
		Verification: v,
		Affordance:   t.Affordance(),
		Checking:     c.IsChecking(t.ID),
	}
}

func (c *Tasks) status(id string) (types.TaskStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tasks[id]
	if !ok {
		return "", false
	}
	return t.EffectiveStatus(), true
}

// advance moves id from one of the allowed statuses to next; anything else is left alone.
func (c *Tasks) advance(id string, next types.TaskStatus, from ...types.TaskStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tasks[id]
	if !ok {
		return
	}
	for _, s := range from {
		if t.EffectiveStatus() == s {
			t.Status = next
			return
		}
	}
}

func (c *Tasks) StartTask(ctx context.Context, id string) (*types.Task, error) {
	if _, busy := c.starting.LoadOrStore(id, struct{}{}); busy {
		return nil, ErrStartInFlight
	}
	defer c.starting.Delete(id)

	status, ok := c.status(id)
	if !ok {
		return nil, ErrTaskNotFound
	}
	if status != types.StatusAvailable {
		return nil, ErrTaskNotStartable
	}

	resp, err := c.api.StartTask(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "api.StartTask failed: ")
	}
	if resp.Rejected() {
		msg := resp.Message
		if msg == "" {
			msg = "Failed to start task"
		}
		return nil, &gateway.RequestError{Message: msg, Kind: gateway.KindAPI}
	}

	c.advance(id, types.StatusInProgress, types.StatusAvailable)
	c.logger.Debug("task started", zap.String("task_id", id))
	t, _ := c.Task(id)
	return t, nil
}

func (c *Tasks) CheckTask(ctx context.Context, id string, verification map[string]any) (*CheckResult, error) {
	if _, busy := c.checking.LoadOrStore(id, struct{}{}); busy {
		return nil, ErrCheckInFlight
	}
	defer c.checking.Delete(id)

	status, ok := c.status(id)
	if !ok {
		return nil, ErrTaskNotFound
	}
	if status != types.StatusInProgress && status != types.StatusVerifying {
		return nil, ErrTaskNotCheckable
	}

	resp, err := c.api.CheckTask(ctx, id, verification)
	if err != nil {
		return nil, errors.Wrap(err, "api.CheckTask failed: ")
	}

	if !resp.Success || !resp.Completed {
		msg := resp.Message
		if msg == "" {
			msg = "Task is not completed yet"
		}
		c.logger.Debug("task not completed", zap.String("task_id", id), zap.String("message", msg))
		return &CheckResult{TaskID: id, Message: msg}, nil
	}

	c.advance(id, types.StatusCompleted, types.StatusInProgress, types.StatusVerifying)
	c.users.Replace(resp.User)
	c.logger.Debug("task completed", zap.String("task_id", id), zap.Int("points", resp.Points))
	return &CheckResult{
		TaskID:    id,
		Completed: true,
		Points:    resp.Points,
		Message:   resp.Message,
		User:      resp.User,
	}, nil
}
