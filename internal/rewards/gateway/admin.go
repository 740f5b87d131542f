package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
)

func (a *API) AdminStats(ctx context.Context) (*types.AdminStats, error) {
	stats := &types.AdminStats{}
	if err := a.get(ctx, "admin/stats", nil, stats); err != nil {
		return nil, errors.Wrap(err, "admin stats failed")
	}
	return stats, nil
}

func (a *API) AdminTasks(ctx context.Context) ([]*types.AdminTask, error) {
	var tasks []*types.AdminTask
	if err := a.get(ctx, "admin/tasks", nil, &tasks); err != nil {
		return nil, errors.Wrap(err, "admin tasks failed")
	}
	return tasks, nil
}

func (a *API) AdminCreateTask(ctx context.Context, task *types.AdminTask) error {
	if err := a.send(ctx, http.MethodPost, "admin/tasks", task, nil); err != nil {
		return errors.Wrap(err, "admin create task failed")
	}
	return nil
}

func (a *API) AdminUpdateTask(ctx context.Context, id string, task *types.AdminTask) error {
	if err := a.send(ctx, http.MethodPut, "admin/tasks/"+url.PathEscape(id), task, nil); err != nil {
		return errors.Wrap(err, "admin update task failed")
	}
	return nil
}

func (a *API) AdminDeleteTask(ctx context.Context, id string) error {
	if err := a.send(ctx, http.MethodDelete, "admin/tasks/"+url.PathEscape(id), nil, nil); err != nil {
		return errors.Wrap(err, "admin delete task failed")
	}
	return nil
}

func (a *API) AdminNetworks(ctx context.Context) ([]*types.AdminNetwork, error) {
	var networks []*types.AdminNetwork
	if err := a.get(ctx, "admin/networks", nil, &networks); err != nil {
		return nil, errors.Wrap(err, "admin networks failed")
	}
	return networks, nil
}

func (a *API) AdminCreateNetwork(ctx context.Context, network *types.AdminNetwork) error {
	if err := a.send(ctx, http.MethodPost, "admin/networks", network, nil); err != nil {
		return errors.Wrap(err, "admin create network failed")
	}
	return nil
}

func (a *API) AdminUpdateNetwork(ctx context.Context, id string, network *types.AdminNetwork) error {
	if err := a.send(ctx, http.MethodPut, "admin/networks/"+url.PathEscape(id), network, nil); err != nil {
		return errors.Wrap(err, "admin update network failed")
	}
	return nil
}

func (a *API) AdminDeleteNetwork(ctx context.Context, id string) error {
	if err := a.send(ctx, http.MethodDelete, "admin/networks/"+url.PathEscape(id), nil, nil); err != nil {
		return errors.Wrap(err, "admin delete network failed")
	}
	return nil
}

func (a *API) AdminUsers(ctx context.Context, search string) ([]*types.AdminUser, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var users []*types.AdminUser
	if err := a.get(ctx, "admin/users", q, &users); err != nil {
		return nil, errors.Wrap(err, "admin users failed")
	}
	return users, nil
}

func (a *API) AdminUser(ctx context.Context, id string) (*types.AdminUser, error) {
	user := &types.AdminUser{}
	if err := a.get(ctx, "admin/users/"+url.PathEscape(id), nil, user); err != nil {
		return nil, errors.Wrap(err, "admin user failed")
	}
	return user, nil
}
