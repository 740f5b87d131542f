package controller

import (
	"context"

	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/identity"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

type adminAPI interface {
	AdminStats(ctx context.Context) (*types.AdminStats, error)
	AdminTasks(ctx context.Context) ([]*types.AdminTask, error)
	AdminCreateTask(ctx context.Context, task *types.AdminTask) error
	AdminUpdateTask(ctx context.Context, id string, task *types.AdminTask) error
	AdminDeleteTask(ctx context.Context, id string) error
	AdminNetworks(ctx context.Context) ([]*types.AdminNetwork, error)
	AdminCreateNetwork(ctx context.Context, network *types.AdminNetwork) error
	AdminUpdateNetwork(ctx context.Context, id string, network *types.AdminNetwork) error
	AdminDeleteNetwork(ctx context.Context, id string) error
	AdminUsers(ctx context.Context, search string) ([]*types.AdminUser, error)
	AdminUser(ctx context.Context, id string) (*types.AdminUser, error)
}

// Admin is the CRUD surface behind the admin screens. The identity gate only
// hides the screens; the server authorizes every call itself.
type Admin struct {
	api     adminAPI
	user    *types.Identity
	adminID int64
	logger  *zap.Logger
}

func NewAdmin(api adminAPI, user *types.Identity, adminID int64, logger *zap.Logger) *Admin {
	return &Admin{api: api, user: user, adminID: adminID, logger: logger.Named("admin")}
}

func (a *Admin) Visible() bool {
	return identity.IsAdminUI(a.user, a.adminID)
}

func (a *Admin) gate() error {
	if !a.Visible() {
		return ErrNotAdmin
	}
	return nil
}

func ValidateTask(t *types.AdminTask) error {
	switch {
	case t == nil:
		return gateway.Required("task")
	case t.NetworkID == "":
		return gateway.Required("network_id")
	case t.Title == "":
		return gateway.Required("title")
	case t.Description == "":
		return gateway.Required("description")
	case t.Points == 0:
		return gateway.Required("points")
	case t.TargetURL == "":
		return gateway.Required("target_url")
	}
	return nil
}

func ValidateNetwork(n *types.AdminNetwork) error {
	switch {
	case n == nil:
		return gateway.Required("network")
	case n.ID == "":
		return gateway.Required("id")
	case n.Name == "":
		return gateway.Required("name")
	case n.Description == "":
		return gateway.Required("description")
	}
	return nil
}

func (a *Admin) Stats(ctx context.Context) (*types.AdminStats, error) {
	if err := a.gate(); err != nil {
		return nil, err
	}
	stats, err := a.api.AdminStats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "api.AdminStats failed: ")
	}
	return stats, nil
}

func (a *Admin) Tasks(ctx context.Context) ([]*types.AdminTask, error) {
	if err := a.gate(); err != nil {
		return nil, err
	}
	tasks, err := a.api.AdminTasks(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "api.AdminTasks failed: ")
	}
	return tasks, nil
}

// SaveTask creates the task when id is empty and updates it otherwise.
func (a *Admin) SaveTask(ctx context.Context, id string, task *types.AdminTask) error {
	if err := a.gate(); err != nil {
		return err
	}
	if err := ValidateTask(task); err != nil {
		return err
	}
	if id == "" {
		if err := a.api.AdminCreateTask(ctx, task); err != nil {
			return errors.Wrap(err, "api.AdminCreateTask failed: ")
		}
		a.logger.Info("task created", zap.String("title", task.Title))
		return nil
	}
	if err := a.api.AdminUpdateTask(ctx, id, task); err != nil {
		return errors.Wrap(err, "api.AdminUpdateTask failed: ")
	}
	a.logger.Info("task updated", zap.String("task_id", id))
	return nil
}

func (a *Admin) DeleteTask(ctx context.Context, id string) error {
	if err := a.gate(); err != nil {
		return err
	}
	if id == "" {
		return gateway.Required("id")
	}
	if err := a.api.AdminDeleteTask(ctx, id); err != nil {
		return errors.Wrap(err, "api.AdminDeleteTask failed: ")
	}
	a.logger.Info("task deleted", zap.String("task_id", id))
	return nil
}

func (a *Admin) Networks(ctx context.Context) ([]*types.AdminNetwork, error) {
	if err := a.gate(); err != nil {
		return nil, err
	}
	networks, err := a.api.AdminNetworks(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "api.AdminNetworks failed: ")
	}
	return networks, nil
}

// SaveNetwork creates the network when id is empty and updates it otherwise.
func (a *Admin) SaveNetwork(ctx context.Context, id string, network *types.AdminNetwork) error {
	if err := a.gate(); err != nil {
		return err
	}
	if id != "" && network != nil && network.ID == "" {
		network.ID = id
	}
	if err := ValidateNetwork(network); err != nil {
		return err
	}
	if id == "" {
		if err := a.api.AdminCreateNetwork(ctx, network); err != nil {
			return errors.Wrap(err, "api.AdminCreateNetwork failed: ")
		}
		a.logger.Info("network created", zap.String("network_id", network.ID))
		return nil
	}
	if err := a.api.AdminUpdateNetwork(ctx, id, network); err != nil {
		return errors.Wrap(err, "api.AdminUpdateNetwork failed: ")
	}
	a.logger.Info("network updated", zap.String("network_id", id))
	return nil
}

func (a *Admin) DeleteNetwork(ctx context.Context, id string) error {
	if err := a.gate(); err != nil {
		return err
	}
	if id == "" {
		return gateway.Required("id")
	}
	if err := a.api.AdminDeleteNetwork(ctx, id); err != nil {
		return errors.Wrap(err, "api.AdminDeleteNetwork failed: ")
	}
	a.logger.Info("network deleted", zap.String("network_id", id))
	return nil
}

func (a *Admin) Users(ctx context.Context, search string) ([]*types.AdminUser, error) {
	if err := a.gate(); err != nil {
		return nil, err
	}
	users, err := a.api.AdminUsers(ctx, search)
	if err != nil {
		return nil, errors.Wrap(err, "api.AdminUsers failed: ")
	}
	return users, nil
}

func (a *Admin) User(ctx context.Context, id string) (*types.AdminUser, error) {
	if err := a.gate(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, gateway.Required("id")
	}
	user, err := a.api.AdminUser(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "api.AdminUser failed: ")
	}
	return user, nil
}
