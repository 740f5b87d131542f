package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
)

type caller interface {
	Call(ctx context.Context, r Request, out any) error
}

// API binds the client to one identity token.
type API struct {
	client caller
	token  string
}

func NewAPI(client caller, token string) *API {
	return &API{client: client, token: token}
}

func (a *API) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	return a.client.Call(ctx, Request{Method: http.MethodGet, Endpoint: endpoint, Query: query, Token: a.token}, out)
}

func (a *API) send(ctx context.Context, method, endpoint string, body, out any) error {
	if body == nil {
		body = struct{}{}
	}
	return a.client.Call(ctx, Request{Method: method, Endpoint: endpoint, Body: body, Token: a.token}, out)
}

func (a *API) GetUser(ctx context.Context) (*types.UserData, error) {
	user := &types.UserData{}
	if err := a.get(ctx, "user", nil, user); err != nil {
		return nil, errors.Wrap(err, "get user failed")
	}
	return user, nil
}

func (a *API) Checkin(ctx context.Context) (*types.CheckinResponse, error) {
	resp := &types.CheckinResponse{}
	if err := a.send(ctx, http.MethodPost, "checkin", nil, resp); err != nil {
		return nil, errors.Wrap(err, "checkin failed")
	}
	return resp, nil
}

func (a *API) ListTasks(ctx context.Context, f types.TaskFilter) (*types.TasksResponse, error) {
	q := url.Values{}
	if f.NetworkID != "" {
		q.Set("networkId", f.NetworkID)
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	resp := &types.TasksResponse{}
	if err := a.get(ctx, "tasks", q, resp); err != nil {
		return nil, errors.Wrap(err, "list tasks failed")
	}
	return resp, nil
}

func (a *API) StartTask(ctx context.Context, taskID string) (*types.StartTaskResponse, error) {
	resp := &types.StartTaskResponse{}
	if err := a.send(ctx, http.MethodPost, "task/start", types.TaskRequest{TaskID: taskID}, resp); err != nil {
		return nil, errors.Wrap(err, "start task failed")
	}
	return resp, nil
}

func (a *API) CheckTask(ctx context.Context, taskID string, verification map[string]any) (*types.TaskCheckResponse, error) {
	resp := &types.TaskCheckResponse{}
	req := types.TaskRequest{TaskID: taskID, VerificationData: verification}
	if err := a.send(ctx, http.MethodPost, "task/check", req, resp); err != nil {
		return nil, errors.Wrap(err, "check task failed")
	}
	return resp, nil
}

func (a *API) Spin(ctx context.Context) (*types.SpinResponse, error) {
	resp := &types.SpinResponse{}
	if err := a.send(ctx, http.MethodPost, "spin", nil, resp); err != nil {
		return nil, errors.Wrap(err, "spin failed")
	}
	return resp, nil
}

func (a *API) Leaderboard(ctx context.Context, limit int) ([]*types.LeaderboardEntry, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	resp := &types.LeaderboardResponse{}
	if err := a.get(ctx, "leaderboard", q, resp); err != nil {
		return nil, errors.Wrap(err, "leaderboard failed")
	}
	return resp.Leaderboard, nil
}

func pageQuery(networkID string, page, pageSize int) url.Values {
	q := url.Values{}
	if networkID != "" {
		q.Set("networkId", networkID)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return q
}

func (a *API) ListNetworks(ctx context.Context, ct types.ContentType, page, pageSize int) (*types.NetworksResponse, error) {
	q := pageQuery("", page, pageSize)
	q.Set("type", string(ct))
	resp := &types.NetworksResponse{}
	if err := a.get(ctx, "networks", q, resp); err != nil {
		return nil, errors.Wrap(err, "list networks failed")
	}
	return resp, nil
}

func (a *API) ListGames(ctx context.Context, networkID string, page, pageSize int) (*types.GamesResponse, error) {
	resp := &types.GamesResponse{}
	if err := a.get(ctx, "games", pageQuery(networkID, page, pageSize), resp); err != nil {
		return nil, errors.Wrap(err, "list games failed")
	}
	return resp, nil
}

func (a *API) ListSurveys(ctx context.Context, networkID string, page, pageSize int) (*types.SurveysResponse, error) {
	resp := &types.SurveysResponse{}
	if err := a.get(ctx, "surveys", pageQuery(networkID, page, pageSize), resp); err != nil {
		return nil, errors.Wrap(err, "list surveys failed")
	}
	return resp, nil
}

func (a *API) PlayGame(ctx context.Context, gameID string) (*types.PlayGameResponse, error) {
	resp := &types.PlayGameResponse{}
	body := map[string]string{"game_id": gameID}
	if err := a.send(ctx, http.MethodPost, "game/play", body, resp); err != nil {
		return nil, errors.Wrap(err, "play game failed")
	}
	return resp, nil
}

func (a *API) ShopRewards(ctx context.Context) ([]*types.ShopReward, error) {
	resp := &types.ShopRewardsResponse{}
	if err := a.get(ctx, "shop/rewards", nil, resp); err != nil {
		return nil, errors.Wrap(err, "shop rewards failed")
	}
	return resp.Rewards, nil
}

func (a *API) Redeem(ctx context.Context, rewardID string) (*types.RedeemResponse, error) {
	resp := &types.RedeemResponse{}
	body := map[string]string{"reward_id": rewardID}
	if err := a.send(ctx, http.MethodPost, "shop/redeem", body, resp); err != nil {
		return nil, errors.Wrap(err, "redeem failed")
	}
	return resp, nil
}

func (a *API) Referrals(ctx context.Context) (*types.ReferralsResponse, error) {
	resp := &types.ReferralsResponse{}
	if err := a.get(ctx, "referrals", nil, resp); err != nil {
		return nil, errors.Wrap(err, "referrals failed")
	}
	return resp, nil
}

func (a *API) History(ctx context.Context, limit, offset int) (*types.HistoryResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	resp := &types.HistoryResponse{}
	if err := a.get(ctx, "history", q, resp); err != nil {
		return nil, errors.Wrap(err, "history failed")
	}
	return resp, nil
}
