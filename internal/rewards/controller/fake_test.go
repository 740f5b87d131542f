package controller

import (
	"context"

	"github.com/SakuraBurst/rewards/internal/rewards/types"
)

type fakeAPI struct {
	GetUserFunc      func(ctx context.Context) (*types.UserData, error)
	CheckinFunc      func(ctx context.Context) (*types.CheckinResponse, error)
	ListTasksFunc    func(ctx context.Context, f types.TaskFilter) (*types.TasksResponse, error)
	StartTaskFunc    func(ctx context.Context, id string) (*types.StartTaskResponse, error)
	CheckTaskFunc    func(ctx context.Context, id string, v map[string]any) (*types.TaskCheckResponse, error)
	SpinFunc         func(ctx context.Context) (*types.SpinResponse, error)
	ListNetworksFunc func(ctx context.Context, ct types.ContentType, page, size int) (*types.NetworksResponse, error)
	ListGamesFunc    func(ctx context.Context, networkID string, page, size int) (*types.GamesResponse, error)
	ListSurveysFunc  func(ctx context.Context, networkID string, page, size int) (*types.SurveysResponse, error)
	PlayGameFunc     func(ctx context.Context, id string) (*types.PlayGameResponse, error)
	ShopRewardsFunc  func(ctx context.Context) ([]*types.ShopReward, error)
	RedeemFunc       func(ctx context.Context, id string) (*types.RedeemResponse, error)
}

func (f *fakeAPI) GetUser(ctx context.Context) (*types.UserData, error) { return f.GetUserFunc(ctx) }
func (f *fakeAPI) Checkin(ctx context.Context) (*types.CheckinResponse, error) {
	return f.CheckinFunc(ctx)
}
func (f *fakeAPI) Leaderboard(context.Context, int) ([]*types.LeaderboardEntry, error) {
	return nil, nil
}
func (f *fakeAPI) Referrals(context.Context) (*types.ReferralsResponse, error) {
	return &types.ReferralsResponse{}, nil
}
func (f *fakeAPI) History(context.Context, int, int) (*types.HistoryResponse, error) {
	return &types.HistoryResponse{}, nil
}
func (f *fakeAPI) ListTasks(ctx context.Context, filter types.TaskFilter) (*types.TasksResponse, error) {
	return f.ListTasksFunc(ctx, filter)
}
func (f *fakeAPI) StartTask(ctx context.Context, id string) (*types.StartTaskResponse, error) {
	return f.StartTaskFunc(ctx, id)
}
func (f *fakeAPI) CheckTask(ctx context.Context, id string, v map[string]any) (*types.TaskCheckResponse, error) {
	return f.CheckTaskFunc(ctx, id, v)
}
func (f *fakeAPI) Spin(ctx context.Context) (*types.SpinResponse, error) { return f.SpinFunc(ctx) }
func (f *fakeAPI) ListNetworks(ctx context.Context, ct types.ContentType, page, size int) (*types.NetworksResponse, error) {
	return f.ListNetworksFunc(ctx, ct, page, size)
}
func (f *fakeAPI) ListGames(ctx context.Context, networkID string, page, size int) (*types.GamesResponse, error) {
	return f.ListGamesFunc(ctx, networkID, page, size)
}
func (f *fakeAPI) ListSurveys(ctx context.Context, networkID string, page, size int) (*types.SurveysResponse, error) {
	return f.ListSurveysFunc(ctx, networkID, page, size)
}
func (f *fakeAPI) PlayGame(ctx context.Context, id string) (*types.PlayGameResponse, error) {
	return f.PlayGameFunc(ctx, id)
}
func (f *fakeAPI) ShopRewards(ctx context.Context) ([]*types.ShopReward, error) {
	return f.ShopRewardsFunc(ctx)
}
func (f *fakeAPI) Redeem(ctx context.Context, id string) (*types.RedeemResponse, error) {
	return f.RedeemFunc(ctx, id)
}
