package controller

import (
	"context"
	"testing"

	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckin(t *testing.T) {
	tests := []struct {
		name    string
		resp    *types.CheckinResponse
		kind    gateway.Kind
		version int
	}{
		{
			name:    "success",
			resp:    &types.CheckinResponse{Success: true, Bonus: 10, User: &types.UserData{UserID: 1, Streak: 3}},
			version: 1,
		},
		{
			name: "already checked",
			resp: &types.CheckinResponse{Success: false, AlreadyChecked: true},
			kind: gateway.KindAlreadyDone,
		},
		{
			name: "refused",
			resp: &types.CheckinResponse{Success: false},
			kind: gateway.KindAPI,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &UserStore{}
			api := &fakeAPI{CheckinFunc: func(ctx context.Context) (*types.CheckinResponse, error) { return tt.resp, nil }}
			p := NewProfile(api, users, zap.NewNop())

			res, err := p.Checkin(context.Background())
			require.Equal(t, tt.kind, gateway.Classify(err))
			require.Equal(t, tt.version, users.Version())
			if err == nil {
				require.Equal(t, 10, res.Bonus)
				u, _ := users.Current()
				require.Equal(t, 3, u.Streak)
			}
		})
	}
}

func TestCheckinAlreadyCheckedMessage(t *testing.T) {
	tests := []struct {
		name string
		resp *types.CheckinResponse
		want string
	}{
		{name: "server message", resp: &types.CheckinResponse{AlreadyChecked: true, Message: "Come back tomorrow"}, want: "Come back tomorrow"},
		{name: "no message", resp: &types.CheckinResponse{AlreadyChecked: true}, want: "Already checked in today"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{CheckinFunc: func(ctx context.Context) (*types.CheckinResponse, error) { return tt.resp, nil }}
			_, err := NewProfile(api, &UserStore{}, zap.NewNop()).Checkin(context.Background())
			require.Equal(t, gateway.KindAlreadyDone, gateway.Classify(err))
			require.Equal(t, tt.want, gateway.UserMessage(err))
		})
	}
}

func TestCheckinWithoutUserKeepsRecord(t *testing.T) {
	users := &UserStore{}
	users.Replace(&types.UserData{UserID: 1, Points: decimal.NewFromInt(40), Streak: 2})
	api := &fakeAPI{CheckinFunc: func(ctx context.Context) (*types.CheckinResponse, error) {
		return &types.CheckinResponse{Success: true, Bonus: 10}, nil
	}}

	res, err := NewProfile(api, users, zap.NewNop()).Checkin(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, res.Bonus)
	require.Nil(t, res.User)

	got, ok := users.Current()
	require.True(t, ok)
	require.Equal(t, "40", got.Points.String())
	require.Equal(t, 2, got.Streak)
	require.Equal(t, 1, users.Version())
}

func TestUserStoreReplace(t *testing.T) {
	users := &UserStore{}
	_, ok := users.Current()
	require.False(t, ok)

	users.Replace(nil)
	require.Zero(t, users.Version())

	u := &types.UserData{UserID: 1, Points: decimal.NewFromInt(5)}
	users.Replace(u)
	u.Points = decimal.NewFromInt(1000)

	got, ok := users.Current()
	require.True(t, ok)
	require.Equal(t, "5", got.Points.String())
}

func TestRefresh(t *testing.T) {
	users := &UserStore{}
	api := &fakeAPI{GetUserFunc: func(ctx context.Context) (*types.UserData, error) {
		return &types.UserData{UserID: 9, Level: 4}, nil
	}}
	user, err := NewProfile(api, users, zap.NewNop()).Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, user.Level)
	require.Equal(t, 1, users.Version())
}

func TestRedeem(t *testing.T) {
	redeemed := 0
	api := &fakeAPI{
		ShopRewardsFunc: func(ctx context.Context) ([]*types.ShopReward, error) {
			return []*types.ShopReward{
				{ID: "cheap", Cost: decimal.NewFromInt(50)},
				{ID: "pricey", Cost: decimal.NewFromInt(5000)},
			}, nil
		},
		RedeemFunc: func(ctx context.Context, id string) (*types.RedeemResponse, error) {
			redeemed++
			return &types.RedeemResponse{Success: true, User: &types.UserData{UserID: 1, Points: decimal.NewFromInt(50)}}, nil
		},
	}
	users := &UserStore{}
	users.Replace(&types.UserData{UserID: 1, Points: decimal.NewFromInt(100)})
	shop := NewShop(api, users, zap.NewNop())

	_, err := shop.Redeem(context.Background(), "pricey")
	require.ErrorIs(t, err, ErrInsufficientPoints)
	require.Zero(t, redeemed)

	_, err = shop.Redeem(context.Background(), "missing")
	require.ErrorIs(t, err, ErrRewardNotFound)

	_, err = shop.Redeem(context.Background(), "")
	require.Equal(t, gateway.KindValidation, gateway.Classify(err))

	user, err := shop.Redeem(context.Background(), "cheap")
	require.NoError(t, err)
	require.Equal(t, "50", user.Points.String())
	require.Equal(t, 1, redeemed)
	require.Equal(t, 2, users.Version())
}

func TestPlayGame(t *testing.T) {
	api := &fakeAPI{PlayGameFunc: func(ctx context.Context, id string) (*types.PlayGameResponse, error) {
		if id == "g1" {
			return &types.PlayGameResponse{Success: true, GameURL: "https://games.example/g1"}, nil
		}
		return &types.PlayGameResponse{Success: false, Message: "Game not found"}, nil
	}}
	games := NewGames(api)

	url, err := games.Play(context.Background(), "g1")
	require.NoError(t, err)
	require.Equal(t, "https://games.example/g1", url)

	_, err = games.Play(context.Background(), "g2")
	require.Equal(t, "Game not found", gateway.UserMessage(err))
}
