package controller

import (
	"context"
	"sync"

	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

type shopAPI interface {
	ShopRewards(ctx context.Context) ([]*types.ShopReward, error)
	Redeem(ctx context.Context, rewardID string) (*types.RedeemResponse, error)
}

type Shop struct {
	api    shopAPI
	users  *UserStore
	logger *zap.Logger

	mu      sync.RWMutex
	rewards map[string]*types.ShopReward
}

func NewShop(api shopAPI, users *UserStore, logger *zap.Logger) *Shop {
	return &Shop{api: api, users: users, logger: logger.Named("shop"), rewards: make(map[string]*types.ShopReward)}
}

func (s *Shop) Rewards(ctx context.Context) ([]*types.ShopReward, error) {
	rewards, err := s.api.ShopRewards(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "api.ShopRewards failed: ")
	}
	s.mu.Lock()
	s.rewards = make(map[string]*types.ShopReward, len(rewards))
	for _, r := range rewards {
		s.rewards[r.ID] = r
	}
	s.mu.Unlock()
	return rewards, nil
}

func (s *Shop) reward(ctx context.Context, id string) (*types.ShopReward, error) {
	s.mu.RLock()
	r, ok := s.rewards[id]
	s.mu.RUnlock()
	if ok {
		return r, nil
	}
	if _, err := s.Rewards(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok = s.rewards[id]; !ok {
		return nil, ErrRewardNotFound
	}
	return r, nil
}

// Redeem refuses locally when the known balance is below the cost; the server has the final say otherwise.
func (s *Shop) Redeem(ctx context.Context, rewardID string) (*types.UserData, error) {
	if rewardID == "" {
		return nil, gateway.Required("reward_id")
	}
	reward, err := s.reward(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if user, ok := s.users.Current(); ok && user.Points.LessThan(reward.Cost) {
		return nil, ErrInsufficientPoints
	}

	resp, err := s.api.Redeem(ctx, rewardID)
	if err != nil {
		return nil, errors.Wrap(err, "api.Redeem failed: ")
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Redeem failed"
		}
		return nil, &gateway.RequestError{Message: msg, Kind: gateway.KindAPI}
	}
	s.users.Replace(resp.User)
	s.logger.Debug("reward redeemed", zap.String("reward_id", rewardID), zap.String("cost", reward.Cost.String()))
	return resp.User, nil
}
