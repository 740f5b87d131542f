package controller

import (
	"context"
	"sync"

	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

type profileAPI interface {
	GetUser(ctx context.Context) (*types.UserData, error)
	Checkin(ctx context.Context) (*types.CheckinResponse, error)
	Leaderboard(ctx context.Context, limit int) ([]*types.LeaderboardEntry, error)
	Referrals(ctx context.Context) (*types.ReferralsResponse, error)
	History(ctx context.Context, limit, offset int) (*types.HistoryResponse, error)
}

// UserStore holds the single shared UserData record. It is only ever replaced
// as a whole with a server response.
type UserStore struct {
	mu      sync.RWMutex
	current *types.UserData
	version int
}

func (s *UserStore) Current() (*types.UserData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	u := *s.current
	return &u, true
}

// Replace swaps the whole record. A nil record keeps the previous one:
// a success reply without user data carries nothing to replace it with.
func (s *UserStore) Replace(u *types.UserData) {
	if u == nil {
		return
	}
	cp := *u
	s.mu.Lock()
	s.current = &cp
	s.version++
	s.mu.Unlock()
}

// Version grows by one per Replace.
func (s *UserStore) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

type CheckinResult struct {
	Bonus int             `json:"bonus"`
	User  *types.UserData `json:"user"`
}

type Profile struct {
	api    profileAPI
	users  *UserStore
	logger *zap.Logger
}

func NewProfile(api profileAPI, users *UserStore, logger *zap.Logger) *Profile {
	return &Profile{api: api, users: users, logger: logger.Named("profile")}
}

func (p *Profile) Refresh(ctx context.Context) (*types.UserData, error) {
	user, err := p.api.GetUser(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "api.GetUser failed: ")
	}
	p.users.Replace(user)
	return user, nil
}

func (p *Profile) Checkin(ctx context.Context) (*CheckinResult, error) {
	resp, err := p.api.Checkin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "api.Checkin failed: ")
	}
	if resp.AlreadyChecked {
		msg := resp.Message
		if msg == "" {
			msg = "Already checked in today"
		}
		return nil, &gateway.AlreadyDoneError{Action: "checkin", Message: msg}
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Check-in failed"
		}
		return nil, &gateway.RequestError{Message: msg, Kind: gateway.KindAPI}
	}
	p.users.Replace(resp.User)
	p.logger.Debug("checked in", zap.Int("bonus", resp.Bonus))
	return &CheckinResult{Bonus: resp.Bonus, User: resp.User}, nil
}

func (p *Profile) Leaderboard(ctx context.Context, limit int) ([]*types.LeaderboardEntry, error) {
	entries, err := p.api.Leaderboard(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "api.Leaderboard failed: ")
	}
	return entries, nil
}

func (p *Profile) Referrals(ctx context.Context) (*types.ReferralsResponse, error) {
	resp, err := p.api.Referrals(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "api.Referrals failed: ")
	}
	return resp, nil
}

func (p *Profile) History(ctx context.Context, limit, offset int) (*types.HistoryResponse, error) {
	resp, err := p.api.History(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "api.History failed: ")
	}
	return resp, nil
}
