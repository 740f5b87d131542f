package controller

import (
	"context"
	"sync"
	"testing"

	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pageLog struct {
	mu    sync.Mutex
	pages []int
}

func (l *pageLog) add(page int) {
	l.mu.Lock()
	l.pages = append(l.pages, page)
	l.mu.Unlock()
}

func (l *pageLog) get() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.pages...)
}

func networksAPI(log *pageLog, pages map[int]*types.NetworksResponse) *fakeAPI {
	return &fakeAPI{
		ListNetworksFunc: func(ctx context.Context, ct types.ContentType, page, size int) (*types.NetworksResponse, error) {
			log.add(page)
			if resp, ok := pages[page]; ok {
				return resp, nil
			}
			return &types.NetworksResponse{}, nil
		},
		ListTasksFunc: func(ctx context.Context, f types.TaskFilter) (*types.TasksResponse, error) {
			return &types.TasksResponse{Tasks: []*types.Task{{ID: f.NetworkID + "-task", NetworkID: f.NetworkID}}}, nil
		},
		ListGamesFunc: func(ctx context.Context, networkID string, page, size int) (*types.GamesResponse, error) {
			return &types.GamesResponse{Games: []*types.Game{{ID: networkID + "-game"}}}, nil
		},
		ListSurveysFunc: func(ctx context.Context, networkID string, page, size int) (*types.SurveysResponse, error) {
			return &types.SurveysResponse{}, nil
		},
	}
}

func TestPagerStopsWhenNoMore(t *testing.T) {
	log := &pageLog{}
	api := networksAPI(log, map[int]*types.NetworksResponse{
		1: {Networks: []*types.Network{{ID: "n1"}, {ID: "n2"}}, HasMore: true},
		2: {Networks: []*types.Network{{ID: "n3"}}, HasMore: false},
	})
	tasks := NewTasks(api, &UserStore{}, zap.NewNop())
	p := NewPager(api, tasks, PagerSizes{Networks: 2, Content: 20}, zap.NewNop())

	_, err := p.LoadMore(context.Background(), false)
	require.ErrorIs(t, err, ErrLoadSkipped)
	require.Empty(t, log.get())

	v, err := p.LoadMore(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, v.Sections, 2)
	require.Equal(t, "n1", v.Sections[0].Network.ID)
	require.Equal(t, "n1-task", v.Sections[0].Tasks[0].ID)
	require.False(t, v.EndOfList)

	v, err = p.LoadMore(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, v.Sections, 3)
	require.True(t, v.EndOfList)
	require.False(t, v.HasMore)

	_, err = p.LoadMore(context.Background(), true)
	require.ErrorIs(t, err, ErrLoadSkipped)
	require.Equal(t, []int{1, 2}, log.get())

	_, ok := tasks.Task("n3-task")
	require.True(t, ok)
}

func TestPagerFailureKeepsCursor(t *testing.T) {
	log := &pageLog{}
	fail := true
	api := networksAPI(log, nil)
	api.ListNetworksFunc = func(ctx context.Context, ct types.ContentType, page, size int) (*types.NetworksResponse, error) {
		log.add(page)
		if fail {
			return nil, &gateway.RequestError{Status: 500, Message: "Request failed with status 500", Kind: gateway.KindAPI}
		}
		return &types.NetworksResponse{Networks: []*types.Network{{ID: "n1"}}, HasMore: true}, nil
	}
	p := NewPager(api, NewTasks(api, &UserStore{}, zap.NewNop()), PagerSizes{}, zap.NewNop())

	v, err := p.LoadMore(context.Background(), true)
	require.Equal(t, gateway.KindAPI, gateway.Classify(err))
	require.Equal(t, 1, v.Page)
	require.False(t, v.Loading)

	fail = false
	v, err = p.LoadMore(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, 2, v.Page)
	require.Equal(t, []int{1, 1}, log.get())
}

func TestPagerContentFailureKeepsCursor(t *testing.T) {
	log := &pageLog{}
	api := networksAPI(log, map[int]*types.NetworksResponse{
		1: {Networks: []*types.Network{{ID: "n1"}, {ID: "n2"}}, HasMore: true},
	})
	api.ListTasksFunc = func(ctx context.Context, f types.TaskFilter) (*types.TasksResponse, error) {
		if f.NetworkID == "n2" {
			return nil, &gateway.RequestError{Message: "timeout", Kind: gateway.KindTransport}
		}
		return &types.TasksResponse{}, nil
	}
	p := NewPager(api, NewTasks(api, &UserStore{}, zap.NewNop()), PagerSizes{}, zap.NewNop())

	v, err := p.LoadMore(context.Background(), true)
	require.Equal(t, gateway.KindTransport, gateway.Classify(err))
	require.Empty(t, v.Sections)
	require.Equal(t, 1, v.Page)
}

func TestPagerSwitchTab(t *testing.T) {
	log := &pageLog{}
	api := networksAPI(log, map[int]*types.NetworksResponse{
		1: {Networks: []*types.Network{{ID: "n1"}}, HasMore: false},
	})
	p := NewPager(api, NewTasks(api, &UserStore{}, zap.NewNop()), PagerSizes{}, zap.NewNop())

	v, err := p.LoadMore(context.Background(), true)
	require.NoError(t, err)
	require.True(t, v.EndOfList)

	require.NoError(t, p.SwitchTab(types.ContentGames))
	v = p.View()
	require.Equal(t, types.ContentGames, v.Tab)
	require.Equal(t, 1, v.Page)
	require.True(t, v.HasMore)
	require.Empty(t, v.Sections)

	v, err = p.LoadMore(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, "n1-game", v.Sections[0].Games[0].ID)
	require.Equal(t, []int{1, 1}, log.get())

	err = p.SwitchTab("videos")
	require.Equal(t, gateway.KindValidation, gateway.Classify(err))
}

func TestPagerDropsStaleLoad(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	api := networksAPI(&pageLog{}, nil)
	api.ListNetworksFunc = func(ctx context.Context, ct types.ContentType, page, size int) (*types.NetworksResponse, error) {
		if ct == types.ContentTasks {
			close(entered)
			<-release
		}
		return &types.NetworksResponse{Networks: []*types.Network{{ID: string(ct)}}, HasMore: true}, nil
	}
	p := NewPager(api, NewTasks(api, &UserStore{}, zap.NewNop()), PagerSizes{}, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := p.LoadMore(context.Background(), true)
		done <- err
	}()
	<-entered
	require.NoError(t, p.SwitchTab(types.ContentSurveys))
	require.True(t, p.View().Loading)

	_, err := p.LoadMore(context.Background(), true)
	require.ErrorIs(t, err, ErrLoadSkipped)

	close(release)
	require.ErrorIs(t, <-done, ErrLoadSkipped)

	v := p.View()
	require.False(t, v.Loading)
	require.Empty(t, v.Sections)
	require.Equal(t, 1, v.Page)

	v, err = p.LoadMore(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, types.ContentSurveys, v.Tab)
	require.Len(t, v.Sections, 1)
	require.Equal(t, string(types.ContentSurveys), v.Sections[0].Network.ID)
}

func TestPagerEmptyPage(t *testing.T) {
	api := networksAPI(&pageLog{}, nil)
	p := NewPager(api, NewTasks(api, &UserStore{}, zap.NewNop()), PagerSizes{}, zap.NewNop())

	v, err := p.LoadMore(context.Background(), true)
	require.NoError(t, err)
	require.False(t, v.HasMore)
	require.False(t, v.EndOfList)
}
