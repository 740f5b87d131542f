package controller

import (
	"context"
	"sync"

	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type pagerAPI interface {
	ListNetworks(ctx context.Context, ct types.ContentType, page, pageSize int) (*types.NetworksResponse, error)
	ListTasks(ctx context.Context, f types.TaskFilter) (*types.TasksResponse, error)
	ListGames(ctx context.Context, networkID string, page, pageSize int) (*types.GamesResponse, error)
	ListSurveys(ctx context.Context, networkID string, page, pageSize int) (*types.SurveysResponse, error)
}

type taskTracker interface {
	Track(tasks ...*types.Task) []*types.Task
}

// NetworkContent is one loaded network with its first page of content.
type NetworkContent struct {
	Network *types.Network  `json:"network"`
	Tasks   []*types.Task   `json:"tasks,omitempty"`
	Games   []*types.Game   `json:"games,omitempty"`
	Surveys []*types.Survey `json:"surveys,omitempty"`
}

type PagerView struct {
	Tab       types.ContentType `json:"tab"`
	Page      int               `json:"page"`
	HasMore   bool              `json:"has_more"`
	Loading   bool              `json:"loading"`
	EndOfList bool              `json:"end_of_list"`
	Sections  []NetworkContent  `json:"sections"`
}

type PagerSizes struct {
	Networks int
	Content  int
}

// Pager loads networks of the active tab page by page, one page in flight at a time.
type Pager struct {
	api    pagerAPI
	tasks  taskTracker
	sizes  PagerSizes
	logger *zap.Logger

	mu       sync.Mutex
	tab      types.ContentType
	page     int
	hasMore  bool
	loading  bool
	gen      uint64
	sections []NetworkContent
}

func NewPager(api pagerAPI, tasks taskTracker, sizes PagerSizes, logger *zap.Logger) *Pager {
	if sizes.Networks <= 0 {
		sizes.Networks = 5
	}
	if sizes.Content <= 0 {
		sizes.Content = 20
	}
	return &Pager{
		api:     api,
		tasks:   tasks,
		sizes:   sizes,
		logger:  logger.Named("pager"),
		tab:     types.ContentTasks,
		page:    1,
		hasMore: true,
	}
}

// SwitchTab resets the cursor and drops loaded content. A load still in flight
// for the previous tab keeps the pager busy and is discarded when it returns.
func (p *Pager) SwitchTab(tab types.ContentType) error {
	if !tab.Valid() {
		return &gateway.ValidationError{Field: "type", Message: "unknown content type " + string(tab)}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tab = tab
	p.page = 1
	p.hasMore = true
	p.sections = nil
	p.gen++
	p.logger.Debug("tab switched", zap.String("tab", string(tab)))
	return nil
}

// LoadMore fetches the next page when nearEnd is set, nothing is loading and more pages exist.
func (p *Pager) LoadMore(ctx context.Context, nearEnd bool) (PagerView, error) {
	p.mu.Lock()
	if !nearEnd || p.loading || !p.hasMore {
		v := p.view()
		p.mu.Unlock()
		return v, ErrLoadSkipped
	}
	p.loading = true
	gen, tab, page := p.gen, p.tab, p.page
	p.mu.Unlock()

	sections, more, err := p.fetch(ctx, tab, page)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if gen != p.gen {
		p.logger.Debug("stale page dropped", zap.String("tab", string(tab)), zap.Int("page", page))
		return p.view(), ErrLoadSkipped
	}
	if err != nil {
		p.logger.Warn("page load failed: ", zap.String("tab", string(tab)), zap.Int("page", page), zap.Error(err))
		return p.view(), err
	}
	if len(sections) == 0 {
		p.hasMore = false
		return p.view(), nil
	}
	for i := range sections {
		if len(sections[i].Tasks) > 0 {
			sections[i].Tasks = p.tasks.Track(sections[i].Tasks...)
		}
	}
	p.sections = append(p.sections, sections...)
	p.page++
	p.hasMore = more
	return p.view(), nil
}

func (p *Pager) fetch(ctx context.Context, tab types.ContentType, page int) ([]NetworkContent, bool, error) {
	resp, err := p.api.ListNetworks(ctx, tab, page, p.sizes.Networks)
	if err != nil {
		return nil, false, errors.Wrap(err, "api.ListNetworks failed: ")
	}
	sections := make([]NetworkContent, len(resp.Networks))
	g, gctx := errgroup.WithContext(ctx)
	for i, network := range resp.Networks {
		i := i
		sections[i].Network = network
		g.Go(func() error {
			return p.fetchContent(gctx, tab, &sections[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	return sections, resp.HasMore, nil
}

func (p *Pager) fetchContent(ctx context.Context, tab types.ContentType, section *NetworkContent) error {
	id := section.Network.ID
	switch tab {
	case types.ContentTasks:
		resp, err := p.api.ListTasks(ctx, types.TaskFilter{NetworkID: id, Page: 1, PageSize: p.sizes.Content})
		if err != nil {
			return errors.Wrap(err, "api.ListTasks failed: ")
		}
		section.Tasks = resp.Tasks
	case types.ContentGames:
		resp, err := p.api.ListGames(ctx, id, 1, p.sizes.Content)
		if err != nil {
			return errors.Wrap(err, "api.ListGames failed: ")
		}
		section.Games = resp.Games
	case types.ContentSurveys:
		resp, err := p.api.ListSurveys(ctx, id, 1, p.sizes.Content)
		if err != nil {
			return errors.Wrap(err, "api.ListSurveys failed: ")
		}
		section.Surveys = resp.Surveys
	}
	return nil
}

func (p *Pager) View() PagerView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view()
}

func (p *Pager) view() PagerView {
	sections := make([]NetworkContent, len(p.sections))
	copy(sections, p.sections)
	return PagerView{
		Tab:       p.tab,
		Page:      p.page,
		HasMore:   p.hasMore,
		Loading:   p.loading,
		EndOfList: !p.hasMore && len(p.sections) > 0,
		Sections:  sections,
	}
}
