package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/SakuraBurst/rewards/internal/rewards/config"
	"github.com/SakuraBurst/rewards/internal/rewards/controller"
	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/identity"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session owns the controllers of one opened mini-app view.
type Session struct {
	ID    string
	User  *types.Identity
	Admin bool

	Users   *controller.UserStore
	Profile *controller.Profile
	Tasks   *controller.Tasks
	Pager   *controller.Pager
	Shop    *controller.Shop
	Games   *controller.Games
	Console *controller.Admin

	api      *gateway.API
	spinOpts []controller.SpinOption
	logger   *zap.Logger

	mu   sync.Mutex
	spin *controller.Spin

	lastSeen atomic.Int64
}

func New(client *gateway.Client, state identity.State, cfg *config.Config, logger *zap.Logger) *Session {
	id := uuid.New().String()
	log := logger.With(zap.String("session_id", id))
	if state.User != nil {
		log = log.With(zap.Int64("user_id", state.User.ID))
	}
	api := gateway.NewAPI(client, state.Token)
	users := &controller.UserStore{}
	tasks := controller.NewTasks(api, users, log)

	s := &Session{
		ID:      id,
		User:    state.User,
		Admin:   identity.IsAdminUI(state.User, cfg.Identity.AdminID),
		Users:   users,
		Profile: controller.NewProfile(api, users, log),
		Tasks:   tasks,
		Pager: controller.NewPager(api, tasks, controller.PagerSizes{
			Networks: cfg.Content.NetworkPageSize,
			Content:  cfg.Content.ContentPageSize,
		}, log),
		Shop:    controller.NewShop(api, users, log),
		Games:   controller.NewGames(api),
		Console: controller.NewAdmin(api, state.User, cfg.Identity.AdminID, log),
		api:     api,
		spinOpts: []controller.SpinOption{
			controller.WithDuration(cfg.Spin.Duration),
			controller.WithTurns(cfg.Spin.Turns),
		},
		logger: log,
	}
	s.Touch(time.Now())
	return s
}

// OpenSpin starts a fresh widget opening, closing the previous one if any.
func (s *Session) OpenSpin() *controller.Spin {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.spin != nil {
		s.spin.Close()
	}
	s.spin = controller.NewSpin(s.api, s.Users, s.logger, s.spinOpts...)
	return s.spin
}

func (s *Session) Spin() (*controller.Spin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spin, s.spin != nil
}

func (s *Session) CloseSpin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.spin != nil {
		s.spin.Close()
		s.spin = nil
	}
}

func (s *Session) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}
