package controller

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

type SpinPhase string

const (
	PhaseIdle        SpinPhase = "idle"
	PhaseRequesting  SpinPhase = "requesting"
	PhaseAnimating   SpinPhase = "animating"
	PhaseSettled     SpinPhase = "settled"
	PhaseAlreadySpun SpinPhase = "already_spun"
	PhaseError       SpinPhase = "error"
	PhaseClosed      SpinPhase = "closed"
)

// Terminal reports whether no further transition can happen in this opening.
func (p SpinPhase) Terminal() bool {
	switch p {
	case PhaseSettled, PhaseAlreadySpun, PhaseError, PhaseClosed:
		return true
	}
	return false
}

type SpinState struct {
	Phase         SpinPhase       `json:"phase"`
	Rotation      float64         `json:"rotation"`
	WonAmount     *int            `json:"won_amount,omitempty"`
	DisplayedSlot int             `json:"displayed_slot"`
	Message       string          `json:"message,omitempty"`
	User          *types.UserData `json:"user,omitempty"`
}

type spinAPI interface {
	Spin(ctx context.Context) (*types.SpinResponse, error)
}

type SpinOption func(*Spin)

func WithClock(now func() time.Time) SpinOption {
	return func(s *Spin) { s.now = now }
}

// WithRandom sets the source of the extra rotation, a value in [0, 1).
func WithRandom(rnd func() float64) SpinOption {
	return func(s *Spin) { s.rnd = rnd }
}

func WithDuration(d time.Duration) SpinOption {
	return func(s *Spin) {
		if d > 0 {
			s.duration = d
		}
	}
}

func WithTurns(turns int) SpinOption {
	return func(s *Spin) {
		if turns > 0 {
			s.turns = turns
		}
	}
}

const (
	defaultSpinDuration = 3 * time.Second
	defaultSpinTurns    = 8
)

// Spin is the daily wheel for one opening of the widget. The reward call is
// issued at most once per Spin value; reopening means building a new one.
type Spin struct {
	api    spinAPI
	users  *UserStore
	logger *zap.Logger

	now      func() time.Time
	rnd      func() float64
	duration time.Duration
	turns    int

	mu        sync.Mutex
	phase     SpinPhase
	rotation  float64
	from      float64
	target    float64
	startedAt time.Time
	won       *int
	award     *types.UserData
	published bool
	message   string

	done      chan struct{}
	closeOnce sync.Once
}

func NewSpin(api spinAPI, users *UserStore, logger *zap.Logger, opts ...SpinOption) *Spin {
	s := &Spin{
		api:      api,
		users:    users,
		logger:   logger.Named("spin"),
		now:      time.Now,
		rnd:      rand.Float64,
		duration: defaultSpinDuration,
		turns:    defaultSpinTurns,
		phase:    PhaseIdle,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spin issues the reward call. Only the first call from idle reaches the network.
func (s *Spin) Spin(ctx context.Context) (SpinState, error) {
	s.mu.Lock()
	if s.phase != PhaseIdle {
		st := s.snapshot()
		s.mu.Unlock()
		if st.Phase == PhaseClosed {
			return st, ErrSpinClosed
		}
		return st, ErrSpinNotAllowed
	}
	s.phase = PhaseRequesting
	s.mu.Unlock()

	s.logger.Debug("spin requested")
	resp, err := s.api.Spin(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseClosed {
		// ответ пришёл после закрытия, состояние уже выброшено
		s.logger.Debug("spin response after close dropped")
		if err != nil {
			return s.snapshot(), errors.Wrap(err, "api.Spin failed: ")
		}
		return s.snapshot(), ErrSpinClosed
	}

	switch {
	case err != nil:
		s.phase = PhaseError
		s.message = gateway.UserMessage(err)
		s.logger.Warn("api.Spin failed: ", zap.Error(err))
		return s.snapshot(), errors.Wrap(err, "api.Spin failed: ")
	case resp.AlreadySpun:
		s.phase = PhaseAlreadySpun
		s.message = resp.Message
		if s.message == "" {
			s.message = "You have already spun today. Come back tomorrow!"
		}
		return s.snapshot(), &gateway.AlreadyDoneError{Action: "spin", Message: s.message}
	case !resp.Success:
		s.phase = PhaseError
		s.message = resp.Message
		if s.message == "" {
			s.message = "Spin failed"
		}
		return s.snapshot(), &gateway.RequestError{Message: s.message, Kind: gateway.KindAPI}
	}

	won := resp.Bonus
	s.won = &won
	s.award = resp.User
	s.from = s.rotation
	s.target = s.from + float64(s.turns)*360 + s.rnd()*360
	s.startedAt = s.now()
	s.phase = PhaseAnimating
	s.logger.Debug("spin animating", zap.Int("bonus", won), zap.Float64("target", s.target))
	return s.snapshot(), nil
}

// Frame advances the animation to now and returns the state to draw.
func (s *Spin) Frame(now time.Time) SpinState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseAnimating {
		return s.snapshot()
	}
	elapsed := now.Sub(s.startedAt)
	if elapsed >= s.duration {
		s.rotation = s.target
		s.settle()
		return s.snapshot()
	}
	p := float64(elapsed) / float64(s.duration)
	s.rotation = s.from + (s.target-s.from)*easeOutCubic(p)
	return s.snapshot()
}

func (s *Spin) settle() {
	s.phase = PhaseSettled
	if !s.published {
		s.published = true
		s.users.Replace(s.award)
	}
	s.logger.Debug("spin settled", zap.Int("slot", SlotAt(s.rotation)))
}

// Animate emits frames every interval until the wheel settles, ctx is done or the widget is closed.
func (s *Spin) Animate(ctx context.Context, interval time.Duration) <-chan SpinState {
	out := make(chan SpinState, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
			}
			st := s.Frame(s.now())
			if st.Phase == PhaseClosed {
				return
			}
			select {
			case out <- st:
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
			if st.Phase != PhaseAnimating {
				return
			}
		}
	}()
	return out
}

func (s *Spin) State() SpinState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Close discards the state. A request already sent is left to finish on its own.
func (s *Spin) Close() {
	s.mu.Lock()
	s.phase = PhaseClosed
	s.rotation, s.from, s.target = 0, 0, 0
	s.won = nil
	s.award = nil
	s.message = ""
	s.mu.Unlock()
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Spin) snapshot() SpinState {
	st := SpinState{
		Phase:         s.phase,
		Rotation:      s.rotation,
		DisplayedSlot: SlotAt(s.rotation),
		Message:       s.message,
	}
	if s.won != nil {
		won := *s.won
		st.WonAmount = &won
	}
	if s.phase == PhaseSettled && s.award != nil {
		u := *s.award
		st.User = &u
	}
	return st
}
