package controller

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func spinReturning(calls *atomic.Int32, resp *types.SpinResponse, err error) *fakeAPI {
	return &fakeAPI{
		SpinFunc: func(ctx context.Context) (*types.SpinResponse, error) {
			calls.Add(1)
			return resp, err
		},
	}
}

func TestSpinSettlesOnServerAmount(t *testing.T) {
	var calls atomic.Int32
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	users := &UserStore{}
	api := spinReturning(&calls, &types.SpinResponse{
		Success: true,
		Bonus:   75,
		User:    &types.UserData{UserID: 1, Points: decimal.NewFromInt(175)},
	}, nil)
	s := NewSpin(api, users, zap.NewNop(),
		WithClock(clock.Now),
		WithRandom(func() float64 { return 0.1 }),
		WithDuration(3*time.Second),
		WithTurns(8),
	)

	st, err := s.Spin(context.Background())
	require.NoError(t, err)
	require.Equal(t, PhaseAnimating, st.Phase)
	require.Equal(t, 75, *st.WonAmount)
	require.Zero(t, users.Version())

	mid := s.Frame(start.Add(1500 * time.Millisecond))
	require.Equal(t, PhaseAnimating, mid.Phase)
	target := 8*360 + 36.0
	require.InDelta(t, target*easeOutCubic(0.5), mid.Rotation, 1e-9)
	require.Nil(t, mid.User)

	end := s.Frame(start.Add(3 * time.Second))
	require.Equal(t, PhaseSettled, end.Phase)
	require.InDelta(t, target, end.Rotation, 1e-9)
	// слот на колесе косметический, сумма всегда от сервера
	require.NotEqual(t, 75, WheelSlots[end.DisplayedSlot])
	require.Equal(t, 75, *end.WonAmount)
	require.Equal(t, "175", end.User.Points.String())

	s.Frame(start.Add(4 * time.Second))
	require.Equal(t, 1, users.Version())

	_, err = s.Spin(context.Background())
	require.ErrorIs(t, err, ErrSpinNotAllowed)
	require.EqualValues(t, 1, calls.Load())
}

func TestSpinTwiceIssuesOneCall(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	api := &fakeAPI{
		SpinFunc: func(ctx context.Context) (*types.SpinResponse, error) {
			calls.Add(1)
			<-release
			return &types.SpinResponse{Success: true, Bonus: 10}, nil
		},
	}
	s := NewSpin(api, &UserStore{}, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := s.Spin(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return s.State().Phase == PhaseRequesting }, time.Second, time.Millisecond)

	st, err := s.Spin(context.Background())
	require.ErrorIs(t, err, ErrSpinNotAllowed)
	require.Equal(t, PhaseRequesting, st.Phase)

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, PhaseAnimating, s.State().Phase)
	require.EqualValues(t, 1, calls.Load())
}

func TestSpinAlreadySpunThenReopen(t *testing.T) {
	var calls atomic.Int32
	api := spinReturning(&calls, &types.SpinResponse{Success: false, AlreadySpun: true}, nil)
	users := &UserStore{}

	s := NewSpin(api, users, zap.NewNop())
	st, err := s.Spin(context.Background())
	require.Equal(t, gateway.KindAlreadyDone, gateway.Classify(err))
	require.Equal(t, PhaseAlreadySpun, st.Phase)
	require.Nil(t, st.WonAmount)

	_, err = s.Spin(context.Background())
	require.ErrorIs(t, err, ErrSpinNotAllowed)
	s.Close()

	reopened := NewSpin(api, users, zap.NewNop())
	require.Equal(t, PhaseIdle, reopened.State().Phase)
	_, err = reopened.Spin(context.Background())
	require.Equal(t, gateway.KindAlreadyDone, gateway.Classify(err))
	require.EqualValues(t, 2, calls.Load())
	require.Zero(t, users.Version())
}

func TestSpinFailures(t *testing.T) {
	tests := []struct {
		name string
		resp *types.SpinResponse
		err  error
		kind gateway.Kind
	}{
		{
			name: "transport",
			err:  &gateway.RequestError{Message: "network down", Kind: gateway.KindTransport},
			kind: gateway.KindTransport,
		},
		{
			name: "server refused",
			resp: &types.SpinResponse{Success: false, Message: "spins disabled"},
			kind: gateway.KindAPI,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			s := NewSpin(spinReturning(&calls, tt.resp, tt.err), &UserStore{}, zap.NewNop())

			st, err := s.Spin(context.Background())
			require.Equal(t, tt.kind, gateway.Classify(err))
			require.Equal(t, PhaseError, st.Phase)
			require.NotEmpty(t, st.Message)
			require.True(t, st.Phase.Terminal())

			_, err = s.Spin(context.Background())
			require.ErrorIs(t, err, ErrSpinNotAllowed)
			require.EqualValues(t, 1, calls.Load())
		})
	}
}

func TestSpinCloseMidAnimation(t *testing.T) {
	var calls atomic.Int32
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	users := &UserStore{}
	api := spinReturning(&calls, &types.SpinResponse{Success: true, Bonus: 50, User: &types.UserData{UserID: 1}}, nil)
	s := NewSpin(api, users, zap.NewNop(), WithClock(clock.Now))

	_, err := s.Spin(context.Background())
	require.NoError(t, err)
	s.Frame(start.Add(time.Second))
	s.Close()

	st := s.Frame(start.Add(10 * time.Second))
	require.Equal(t, PhaseClosed, st.Phase)
	require.Nil(t, st.WonAmount)
	require.Zero(t, st.Rotation)
	require.Zero(t, users.Version())

	_, err = s.Spin(context.Background())
	require.ErrorIs(t, err, ErrSpinClosed)
	require.EqualValues(t, 1, calls.Load())
}

func TestSpinCloseWhileRequesting(t *testing.T) {
	release := make(chan struct{})
	var sent atomic.Bool
	api := &fakeAPI{
		SpinFunc: func(ctx context.Context) (*types.SpinResponse, error) {
			sent.Store(true)
			<-release
			return &types.SpinResponse{Success: true, Bonus: 10}, nil
		},
	}
	s := NewSpin(api, &UserStore{}, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := s.Spin(context.Background())
		done <- err
	}()
	require.Eventually(t, sent.Load, time.Second, time.Millisecond)
	s.Close()
	close(release)

	require.ErrorIs(t, <-done, ErrSpinClosed)
	require.Equal(t, PhaseClosed, s.State().Phase)
}

func TestSpinAnimate(t *testing.T) {
	users := &UserStore{}
	api := &fakeAPI{
		SpinFunc: func(ctx context.Context) (*types.SpinResponse, error) {
			return &types.SpinResponse{Success: true, Bonus: 200, User: &types.UserData{UserID: 1}}, nil
		},
	}
	s := NewSpin(api, users, zap.NewNop(), WithDuration(40*time.Millisecond))
	_, err := s.Spin(context.Background())
	require.NoError(t, err)

	var last SpinState
	prev := -1.0
	for st := range s.Animate(context.Background(), 5*time.Millisecond) {
		require.GreaterOrEqual(t, st.Rotation, prev)
		prev = st.Rotation
		last = st
	}
	require.Equal(t, PhaseSettled, last.Phase)
	require.Equal(t, 1, users.Version())
}

func TestSlotAt(t *testing.T) {
	tests := []struct {
		rotation float64
		want     int
	}{
		{0, 0},
		{1, 7},
		{44, 7},
		{45, 7},
		{46, 6},
		{315, 1},
		{359, 0},
		{360, 0},
		{720 + 180, 4},
		{-45, 1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SlotAt(tt.rotation), "rotation %v", tt.rotation)
	}
}

func TestRenderWheel(t *testing.T) {
	cmds := RenderWheel(SpinState{Rotation: 0}, 300)
	require.Len(t, cmds, 2*len(WheelSlots)+2)

	first := cmds[0]
	require.Equal(t, DrawSlice, first.Kind)
	require.InDelta(t, -math.Pi/2, first.Start, 1e-9)
	require.InDelta(t, -math.Pi/4, first.End, 1e-9)
	require.Equal(t, 150.0, first.X)

	label := cmds[len(WheelSlots)]
	require.Equal(t, DrawLabel, label.Kind)
	require.Equal(t, "10", label.Text)

	require.Equal(t, DrawHub, cmds[len(cmds)-2].Kind)
	require.Equal(t, DrawPointer, cmds[len(cmds)-1].Kind)

	rotated := RenderWheel(SpinState{Rotation: 90}, 300)
	require.InDelta(t, 0, rotated[0].Start, 1e-9)
}
