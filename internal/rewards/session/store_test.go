package session

import (
	"net/http"
	"testing"
	"time"

	"github.com/SakuraBurst/rewards/internal/rewards/config"
	"github.com/SakuraBurst/rewards/internal/rewards/controller"
	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/identity"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.JWTSecret = "test-secret"
	cfg.HTTP.SessionTTL = time.Hour
	cfg.Identity.AdminID = 42
	cfg.Content.NetworkPageSize = 5
	cfg.Content.ContentPageSize = 20
	cfg.Spin.Duration = time.Second
	cfg.Spin.Turns = 4
	return cfg
}

func newStore() *Store {
	client := gateway.NewClient(http.DefaultClient, "http://127.0.0.1:1/api", zap.NewNop())
	return NewStore(client, testConfig(), zap.NewNop())
}

func readyState(id int64) identity.State {
	return identity.State{User: &types.Identity{ID: id, DisplayName: "Ali"}, Token: "user=x", Ready: true}
}

func TestOpenIssuesToken(t *testing.T) {
	store := newStore()

	sess, token, err := store.Open(readyState(42))
	require.NoError(t, err)
	require.True(t, sess.Admin)
	require.Equal(t, 1, store.Len())

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, sess.ID, claims["sid"])
	require.EqualValues(t, 42, claims["uid"])

	got, err := store.FromToken(parsed)
	require.NoError(t, err)
	require.Same(t, sess, got)

	_, _, err = store.Open(identity.State{})
	require.ErrorIs(t, err, identity.ErrEmptyInitData)
}

func TestFromTokenUnknownSession(t *testing.T) {
	store := newStore()
	_, err := store.FromToken(&jwt.Token{Claims: jwt.MapClaims{"sid": "gone"}})
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.FromToken(&jwt.Token{Claims: jwt.MapClaims{"uid": 1}})
	require.ErrorIs(t, err, ErrBadClaims)
}

func TestSweep(t *testing.T) {
	store := newStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	old, _, err := store.Open(readyState(1))
	require.NoError(t, err)
	fresh, _, err := store.Open(readyState(2))
	require.NoError(t, err)
	old.Touch(now.Add(-2 * time.Hour))
	fresh.Touch(now)

	require.Equal(t, 1, store.Sweep(now))
	_, err = store.Get(old.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(fresh.ID)
	require.NoError(t, err)
}

func TestOpenSpinReplacesPrevious(t *testing.T) {
	sess := New(gateway.NewClient(http.DefaultClient, "http://127.0.0.1:1", zap.NewNop()), readyState(1), testConfig(), zap.NewNop())
	require.False(t, sess.Admin)

	_, ok := sess.Spin()
	require.False(t, ok)

	first := sess.OpenSpin()
	second := sess.OpenSpin()
	require.NotSame(t, first, second)
	require.Equal(t, controller.PhaseClosed, first.State().Phase)
	require.Equal(t, controller.PhaseIdle, second.State().Phase)

	sess.CloseSpin()
	_, ok = sess.Spin()
	require.False(t, ok)
	require.Equal(t, controller.PhaseClosed, second.State().Phase)
}
