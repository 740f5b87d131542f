package session

import (
	"context"
	"time"

	"github.com/SakuraBurst/rewards/internal/rewards/config"
	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/identity"
	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/puzpuzpuz/xsync"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrBadClaims       = errors.New("token claims are malformed")
)

type Store struct {
	sessions *xsync.MapOf[string, *Session]
	client   *gateway.Client
	cfg      *config.Config
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewStore(client *gateway.Client, cfg *config.Config, logger *zap.Logger) *Store {
	return &Store{
		sessions: xsync.NewMapOf[*Session](),
		client:   client,
		cfg:      cfg,
		secret:   []byte(cfg.HTTP.JWTSecret),
		ttl:      cfg.HTTP.SessionTTL,
		now:      time.Now,
		logger:   logger.Named("sessions"),
	}
}

// Open registers a session for a resolved identity and returns its bearer token.
func (s *Store) Open(state identity.State) (*Session, string, error) {
	if !state.Ready {
		return nil, "", identity.ErrEmptyInitData
	}
	sess := New(s.client, state, s.cfg, s.logger)
	token, err := s.issue(sess)
	if err != nil {
		return nil, "", errors.Wrap(err, "issue failed: ")
	}
	s.sessions.Store(sess.ID, sess)
	s.logger.Info("session opened", zap.String("session_id", sess.ID), zap.Bool("admin", sess.Admin))
	return sess, token, nil
}

func (s *Store) issue(sess *Session) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sid"] = sess.ID
	if sess.User != nil {
		claims["uid"] = sess.User.ID
	}
	claims["exp"] = s.now().Add(s.ttl).Unix()

	return token.SignedString(s.secret)
}

func (s *Store) Get(id string) (*Session, error) {
	sess, ok := s.sessions.Load(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.Touch(s.now())
	return sess, nil
}

// FromToken resolves the session named by a token already validated by the middleware.
func (s *Store) FromToken(token *jwt.Token) (*Session, error) {
	if token == nil {
		return nil, ErrBadClaims
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrBadClaims
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil, ErrBadClaims
	}
	return s.Get(sid)
}

func (s *Store) Close(id string) {
	if sess, ok := s.sessions.LoadAndDelete(id); ok {
		sess.CloseSpin()
	}
}

func (s *Store) Len() int {
	return s.sessions.Size()
}

// Sweep drops sessions idle for longer than the token lifetime.
func (s *Store) Sweep(now time.Time) int {
	evicted := 0
	s.sessions.Range(func(id string, sess *Session) bool {
		if now.Sub(sess.LastSeen()) > s.ttl {
			s.Close(id)
			evicted++
		}
		return true
	})
	if evicted > 0 {
		s.logger.Info("sessions evicted", zap.Int("count", evicted), zap.Int("left", s.Len()))
	}
	return evicted
}

func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}
