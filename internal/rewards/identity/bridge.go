package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/go-faster/errors"
)

var (
	ErrEmptyInitData    = errors.New("init data is empty")
	ErrNoUser           = errors.New("init data has no user")
	ErrBadSignature     = errors.New("init data signature mismatch")
	ErrInitDataExpired  = errors.New("init data expired")
	ErrMissingSignature = errors.New("init data has no hash")
)

// State is what the rest of the app sees of the host platform session.
type State struct {
	User  *types.Identity
	Token string
	Ready bool
}

type platformUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
}

type Bridge struct {
	botToken string
	maxAge   time.Duration
	now      func() time.Time
}

// NewBridge: без botToken подпись не проверяется, сервер все равно перепроверит
func NewBridge(botToken string, maxAge time.Duration) *Bridge {
	return &Bridge{botToken: botToken, maxAge: maxAge, now: time.Now}
}

func (b *Bridge) Resolve(initData string) (State, error) {
	if initData == "" {
		return State{}, ErrEmptyInitData
	}
	if b.botToken != "" {
		if err := b.verify(initData); err != nil {
			return State{}, err
		}
	}
	user, err := Parse(initData)
	if err != nil {
		return State{}, err
	}
	return State{User: user, Token: initData, Ready: true}, nil
}

func Parse(initData string) (*types.Identity, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, errors.Wrap(err, "url.ParseQuery failed: ")
	}
	raw := values.Get("user")
	if raw == "" {
		return nil, ErrNoUser
	}
	u := platformUser{}
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal failed: ")
	}
	if u.ID == 0 {
		return nil, ErrNoUser
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	return &types.Identity{
		ID:           u.ID,
		DisplayName:  name,
		Username:     u.Username,
		LanguageCode: u.LanguageCode,
	}, nil
}

func (b *Bridge) verify(initData string) error {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return errors.Wrap(err, "url.ParseQuery failed: ")
	}
	hash := values.Get("hash")
	if hash == "" {
		return ErrMissingSignature
	}
	expected := Sign(values, b.botToken)
	if !hmac.Equal([]byte(expected), []byte(hash)) {
		return ErrBadSignature
	}
	if b.maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return errors.Wrap(err, "strconv.ParseInt failed: ")
		}
		if b.now().Sub(time.Unix(authDate, 0)) > b.maxAge {
			return ErrInitDataExpired
		}
	}
	return nil
}

// Sign computes the platform's hash over every field except hash itself.
func Sign(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}

// IsAdminUI only decides whether to show admin screens.
func IsAdminUI(user *types.Identity, adminID int64) bool {
	return user != nil && adminID != 0 && user.ID == adminID
}
