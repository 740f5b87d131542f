package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Identity struct {
	ID           int64  `json:"id"`
	DisplayName  string `json:"display_name"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

type UserData struct {
	UserID         int64           `json:"user_id"`
	FirstName      string          `json:"first_name,omitempty"`
	LastName       string          `json:"last_name,omitempty"`
	Username       string          `json:"username,omitempty"`
	Points         decimal.Decimal `json:"points"`
	Level          int             `json:"level"`
	Streak         int             `json:"streak"`
	Referrals      int             `json:"referrals"`
	CompletedTasks int             `json:"completed_tasks,omitempty"`
}

type ContentType string

const (
	ContentTasks   ContentType = "tasks"
	ContentGames   ContentType = "games"
	ContentSurveys ContentType = "surveys"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentTasks, ContentGames, ContentSurveys:
		return true
	}
	return false
}

type TaskType string

const (
	TaskAdView           TaskType = "ad_view"
	TaskYoutubeSubscribe TaskType = "youtube_subscribe"
	TaskYoutubeComment   TaskType = "youtube_comment"
	TaskYoutubeWatch     TaskType = "youtube_watch"
	TaskTelegramJoin     TaskType = "telegram_join"
	TaskFacebookFollow   TaskType = "facebook_follow"
	TaskInstagramFollow  TaskType = "instagram_follow"
	TaskTwitterFollow    TaskType = "twitter_follow"
	TaskWebsiteVisit     TaskType = "website_visit"
	TaskLinkClick        TaskType = "link_click"
	TaskReferral         TaskType = "referral"
)

type TaskStatus string

const (
	StatusAvailable  TaskStatus = "available"
	StatusInProgress TaskStatus = "in_progress"
	StatusVerifying  TaskStatus = "verifying"
	StatusCompleted  TaskStatus = "completed"
	StatusFailed     TaskStatus = "failed"
	StatusExpired    TaskStatus = "expired"
)

type VerificationMethod string

const (
	VerifyCommentValidation VerificationMethod = "comment_validation"
	VerifyClientTracking    VerificationMethod = "client_tracking"
	VerifyTelegramAPI       VerificationMethod = "telegram_api"
	VerifyTimerBased        VerificationMethod = "timer_based"
	VerifyPostback          VerificationMethod = "postback"
	VerifyManual            VerificationMethod = "manual"
	VerifyAutomatic         VerificationMethod = "automatic"
)

type Network struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        ContentType `json:"type"`
	Logo        string      `json:"logo,omitempty"`
	Description string      `json:"description"`
	Priority    int         `json:"priority"`
	Active      bool        `json:"active"`
}

type Availability struct {
	Total     int `json:"total"`
	Remaining int `json:"remaining"`
}

type Task struct {
	ID               string         `json:"id"`
	NetworkID        string         `json:"network_id"`
	Type             TaskType       `json:"type"`
	Category         string         `json:"category,omitempty"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Instructions     string         `json:"instructions,omitempty"`
	Points           int            `json:"points"`
	TargetURL        string         `json:"target_url"`
	Status           TaskStatus     `json:"status,omitempty"`
	Availability     *Availability  `json:"availability,omitempty"`
	VerificationData map[string]any `json:"verification_data,omitempty"`
	ExpiresAt        *time.Time     `json:"expires_at,omitempty"`
}

// EffectiveStatus считает отсутствующий статус доступным
func (t *Task) EffectiveStatus() TaskStatus {
	if t.Status == "" {
		return StatusAvailable
	}
	return t.Status
}

type Affordance string

const (
	AffordanceStart Affordance = "open_and_start"
	AffordanceCheck Affordance = "check"
	AffordanceDone  Affordance = "done"
	AffordanceNone  Affordance = "none"
)

func (t *Task) Affordance() Affordance {
	switch t.EffectiveStatus() {
	case StatusAvailable:
		return AffordanceStart
	case StatusInProgress, StatusVerifying:
		return AffordanceCheck
	case StatusCompleted:
		return AffordanceDone
	}
	return AffordanceNone
}

type Game struct {
	ID          string `json:"id"`
	NetworkID   string `json:"network_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	GameURL     string `json:"game_url,omitempty"`
	Points      int    `json:"points"`
	Duration    int    `json:"duration"`
	Category    string `json:"category,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	PlayCount   int    `json:"play_count"`
	Active      bool   `json:"active"`
}

type SurveyQuestion struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Order    int      `json:"order"`
}

type Survey struct {
	ID               string           `json:"id"`
	NetworkID        string           `json:"network_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Points           int              `json:"points"`
	EstimatedTime    int              `json:"estimated_time"`
	Questions        []SurveyQuestion `json:"questions,omitempty"`
	MaxResponses     int              `json:"max_responses"`
	CurrentResponses int              `json:"current_responses"`
	Active           bool             `json:"active"`
}

type LeaderboardEntry struct {
	Name   string          `json:"name"`
	Points decimal.Decimal `json:"points"`
	Level  int             `json:"level"`
}

type ShopReward struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Cost        decimal.Decimal `json:"cost"`
}

type Referral struct {
	UserID   int64     `json:"user_id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
	Bonus    int       `json:"bonus"`
}

type HistoryEntry struct {
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	CreatedAt time.Time       `json:"created_at"`
}

type CompletedByKind struct {
	Follow  int `json:"follow"`
	Comment int `json:"comment"`
	Watch   int `json:"watch"`
	Join    int `json:"join"`
	Other   int `json:"other"`
}

type AdminStats struct {
	TotalUsers       int             `json:"total_users"`
	TotalReferrals   int             `json:"total_referrals"`
	TotalTasks       int             `json:"total_tasks"`
	CompletedTasks   CompletedByKind `json:"completed_tasks"`
	ActiveUsers24h   int             `json:"active_users_24h"`
	ActiveUsers7d    int             `json:"active_users_7d"`
	TotalPoints      decimal.Decimal `json:"total_points"`
	AvgPointsPerUser decimal.Decimal `json:"avg_points_per_user"`
}
