package types

type CheckinResponse struct {
	Success        bool      `json:"success"`
	AlreadyChecked bool      `json:"already_checked,omitempty"`
	Bonus          int       `json:"bonus,omitempty"`
	User           *UserData `json:"user,omitempty"`
	Message        string    `json:"message,omitempty"`
}

type SpinResponse struct {
	Success     bool      `json:"success"`
	AlreadySpun bool      `json:"already_spun,omitempty"`
	Bonus       int       `json:"bonus,omitempty"`
	User        *UserData `json:"user,omitempty"`
	Message     string    `json:"message,omitempty"`
}

type TaskFilter struct {
	NetworkID string
	Type      TaskType
	Page      int
	PageSize  int
}

type TasksResponse struct {
	Tasks   []*Task `json:"tasks"`
	HasMore bool    `json:"hasMore"`
}

type TaskRequest struct {
	TaskID           string         `json:"task_id"`
	VerificationData map[string]any `json:"verification_data,omitempty"`
}

type TaskAttempt struct {
	ID               string     `json:"id"`
	TaskID           string     `json:"task_id"`
	Status           TaskStatus `json:"status"`
	VerificationCode string     `json:"verification_code,omitempty"`
}

// StartTaskResponse carries the attempt record. Success is only set when the
// server reports the outcome explicitly.
type StartTaskResponse struct {
	Success *bool        `json:"success,omitempty"`
	Attempt *TaskAttempt `json:"attempt,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Rejected reports an explicit success=false. A 2xx reply without the field is a started task.
func (r *StartTaskResponse) Rejected() bool {
	return r.Success != nil && !*r.Success
}

type TaskCheckResponse struct {
	Success   bool      `json:"success"`
	Completed bool      `json:"completed"`
	Points    int       `json:"points,omitempty"`
	User      *UserData `json:"user,omitempty"`
	Message   string    `json:"message"`
}

type NetworksResponse struct {
	Networks []*Network `json:"networks"`
	HasMore  bool       `json:"hasMore"`
}

type GamesResponse struct {
	Games   []*Game `json:"games"`
	HasMore bool    `json:"hasMore"`
}

type SurveysResponse struct {
	Surveys []*Survey `json:"surveys"`
	HasMore bool      `json:"hasMore"`
}

type PlayGameResponse struct {
	Success bool   `json:"success"`
	GameURL string `json:"gameUrl"`
	Message string `json:"message,omitempty"`
}

type LeaderboardResponse struct {
	Leaderboard []*LeaderboardEntry `json:"leaderboard"`
}

type ShopRewardsResponse struct {
	Rewards []*ShopReward `json:"rewards"`
}

type RedeemResponse struct {
	Success bool      `json:"success"`
	User    *UserData `json:"user,omitempty"`
	Message string    `json:"message,omitempty"`
}

type ReferralsResponse struct {
	Referrals []*Referral `json:"referrals"`
	Link      string      `json:"link,omitempty"`
}

type HistoryResponse struct {
	History []*HistoryEntry `json:"history"`
	HasMore bool            `json:"hasMore"`
}

type AdminTask struct {
	ID               string         `json:"id,omitempty"`
	NetworkID        string         `json:"network_id"`
	Type             string         `json:"type"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Points           int            `json:"points"`
	TargetURL        string         `json:"target_url"`
	Active           int            `json:"active"`
	VerificationData map[string]any `json:"verification_data,omitempty"`
}

type AdminNetwork struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Active      int    `json:"active"`
}

type AdminUser struct {
	UserData
	Banned bool `json:"banned"`
}
