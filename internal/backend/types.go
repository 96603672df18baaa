package backend

import "github.com/shopspring/decimal"

// Boost (AdsGram x2 mining boost)

type BoostEligibility struct {
	Success     bool   `json:"success"`
	CanActivate bool   `json:"can_activate"`
	Reason      string `json:"reason"`
	BlockID     int    `json:"block_id"`
}

type BoostDetail struct {
	Multiplier      float64 `json:"multiplier"`
	DurationMinutes int     `json:"duration_minutes"`
	PtsEarned       int     `json:"pts_earned"`
}

type BoostActivation struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
	Boost   BoostDetail `json:"boost"`
}

type BoostStatus struct {
	Success                  bool    `json:"success"`
	HasActiveBoost           bool    `json:"has_active_boost"`
	Multiplier               float64 `json:"multiplier"`
	BoostRemainingSeconds    int     `json:"boost_remaining_seconds"`
	DailyBoostsUsed          int     `json:"daily_boosts_used"`
	DailyBoostsLimit         int     `json:"daily_boosts_limit"`
	CanActivate              bool    `json:"can_activate"`
	CooldownRemainingSeconds int     `json:"cooldown_remaining_seconds"`
	Reason                   string  `json:"reason"`
}

// OnClickA PTS ads and check-in

type AdEligibility struct {
	Success  bool   `json:"success"`
	CanWatch bool   `json:"can_watch"`
	Reason   string `json:"reason"`
	Config   struct {
		AdCodeID        int `json:"ad_code_id"`
		CooldownSeconds int `json:"cooldown_seconds"`
	} `json:"config"`
}

type AdTaskProgress struct {
	TaskType  string `json:"task_type"`
	Watched   int    `json:"watched"`
	Required  int    `json:"required"`
	Completed bool   `json:"completed"`
}

type AdWatchResult struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Error      string         `json:"error"`
	PtsEarned  int            `json:"pts_earned"`
	AdProgress AdTaskProgress `json:"ad_progress"`
}

type CheckinStatus struct {
	DoneToday        bool `json:"done_today"`
	Doubled          bool `json:"doubled"`
	CanDouble        bool `json:"can_double"`
	Streak           int  `json:"streak"`
	BaseReward       int  `json:"base_reward"`
	DoubleReward     int  `json:"double_reward"`
	TotalEarnedToday int  `json:"total_earned_today"`
}

type CheckinResult struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	PtsEarned int           `json:"pts_earned"`
	Status    CheckinStatus `json:"status"`
}

type PtsStatus struct {
	Success          bool           `json:"success"`
	Pts              int            `json:"pts"`
	PtsBalance       int            `json:"pts_balance"`
	Checkin          CheckinStatus  `json:"checkin"`
	CheckinDone      bool           `json:"checkin_done"`
	CheckinDoubled   bool           `json:"checkin_doubled"`
	Streak           int            `json:"streak"`
	AdTask           AdTaskProgress `json:"ad_task"`
	UserRank         int            `json:"user_rank"`
	CanWatchAd       bool           `json:"can_watch_ad"`
	AdCooldownReason string         `json:"ad_cooldown_reason"`
	DailyAdLimit     int            `json:"daily_ad_limit"`
	AdsWatchedToday  int            `json:"ads_watched_today"`
	AdsRemaining     int            `json:"ads_remaining"`
	Boost            BoostStatus    `json:"boost"`
}

type RankingEntry struct {
	Rank   int             `json:"rank"`
	UserID string          `json:"user_id"`
	Pts    int             `json:"pts"`
	Prize  decimal.Decimal `json:"prize_doge"`
}

type PtsRanking struct {
	Success    bool           `json:"success"`
	Ranking    []RankingEntry `json:"ranking"`
	UserRank   int            `json:"user_rank"`
	PeriodInfo struct {
		PeriodType    string `json:"period_type"`
		DaysRemaining int    `json:"days_remaining"`
		MinPtsQualify int    `json:"min_pts_qualify"`
		PrizeCount    int    `json:"prize_count"`
	} `json:"period_info"`
}

// ShrinkEarn link missions

type Mission struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	NameEs            string          `json:"name_es"`
	Description       string          `json:"description"`
	DescriptionEs     string          `json:"description_es"`
	Reward            decimal.Decimal `json:"reward"`
	RewardPts         int             `json:"reward_pts"`
	Icon              string          `json:"icon"`
	Available         bool            `json:"available"`
	CooldownRemaining int             `json:"cooldown_remaining"`
}

type ShrinkEarnDailyStats struct {
	Started    int             `json:"started"`
	Completed  int             `json:"completed"`
	EarnedDoge decimal.Decimal `json:"earned_doge"`
	EarnedPts  int             `json:"earned_pts"`
	Limit      int             `json:"limit"`
	Remaining  int             `json:"remaining"`
}

type ShrinkEarnStatus struct {
	Success    bool                 `json:"success"`
	Enabled    bool                 `json:"enabled"`
	DailyStats ShrinkEarnDailyStats `json:"daily_stats"`
	Missions   []Mission            `json:"missions"`
}

type ShrinkEarnStart struct {
	Success           bool    `json:"success"`
	ShortenedURL      string  `json:"shortened_url"`
	Mission           Mission `json:"mission"`
	Error             string  `json:"error"`
	ErrorEs           string  `json:"error_es"`
	CooldownRemaining int     `json:"cooldown_remaining"`
}

// System / fraud surface

type VPNCheck struct {
	Success     bool   `json:"success"`
	VPNDetected bool   `json:"vpn_detected"`
	IP          string `json:"ip"`
	Reason      string `json:"reason"`
	Error       string `json:"error"`
}

type DBStatus struct {
	Success   bool   `json:"success"`
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
}

type BanCheckReport struct {
	UserID     string            `json:"user_id"`
	DeviceHash string            `json:"device_hash"`
	DeviceInfo map[string]string `json:"device_info"`
}

// TON wallet

type TonAddressValidation struct {
	Valid bool   `json:"valid"`
	Type  string `json:"type"`
	Error string `json:"error"`
}

type TonLinkResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type TonWithdrawal struct {
	Success   bool            `json:"success"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	Status    string          `json:"status"`
	Error     string          `json:"error"`
}

type TonPaymentStatus struct {
	Success   bool            `json:"success"`
	PaymentID string          `json:"payment_id"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	TxHash    string          `json:"tx_hash"`
	Error     string          `json:"error"`
}

type TonHistoryEntry struct {
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Address   string          `json:"address"`
	CreatedAt string          `json:"created_at"`
}

type TonHistory struct {
	Success  bool              `json:"success"`
	Payments []TonHistoryEntry `json:"payments"`
}

// Generic wallet

type WalletBalance struct {
	Success  bool            `json:"success"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Pending  decimal.Decimal `json:"pending"`
	Error    string          `json:"error"`
}

type WalletLinkResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type WithdrawRequestResult struct {
	Success      bool            `json:"success"`
	WithdrawalID string          `json:"withdrawal_id"`
	Amount       decimal.Decimal `json:"amount"`
	Fee          decimal.Decimal `json:"fee"`
	Error        string          `json:"error"`
}

type WalletHistoryEntry struct {
	ID        string          `json:"id"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"created_at"`
}

type WalletHistory struct {
	Success     bool                 `json:"success"`
	Withdrawals []WalletHistoryEntry `json:"withdrawals"`
}

type WalletStats struct {
	Success        bool            `json:"success"`
	TotalWithdrawn decimal.Decimal `json:"total_withdrawn"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	WithdrawCount  int             `json:"withdraw_count"`
	Error          string          `json:"error"`
}

type WalletInfo struct {
	Success       bool            `json:"success"`
	Currencies    []string        `json:"currencies"`
	MinWithdrawal decimal.Decimal `json:"min_withdrawal"`
	NetworkFee    decimal.Decimal `json:"network_fee"`
	Error         string          `json:"error"`
}
