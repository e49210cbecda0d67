package game

import (
	"time"

	"gorm.io/gorm"
)

// Contest status values.
const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// Round phase values. The controller moves waiting -> bidding -> actions ->
// processing each round. `processing` is transient (the round is resolved
// synchronously inside the confirm call); between calls observers only ever
// see waiting/bidding/actions, or `resolved` once the contest has finished.
const (
	PhaseWaiting    = "waiting"
	PhaseBidding    = "bidding"
	PhaseActions    = "actions"
	PhaseProcessing = "processing"
	PhaseResolved   = "resolved"
)

// Contestant kinds. Exactly one of each per contest.
const (
	KindHuman   = "human"
	KindMachine = "machine"
)

// ActionType is a string alias identifying an entry in the action catalog.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type ActionType string

// ActionNone means the contestant explicitly skipped the action phase.
const ActionNone ActionType = ""

// ActionEffect is a flexible description of what a catalog action does when
// it resolves. All fields are optional and applied when present.
type ActionEffect struct {
	// Self-buffs: consumed by auction settlement.
	BonusOnWin      int  `json:"bonus_on_win"`
	SafetyNetOnLoss bool `json:"safety_net_on_loss"`
	Shield          bool `json:"shield"`

	// Opponent debuffs: set flags on the opponent, negated by an active shield.
	HalveOpponentBid bool `json:"halve_opponent_bid"`
	SabotagePenalty  int  `json:"sabotage_penalty"`

	// Tie-break priority for equal positive bids.
	TieBreakPriority bool `json:"tie_break_priority"`

	// Pool modifiers: only the first pool modification per round takes effect.
	PoolMultiplier int `json:"pool_multiplier"`
	PoolRangeMin   int `json:"pool_range_min"`
	PoolRangeMax   int `json:"pool_range_max"`

	// Cancellation removes the opponent's pending action unless shielded.
	CancelOpponent bool `json:"cancel_opponent"`

	// Probabilistic steal: rolls at settlement, moves 1 score on success.
	StealChancePercent int `json:"steal_chance_percent"`
}

// ActionSpec combines the human-readable metadata for a catalog action with
// the structured effect parameters.
type ActionSpec struct {
	Key         ActionType `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	// ConflictRefundPercent is the reduced-rate refund applied to the cost
	// of an action cancelled by a same-type conflict (0 = no refund).
	ConflictRefundPercent int          `json:"conflict_refund_percent"`
	Effect                ActionEffect `json:"effect"`
}

// Catalog maps action keys to their specs. Loaded once at contest start from
// the server configuration.
type Catalog map[ActionType]ActionSpec

// Rules holds the static contest constants loaded from configuration.
type Rules struct {
	StartingBalance      int `json:"starting_balance"`
	TargetScore          int `json:"target_score"`
	RoundLimit           int `json:"round_limit"`
	MaintenanceInterval  int `json:"maintenance_interval"`
	MaintenanceIncrement int `json:"maintenance_increment"`
	BasePool             int `json:"base_pool"`

	ConfirmTimeoutSeconds  int `json:"confirm_timeout_seconds"`
	DecisionTimeoutSeconds int `json:"decision_timeout_seconds"`
}

// ConfirmTimeout returns the bounded wait for the external confirm signal.
func (r Rules) ConfirmTimeout() time.Duration {
	return time.Duration(r.ConfirmTimeoutSeconds) * time.Second
}

// DecisionTimeout bounds the opponent decision provider call.
func (r Rules) DecisionTimeout() time.Duration {
	return time.Duration(r.DecisionTimeoutSeconds) * time.Second
}

// Contestant is one side of a contest. Balances and scores are mutated only
// by the engine during processing; the per-round effect flags below are set
// by the conflict resolver and consumed by settlement, then cleared.
type Contestant struct {
	gorm.Model
	ContestID      uint   `json:"-"`
	ContestantUUID string `json:"contestant_uuid"`
	DisplayName    string `json:"display_name"`
	Kind           string `json:"kind"`
	Balance        int    `json:"balance"`
	Score          int    `json:"score"`

	// Ephemeral submissions, cleared every round.
	HasBid        bool       `json:"has_bid"`
	PendingBid    int        `json:"-"`
	HasAction     bool       `json:"has_action"`
	PendingAction ActionType `json:"-"`

	// Effect flags for the round in flight.
	BonusOnWin         int  `json:"bonus_on_win"`
	SafetyNetActive    bool `json:"safety_net_active"`
	ShieldActive       bool `json:"shield_active"`
	BidHalved          bool `json:"bid_halved"`
	SabotagePenalty    int  `json:"sabotage_penalty"`
	PriorityActive     bool `json:"priority_active"`
	StealChancePercent int  `json:"steal_chance_percent"`
}

// Store per-contest participants in a dedicated table for clarity.
func (Contestant) TableName() string { return "contest_contestants" }

// ResetEffects clears every per-round effect flag.
func (c *Contestant) ResetEffects() {
	c.BonusOnWin = 0
	c.SafetyNetActive = false
	c.ShieldActive = false
	c.BidHalved = false
	c.SabotagePenalty = 0
	c.PriorityActive = false
	c.StealChancePercent = 0
}

// ClearSubmissions drops the ephemeral bid/action for the next round.
func (c *Contestant) ClearSubmissions() {
	c.HasBid = false
	c.PendingBid = 0
	c.HasAction = false
	c.PendingAction = ActionNone
}

// Contest is the session object holding both contestants, the round
// counters and the accumulated history. One contest is active at a time by
// convention, but nothing prevents several sessions from coexisting.
type Contest struct {
	gorm.Model
	Name        string       `json:"name" gorm:"size:64"`
	Status      string       `json:"status"`
	Phase       string       `json:"phase"`
	RoundNumber int          `json:"round_number"`
	Contestants []Contestant `json:"contestants"`

	// Seed drives the per-round random source so contests replay
	// deterministically.
	Seed int64 `json:"-"`

	// Personality is forwarded to the opponent decision provider.
	Personality string `json:"personality"`

	Winner           string `json:"winner"`
	EndReason        string `json:"end_reason"`
	Message          string `json:"message"`
	LastRoundSummary string `json:"last_round_summary" gorm:"size:2048"`

	// ConfirmDeadline bounds the wait for the external confirm signal; the
	// sweeper proceeds automatically once it passes. Zero means no round is
	// awaiting confirmation.
	ConfirmDeadline time.Time `json:"confirm_deadline"`

	Records            []RoundRecord       `json:"records"`
	MaintenanceRecords []MaintenanceRecord `json:"maintenance_records"`
}

// Human returns the human-controlled contestant, or nil.
func (g *Contest) Human() *Contestant { return g.byKind(KindHuman) }

// Machine returns the machine-controlled contestant, or nil.
func (g *Contest) Machine() *Contestant { return g.byKind(KindMachine) }

func (g *Contest) byKind(kind string) *Contestant {
	for i := range g.Contestants {
		if g.Contestants[i].Kind == kind {
			return &g.Contestants[i]
		}
	}
	return nil
}

// Opponent returns the other contestant.
func (g *Contest) Opponent(c *Contestant) *Contestant {
	for i := range g.Contestants {
		if &g.Contestants[i] != c {
			return &g.Contestants[i]
		}
	}
	return nil
}

// ByUUID finds a contestant by its public UUID, or nil.
func (g *Contest) ByUUID(uuid string) *Contestant {
	for i := range g.Contestants {
		if g.Contestants[i].ContestantUUID == uuid {
			return &g.Contestants[i]
		}
	}
	return nil
}

// RoundRecord is the append-only summary of a completed round. It is never
// mutated after creation.
type RoundRecord struct {
	gorm.Model
	ContestID     uint   `json:"-"`
	Round         int    `json:"round"`
	Fee           int    `json:"fee"`
	HumanBid      int    `json:"human_bid"`
	MachineBid    int    `json:"machine_bid"`
	HumanAction   string `json:"human_action"`
	MachineAction string `json:"machine_action"`
	Winner        string `json:"winner"`
	PoolAwarded   int    `json:"pool_awarded"`

	HumanBalanceBefore   int `json:"human_balance_before"`
	MachineBalanceBefore int `json:"machine_balance_before"`
	HumanBalanceAfter    int `json:"human_balance_after"`
	MachineBalanceAfter  int `json:"machine_balance_after"`
	HumanScoreAfter      int `json:"human_score_after"`
	MachineScoreAfter    int `json:"machine_score_after"`

	Summary string `json:"summary" gorm:"size:2048"`
	// Reasons carries the machine decision rationale for observability,
	// including fallback notices when the provider was unavailable.
	Reasons string `json:"reasons" gorm:"size:2048"`
}

func (RoundRecord) TableName() string { return "contest_round_records" }

// MaintenanceRecord is appended for every round where both contestants paid
// the levy.
type MaintenanceRecord struct {
	gorm.Model
	ContestID        uint `json:"-"`
	Round            int  `json:"round"`
	Fee              int  `json:"fee"`
	AmountPaidByEach int  `json:"amount_paid_by_each"`
}

func (MaintenanceRecord) TableName() string { return "contest_maintenance_records" }

// EffectEvent is one entry of the per-round effects log included in the
// round-result broadcast.
type EffectEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RoundResult is the outbound event emitted after a round fully settles.
type RoundResult struct {
	ContestID     uint           `json:"contest_id"`
	Round         int            `json:"round"`
	Fee           int            `json:"fee"`
	Winner        string         `json:"winner"`
	PoolAwarded   int            `json:"pool_awarded"`
	Effects       []EffectEvent  `json:"effects_applied"`
	BalancesAfter map[string]int `json:"balances_after"`
	ScoresAfter   map[string]int `json:"scores_after"`
	Reasons       []string       `json:"reasons,omitempty"`
	ContestOver   bool           `json:"contest_over"`
	EndReason     string         `json:"end_reason,omitempty"`
}

// DecisionSnapshot is the serialized view handed to the opponent decision
// provider each round (after maintenance has been paid).
type DecisionSnapshot struct {
	Round              int            `json:"round"`
	MaintenanceFee     int            `json:"maintenance_fee_this_round"`
	MaintenanceOutlook map[string]int `json:"maintenance_outlook"`
	OwnBalance         int            `json:"own_balance"`
	OpponentBalance    int            `json:"opponent_balance"`
	OwnScore           int            `json:"own_score"`
	OpponentScore      int            `json:"opponent_score"`
	TargetScore        int            `json:"target_score"`
	Personality        string         `json:"personality"`
	RecentRoundHistory []RoundRecord  `json:"recent_round_history"`
	AvailableActions   []ActionSpec   `json:"available_actions"`
}

// Decision is the opponent provider's answer: a bid, an optional action and
// a free-form reasons log.
type Decision struct {
	Bid     int        `json:"bid"`
	Action  ActionType `json:"action"`
	Reasons []string   `json:"reasons"`
}
