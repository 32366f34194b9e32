package entity

import "slices"

// Phase 回合状态机。
type Phase string

const (
	PhaseLobby           Phase = "lobby"
	PhaseAwaitingRoll    Phase = "awaiting_roll"
	PhaseRolling         Phase = "rolling"
	PhaseResolvingIncome Phase = "resolving_income"
	PhaseActing          Phase = "acting"
	PhaseEndingTurn      Phase = "ending_turn"
)

// Roll 一次掷骰，Dice 为每颗骰子的点数。
type Roll struct {
	Dice []int `json:"dice" bson:"dice"`
}

func (r Roll) Sum() int {
	s := 0
	for _, d := range r.Dice {
		s += d
	}
	return s
}

func (r Roll) Doubles() bool {
	return len(r.Dice) == 2 && r.Dice[0] == r.Dice[1]
}

// Outcomes 本次掷骰具备的结果特征。
func (r Roll) Outcomes() []Outcome {
	if r.Doubles() {
		return []Outcome{OutcomeDoubles}
	}
	return nil
}

// Payment 一笔结算记录，From 为空表示银行。
type Payment struct {
	From            PlayerID        `json:"from,omitempty" bson:"from,omitempty"`
	To              PlayerID        `json:"to" bson:"to"`
	Amount          int             `json:"amount" bson:"amount"`
	Requested       int             `json:"requested" bson:"requested"`
	EstablishmentID EstablishmentID `json:"establishment_id" bson:"establishment_id"`
	Title           string          `json:"title" bson:"title"`
}

type Turn struct {
	Phase        Phase     `json:"phase" bson:"phase"`
	Active       int       `json:"active" bson:"active"`
	Number       int       `json:"number" bson:"number"`
	Roll         *Roll     `json:"roll,omitempty" bson:"roll,omitempty"`
	RerollsUsed  int       `json:"rerolls_used" bson:"rerolls_used"`
	Purchased    bool      `json:"purchased" bson:"purchased"`
	TradePending bool      `json:"trade_pending" bson:"trade_pending"`
	Payments     []Payment `json:"payments,omitempty" bson:"payments,omitempty"`
}

func (t Turn) Clone() Turn {
	if t.Roll != nil {
		r := Roll{Dice: slices.Clone(t.Roll.Dice)}
		t.Roll = &r
	}
	t.Payments = slices.Clone(t.Payments)
	return t
}
