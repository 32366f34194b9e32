package engine

import (
	"math/rand/v2"
	"sync"

	"MachiKoro/internal/game/entity"
	"MachiKoro/internal/game/errs"
)

const (
	dieFaces = 6
	maxDice  = 2
)

// Roller 骰子来源，注入以便测试与回放。
type Roller interface {
	Roll(n int) []int
}

// RandomRoller 默认实现，math/rand/v2 全局源并发安全。
type RandomRoller struct{}

func (RandomRoller) Roll(n int) []int {
	dice := make([]int, n)
	for i := range dice {
		dice[i] = rand.IntN(dieFaces) + 1
	}
	return dice
}

// SeqRoller 按顺序吐出预设点数，用尽后从头循环。
type SeqRoller struct {
	mu    sync.Mutex
	faces []int
	next  int
}

func NewSeqRoller(faces ...int) *SeqRoller {
	return &SeqRoller{faces: faces}
}

func (s *SeqRoller) Roll(n int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	dice := make([]int, n)
	for i := range dice {
		if len(s.faces) == 0 {
			dice[i] = 1
			continue
		}
		dice[i] = s.faces[s.next%len(s.faces)]
		s.next++
	}
	return dice
}

// validateRoll 骰子数 1..min(2, allowed)，每颗 1..6。
func validateRoll(r entity.Roll, allowed int) error {
	limit := min(maxDice, max(allowed, 1))
	if len(r.Dice) < 1 || len(r.Dice) > limit {
		return errs.ErrInvalidRoll.WithReason(errs.ReasonDiceCount).
			WithDataMap(map[string]any{"dice": r.Dice, "allowed": limit})
	}
	for _, d := range r.Dice {
		if d < 1 || d > dieFaces {
			return errs.ErrInvalidRoll.WithReason(errs.ReasonDieFace).
				WithDataMap(map[string]any{"dice": r.Dice, "allowed": limit})
		}
	}
	return nil
}

func validateDiceCount(n, allowed int) error {
	limit := min(maxDice, max(allowed, 1))
	if n < 1 || n > limit {
		return errs.ErrInvalidRoll.WithReason(errs.ReasonDiceCount).
			WithDataMap(map[string]any{"dice_count": n, "allowed": limit})
	}
	return nil
}
