package effect

import (
	"slices"
	"testing"

	"MachiKoro/internal/game/catalog"
	"MachiKoro/internal/game/entity"
)

func newPlayer() entity.Player {
	return *entity.CreatePlayer("p")
}

func TestApply_每个效果都有处理函数(t *testing.T) {
	for _, kind := range catalog.Effects() {
		if _, err := Apply(kind, newPlayer()); err != nil {
			t.Fatalf("期望 %v 有处理函数, err=%v", kind, err)
		}
	}
	for _, l := range catalog.Landmarks() {
		if _, ok := table[l.Effect]; !ok {
			t.Fatalf("期望地标 %q 的效果已注册", l.Title)
		}
	}
	if _, err := Apply(catalog.Effect(99), newPlayer()); err == nil {
		t.Fatalf("期望未知效果报错")
	}
}

func TestTrainStation_可掷两颗骰子(t *testing.T) {
	p, _ := Apply(catalog.EffectTrainStation, newPlayer())
	if p.RollsAllowedPerTurn != 2 {
		t.Fatalf("期望 rollsAllowedPerTurn=2, got=%d", p.RollsAllowedPerTurn)
	}
}

func TestShoppingMall_与已有加成累加(t *testing.T) {
	base := newPlayer()
	base.Bonuses = map[catalog.Category]int{catalog.CategoryCoffee: 2, catalog.CategoryGear: 4}

	p, _ := Apply(catalog.EffectShoppingMall, base)
	if p.Bonus(catalog.CategoryCoffee) != 3 || p.Bonus(catalog.CategoryShop) != 1 || p.Bonus(catalog.CategoryGear) != 4 {
		t.Fatalf("期望 coffee=3 shop=1 gear=4, got=%v", p.Bonuses)
	}
	if base.Bonuses[catalog.CategoryCoffee] != 2 {
		t.Fatalf("期望入参玩家不被修改, got=%v", base.Bonuses)
	}
}

func TestShoppingMall_重复应用会叠加(t *testing.T) {
	p, _ := Apply(catalog.EffectShoppingMall, newPlayer())
	p, _ = Apply(catalog.EffectShoppingMall, p)
	if p.Bonus(catalog.CategoryCoffee) != 2 || p.Bonus(catalog.CategoryShop) != 2 {
		t.Fatalf("期望两次应用叠加为 +2, got=%v", p.Bonuses)
	}
}

func TestAmusementPark_幂等(t *testing.T) {
	p, _ := Apply(catalog.EffectAmusementPark, newPlayer())
	p, _ = Apply(catalog.EffectAmusementPark, p)
	n := 0
	for _, o := range p.ExtraTurnWhen {
		if o == entity.OutcomeDoubles {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("期望 doubles 只出现一次, got=%v", p.ExtraTurnWhen)
	}
}

func TestRadioTower_每回合一次重掷(t *testing.T) {
	base := newPlayer()
	p, _ := Apply(catalog.EffectRadioTower, base)
	if p.RerollsPerTurn != 1 {
		t.Fatalf("期望 rerollsPerTurn=1, got=%d", p.RerollsPerTurn)
	}
	if base.RerollsPerTurn != 0 || !slices.Equal(base.ExtraTurnWhen, []entity.Outcome{}) {
		t.Fatalf("期望入参不变, got=%+v", base)
	}
}
