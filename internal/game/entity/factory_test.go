package entity

import (
	"testing"

	"MachiKoro/internal/game/catalog"
)

func TestCreateGame_市场按数量展开且id唯一(t *testing.T) {
	g := CreateGame("queens")

	want := 0
	for _, d := range catalog.Establishments() {
		want += d.Count
	}
	if len(g.Market) != want {
		t.Fatalf("期望市场 %d 个实例, got=%d", want, len(g.Market))
	}
	if g.MaxPlayers != 4 || len(g.Players) != 0 || g.Bank != 0 {
		t.Fatalf("期望新局 maxPlayers=4 无玩家 bank=0, got=%+v", g)
	}
	if g.Turn.Phase != PhaseLobby {
		t.Fatalf("期望新局处于大厅阶段, got=%v", g.Turn.Phase)
	}

	seen := map[EstablishmentID]bool{}
	for _, e := range g.Market {
		if e.ID == "" || seen[e.ID] {
			t.Fatalf("期望实例 id 非空且唯一, dup=%q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestCreateGame_两局之间id不冲突(t *testing.T) {
	a, b := CreateGame("a"), CreateGame("b")
	if a.ID == b.ID {
		t.Fatalf("期望 game id 不同")
	}
	ids := map[EstablishmentID]bool{}
	for _, e := range a.Market {
		ids[e.ID] = true
	}
	for _, e := range b.Market {
		if ids[e.ID] {
			t.Fatalf("期望跨局实例 id 不冲突, dup=%q", e.ID)
		}
	}
}

func TestCreatePlayer_初始状态(t *testing.T) {
	p := CreatePlayer("ann")
	if p.Money != 0 || p.RollsAllowedPerTurn != 1 || p.RerollsPerTurn != 0 {
		t.Fatalf("期望 money=0 rolls=1 rerolls=0, got=%+v", p)
	}
	if len(p.ExtraTurnWhen) != 0 || len(p.Bonuses) != 0 {
		t.Fatalf("期望无额外回合条件与加成, got=%+v", p)
	}
	if len(p.Establishments) != 2 || !p.OwnsDef(1) || !p.OwnsDef(3) {
		t.Fatalf("期望初始持有麦田与面包房, got=%+v", p.Establishments)
	}
	if len(p.Landmarks) != 4 {
		t.Fatalf("期望 4 个地标, got=%d", len(p.Landmarks))
	}
	for _, l := range p.Landmarks {
		if l.Purchased {
			t.Fatalf("期望地标初始未建成, got=%+v", l)
		}
	}
	if p.AllLandmarksPurchased() {
		t.Fatalf("期望新玩家未获胜")
	}
}

func TestGameClone_深拷贝不共享(t *testing.T) {
	g := CreateGame("clone")
	p := CreatePlayer("p")
	p.Bonuses = map[catalog.Category]int{catalog.CategoryCoffee: 1}
	g.Players = append(g.Players, *p)
	g.Turn.Roll = &Roll{Dice: []int{3, 3}}

	c := g.Clone()
	c.Players[0].Money = 9
	c.Players[0].Bonuses[catalog.CategoryCoffee] = 5
	c.Players[0].Establishments[0].ActiveOn[0] = 12
	c.Market = c.Market[1:]
	c.Turn.Roll.Dice[0] = 1

	if g.Players[0].Money != 0 || g.Players[0].Bonuses[catalog.CategoryCoffee] != 1 {
		t.Fatalf("期望原玩家不受影响, got=%+v", g.Players[0])
	}
	if g.Players[0].Establishments[0].ActiveOn[0] == 12 {
		t.Fatalf("期望建筑激活集合不共享")
	}
	if g.Turn.Roll.Dice[0] != 3 {
		t.Fatalf("期望骰子结果不共享")
	}
}

func TestRoll_双骰与点数(t *testing.T) {
	if r := (Roll{Dice: []int{4, 4}}); !r.Doubles() || r.Sum() != 8 || len(r.Outcomes()) != 1 {
		t.Fatalf("期望 4+4 为双数, got=%+v", r)
	}
	if r := (Roll{Dice: []int{6}}); r.Doubles() || r.Sum() != 6 {
		t.Fatalf("期望单骰不是双数")
	}
}
