package engine

import (
	"testing"

	"MachiKoro/internal/game/entity"

	"pgregory.net/rapid"
)

// 随机对局：金币永不为负，玩家金币 + 银行净额守恒，每个建筑实例只有一个归属。
func TestRandomTurns_账目守恒(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 4).Draw(rt, "players")
		g := CreateGame("prop")
		for i := 0; i < n; i++ {
			g, _ = AddPlayer(g, *CreatePlayer("p"))
		}
		g, err := StartGame(g, RandomRoller{})
		if err != nil {
			rt.Fatalf("start err=%v", err)
		}
		instances := len(g.Market)
		for _, p := range g.Players {
			instances += len(p.Establishments)
		}

		turns := rapid.IntRange(1, 30).Draw(rt, "turns")
		for i := 0; i < turns; i++ {
			active := g.Players[g.Turn.Active]
			count := rapid.IntRange(1, active.RollsAllowedPerTurn).Draw(rt, "dice_count")
			dice := rapid.SliceOfN(rapid.IntRange(1, 6), count, count).Draw(rt, "dice")
			_, next, err := RollDiceWith(g, active.ID, entity.Roll{Dice: dice})
			if err != nil {
				rt.Fatalf("roll err=%v", err)
			}
			g = next

			if len(g.Market) > 0 && rapid.Bool().Draw(rt, "buy") {
				idx := rapid.IntRange(0, len(g.Market)-1).Draw(rt, "market_index")
				if next, err := PurchaseEstablishment(g, active.ID, g.Market[idx].ID); err == nil {
					g = next
				}
			}
			if g, err = EndTurn(g, active.ID); err != nil {
				rt.Fatalf("end turn err=%v", err)
			}

			seen := map[entity.EstablishmentID]bool{}
			total := len(g.Market)
			for _, e := range g.Market {
				seen[e.ID] = true
			}
			for _, p := range g.Players {
				if p.Money < 0 {
					rt.Fatalf("期望金币非负, got=%d", p.Money)
				}
				total += len(p.Establishments)
				for _, e := range p.Establishments {
					if seen[e.ID] {
						rt.Fatalf("期望建筑实例唯一归属, id=%s", e.ID)
					}
					seen[e.ID] = true
				}
			}
			if total != instances {
				rt.Fatalf("期望实例总数不变, got=%d want=%d", total, instances)
			}
			if int64(g.TotalMoney())+g.Bank != 0 {
				rt.Fatalf("期望金币 + 银行净额为 0, got=%d", int64(g.TotalMoney())+g.Bank)
			}
		}
	})
}
