package effect

import (
	"fmt"
	"slices"

	"MachiKoro/internal/game/catalog"
	"MachiKoro/internal/game/entity"
)

// Func 纯函数：输入玩家副本，返回修改后的玩家。
type Func func(entity.Player) entity.Player

// table 覆盖 catalog.Effects() 的全部枚举值，由测试保证穷尽。
var table = map[catalog.Effect]Func{
	catalog.EffectTrainStation:  trainStation,
	catalog.EffectShoppingMall:  shoppingMall,
	catalog.EffectAmusementPark: amusementPark,
	catalog.EffectRadioTower:    radioTower,
}

// Apply 执行地标效果。不做重复应用保护：调用方保证每个地标只在建成那一刻调用一次。
func Apply(kind catalog.Effect, p entity.Player) (entity.Player, error) {
	fn, ok := table[kind]
	if !ok {
		return p, fmt.Errorf("effect: no handler for %v", kind)
	}
	return fn(p.Clone()), nil
}

// trainStation 可选择掷 1 或 2 颗骰子。
func trainStation(p entity.Player) entity.Player {
	p.RollsAllowedPerTurn = 2
	return p
}

// shoppingMall coffee 与 shop 各 +1，与已有加成累加；重复应用会叠加。
func shoppingMall(p entity.Player) entity.Player {
	if p.Bonuses == nil {
		p.Bonuses = make(map[catalog.Category]int, 2)
	}
	p.Bonuses[catalog.CategoryCoffee]++
	p.Bonuses[catalog.CategoryShop]++
	return p
}

// amusementPark 掷出双数获得额外回合，集合并，幂等。
func amusementPark(p entity.Player) entity.Player {
	if !slices.Contains(p.ExtraTurnWhen, entity.OutcomeDoubles) {
		p.ExtraTurnWhen = append(p.ExtraTurnWhen, entity.OutcomeDoubles)
	}
	return p
}

// radioTower 每回合可重掷一次，回合开始时重置使用次数。
func radioTower(p entity.Player) entity.Player {
	p.RerollsPerTurn = 1
	return p
}
