package catalog

import (
	"fmt"
	"slices"
)

// Category 建筑图标分类，收入加成与乘数都按分类计算。
type Category string

const (
	CategoryGrain   Category = "grain"
	CategoryCattle  Category = "cattle"
	CategoryShop    Category = "shop" // 面包类（goods）
	CategoryCoffee  Category = "coffee"
	CategoryGear    Category = "gear"
	CategoryFactory Category = "factory"
	CategoryMajor   Category = "major"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryGrain, CategoryCattle, CategoryShop, CategoryCoffee, CategoryGear, CategoryFactory, CategoryMajor:
		return true
	default:
		return false
	}
}

// Activation 决定谁在什么时候付钱。
type Activation string

const (
	ActivationAnyTurn    Activation = "any_turn"    // 蓝：任何人的回合，银行支付
	ActivationOwnerTurn  Activation = "owner_turn"  // 绿：仅自己回合，银行支付
	ActivationFromRoller Activation = "from_roller" // 红：他人回合，掷骰者支付
	ActivationMajor      Activation = "major"       // 紫：仅自己回合，玩家之间结算
)

func (a Activation) Valid() bool {
	switch a {
	case ActivationAnyTurn, ActivationOwnerTurn, ActivationFromRoller, ActivationMajor:
		return true
	default:
		return false
	}
}

// MajorAction 紫色建筑的具体效果。
type MajorAction string

const (
	MajorNone           MajorAction = ""
	MajorStadium        MajorAction = "stadium"
	MajorTVStation      MajorAction = "tv_station"
	MajorBusinessCenter MajorAction = "business_center"
)

// Effect 地标效果种类，闭合枚举。
type Effect uint8

const (
	EffectTrainStation Effect = iota + 1
	EffectShoppingMall
	EffectAmusementPark
	EffectRadioTower
)

var effectNames = map[Effect]string{
	EffectTrainStation:  "train_station",
	EffectShoppingMall:  "shopping_mall",
	EffectAmusementPark: "amusement_park",
	EffectRadioTower:    "radio_tower",
}

// Effects 返回全部效果，顺序固定。
func Effects() []Effect {
	return []Effect{EffectTrainStation, EffectShoppingMall, EffectAmusementPark, EffectRadioTower}
}

func (e Effect) String() string {
	if s, ok := effectNames[e]; ok {
		return s
	}
	return fmt.Sprintf("effect(%d)", uint8(e))
}

func (e Effect) MarshalText() ([]byte, error) {
	s, ok := effectNames[e]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown effect %d", uint8(e))
	}
	return []byte(s), nil
}

func (e *Effect) UnmarshalText(b []byte) error {
	for k, v := range effectNames {
		if v == string(b) {
			*e = k
			return nil
		}
	}
	return fmt.Errorf("catalog: unknown effect %q", string(b))
}

// EstablishmentDef 建筑定义（只读）。
type EstablishmentDef struct {
	ID         int         `json:"id"`
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle"`
	Type       string      `json:"type"`
	Category   Category    `json:"category"`
	Activation Activation  `json:"activation"`
	Count      int         `json:"count"`
	Cost       int         `json:"cost"`
	ActiveOn   []int       `json:"active_on"`
	Income     int         `json:"income"`
	Multiplier Category    `json:"multiplier,omitempty"`
	Action     MajorAction `json:"action,omitempty"`
	Spawn      bool        `json:"spawn"`
}

// ActivatesOn 点数是否落在激活集合内。
func (d EstablishmentDef) ActivatesOn(sum int) bool {
	return slices.Contains(d.ActiveOn, sum)
}

func (d EstablishmentDef) clone() EstablishmentDef {
	d.ActiveOn = slices.Clone(d.ActiveOn)
	return d
}

// LandmarkDef 地标定义（只读）。
type LandmarkDef struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Cost     int    `json:"cost"`
	Effect   Effect `json:"effect"`
}
