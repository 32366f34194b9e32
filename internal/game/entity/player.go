package entity

import (
	"maps"
	"slices"

	"MachiKoro/internal/game/catalog"
)

// Outcome 掷骰结果特征，用于额外回合判定。
type Outcome string

const OutcomeDoubles Outcome = "doubles"

type Player struct {
	ID                  PlayerID                 `json:"id" bson:"id"`
	Name                string                   `json:"name" bson:"name"`
	Money               int                      `json:"money" bson:"money"`
	Establishments      []Establishment          `json:"establishments" bson:"establishments"`
	Landmarks           []Landmark               `json:"landmarks" bson:"landmarks"`
	RollsAllowedPerTurn int                      `json:"rolls_allowed_per_turn" bson:"rolls_allowed_per_turn"`
	RerollsPerTurn      int                      `json:"rerolls_per_turn" bson:"rerolls_per_turn"`
	Bonuses             map[catalog.Category]int `json:"bonuses,omitempty" bson:"bonuses,omitempty"`
	ExtraTurnWhen       []Outcome                `json:"extra_turn_when" bson:"extra_turn_when"`
}

// Clone 深拷贝，返回值与原对象不共享任何切片或 map。
func (p Player) Clone() Player {
	p.Establishments = cloneEstablishments(p.Establishments)
	p.Landmarks = slices.Clone(p.Landmarks)
	p.Bonuses = maps.Clone(p.Bonuses)
	p.ExtraTurnWhen = slices.Clone(p.ExtraTurnWhen)
	return p
}

// Bonus 某分类的收入加成。
func (p Player) Bonus(c catalog.Category) int {
	return p.Bonuses[c]
}

// CountCategory 持有某分类建筑的数量。
func (p Player) CountCategory(c catalog.Category) int {
	n := 0
	for _, e := range p.Establishments {
		if e.Category == c {
			n++
		}
	}
	return n
}

// OwnsDef 是否已持有某种建筑。
func (p Player) OwnsDef(defID int) bool {
	return slices.ContainsFunc(p.Establishments, func(e Establishment) bool { return e.DefID == defID })
}

func (p Player) EstablishmentIndex(id EstablishmentID) int {
	return slices.IndexFunc(p.Establishments, func(e Establishment) bool { return e.ID == id })
}

func (p Player) LandmarkIndex(id LandmarkID) int {
	return slices.IndexFunc(p.Landmarks, func(l Landmark) bool { return l.ID == id })
}

// ExtraTurnOn 结果是否触发额外回合。
func (p Player) ExtraTurnOn(o Outcome) bool {
	return slices.Contains(p.ExtraTurnWhen, o)
}

// AllLandmarksPurchased 四个地标全部建成即获胜。
func (p Player) AllLandmarksPurchased() bool {
	if len(p.Landmarks) == 0 {
		return false
	}
	for _, l := range p.Landmarks {
		if !l.Purchased {
			return false
		}
	}
	return true
}
