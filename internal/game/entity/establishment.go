package entity

import (
	"slices"

	"MachiKoro/internal/game/catalog"
)

// Establishment 建筑实例：市场或某一位玩家持有，id 全局唯一。
type Establishment struct {
	ID         EstablishmentID     `json:"id" bson:"id"`
	DefID      int                 `json:"def_id" bson:"def_id"`
	Title      string              `json:"title" bson:"title"`
	Category   catalog.Category    `json:"category" bson:"category"`
	Activation catalog.Activation  `json:"activation" bson:"activation"`
	Cost       int                 `json:"cost" bson:"cost"`
	ActiveOn   []int               `json:"active_on" bson:"active_on"`
	Income     int                 `json:"income" bson:"income"`
	Multiplier catalog.Category    `json:"multiplier,omitempty" bson:"multiplier,omitempty"`
	Action     catalog.MajorAction `json:"action,omitempty" bson:"action,omitempty"`
}

func newEstablishment(def catalog.EstablishmentDef) Establishment {
	return Establishment{
		ID:         EstablishmentID(newID()),
		DefID:      def.ID,
		Title:      def.Title,
		Category:   def.Category,
		Activation: def.Activation,
		Cost:       def.Cost,
		ActiveOn:   slices.Clone(def.ActiveOn),
		Income:     def.Income,
		Multiplier: def.Multiplier,
		Action:     def.Action,
	}
}

func (e Establishment) ActivatesOn(sum int) bool {
	return slices.Contains(e.ActiveOn, sum)
}

func (e Establishment) IsMajor() bool {
	return e.Activation == catalog.ActivationMajor
}

func (e Establishment) Clone() Establishment {
	e.ActiveOn = slices.Clone(e.ActiveOn)
	return e
}

func cloneEstablishments(in []Establishment) []Establishment {
	if in == nil {
		return nil
	}
	out := make([]Establishment, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
