package entity

import "MachiKoro/internal/game/catalog"

// Landmark 地标实例，开局即归属玩家，Purchased 只会 false -> true。
type Landmark struct {
	ID        LandmarkID     `json:"id" bson:"id"`
	DefID     int            `json:"def_id" bson:"def_id"`
	Title     string         `json:"title" bson:"title"`
	Cost      int            `json:"cost" bson:"cost"`
	Effect    catalog.Effect `json:"effect" bson:"effect"`
	Purchased bool           `json:"purchased" bson:"purchased"`
}

func newLandmark(def catalog.LandmarkDef) Landmark {
	return Landmark{
		ID:     LandmarkID(newID()),
		DefID:  def.ID,
		Title:  def.Title,
		Cost:   def.Cost,
		Effect: def.Effect,
	}
}
