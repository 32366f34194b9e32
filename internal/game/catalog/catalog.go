package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed establishments.json
var establishmentsJSON []byte

//go:embed landmarks.json
var landmarksJSON []byte

type establishmentFile struct {
	Title string             `json:"title"`
	List  []EstablishmentDef `json:"list"`
}

type landmarkFile struct {
	Title string        `json:"title"`
	List  []LandmarkDef `json:"list"`
}

type catalog struct {
	establishments []EstablishmentDef
	byID           map[int]int
	landmarks      []LandmarkDef
	landmarkByID   map[int]int
}

var (
	loadOnce sync.Once
	conf     *catalog
)

// Load 解析内嵌配置，数据非法直接 panic（启动期失败）。重复调用无副作用。
func Load() {
	loadOnce.Do(func() {
		c, err := parse(establishmentsJSON, landmarksJSON)
		if err != nil {
			panic(fmt.Errorf("load catalog failed: %w", err))
		}
		conf = c
	})
}

func get() *catalog {
	Load()
	return conf
}

func parse(estRaw, lmRaw []byte) (*catalog, error) {
	var ef establishmentFile
	if err := json.Unmarshal(estRaw, &ef); err != nil {
		return nil, fmt.Errorf("decode establishments: %w", err)
	}
	var lf landmarkFile
	if err := json.Unmarshal(lmRaw, &lf); err != nil {
		return nil, fmt.Errorf("decode landmarks: %w", err)
	}

	c := &catalog{
		establishments: ef.List,
		byID:           make(map[int]int, len(ef.List)),
		landmarks:      lf.List,
		landmarkByID:   make(map[int]int, len(lf.List)),
	}
	for i, d := range ef.List {
		if err := validateEstablishment(d); err != nil {
			return nil, err
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate establishment id %d", d.ID)
		}
		c.byID[d.ID] = i
	}
	for i, l := range lf.List {
		if l.ID <= 0 || l.Cost <= 0 || l.Effect == 0 {
			return nil, fmt.Errorf("invalid landmark %d", l.ID)
		}
		if _, dup := c.landmarkByID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate landmark id %d", l.ID)
		}
		c.landmarkByID[l.ID] = i
	}
	return c, nil
}

func validateEstablishment(d EstablishmentDef) error {
	switch {
	case d.ID <= 0:
		return fmt.Errorf("establishment id must be positive, got %d", d.ID)
	case d.Count <= 0 || d.Cost <= 0:
		return fmt.Errorf("establishment %d: count and cost must be positive", d.ID)
	case !d.Category.Valid() || !d.Activation.Valid():
		return fmt.Errorf("establishment %d: bad category %q or activation %q", d.ID, d.Category, d.Activation)
	case d.Multiplier != "" && !d.Multiplier.Valid():
		return fmt.Errorf("establishment %d: bad multiplier %q", d.ID, d.Multiplier)
	case len(d.ActiveOn) == 0:
		return fmt.Errorf("establishment %d: empty activation set", d.ID)
	case (d.Activation == ActivationMajor) != (d.Action != MajorNone):
		return fmt.Errorf("establishment %d: major activation and action must go together", d.ID)
	}
	for _, v := range d.ActiveOn {
		if v < 1 || v > 12 {
			return fmt.Errorf("establishment %d: activation value %d out of range", d.ID, v)
		}
	}
	return nil
}

// Establishments 全部建筑定义，按配置顺序返回副本。
func Establishments() []EstablishmentDef {
	c := get()
	out := make([]EstablishmentDef, 0, len(c.establishments))
	for _, d := range c.establishments {
		out = append(out, d.clone())
	}
	return out
}

func Establishment(id int) (EstablishmentDef, bool) {
	c := get()
	i, ok := c.byID[id]
	if !ok {
		return EstablishmentDef{}, false
	}
	return c.establishments[i].clone(), true
}

func ByCategory(cat Category) []EstablishmentDef {
	var out []EstablishmentDef
	for _, d := range get().establishments {
		if d.Category == cat {
			out = append(out, d.clone())
		}
	}
	return out
}

// Landmarks 固定顺序：火车站、购物中心、游乐园、电视塔。
func Landmarks() []LandmarkDef {
	c := get()
	out := make([]LandmarkDef, len(c.landmarks))
	copy(out, c.landmarks)
	return out
}

func Landmark(id int) (LandmarkDef, bool) {
	c := get()
	i, ok := c.landmarkByID[id]
	if !ok {
		return LandmarkDef{}, false
	}
	return c.landmarks[i], true
}
