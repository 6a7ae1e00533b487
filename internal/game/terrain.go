package game

import "strings"

// Terrain 地形类别，决定哪些卡可以进入该格
type Terrain int

const (
	TerrainUnknown Terrain = iota
	Grass
	Sand
	Water
	Mountain
	Diamond // 目标地形：任何卡都能进入，进入即获胜
)

var terrainNames = [...]string{
	TerrainUnknown: "unknown",
	Grass:          "grass",
	Sand:           "sand",
	Water:          "water",
	Mountain:       "mountain",
	Diamond:        "diamond",
}

func (t Terrain) String() string {
	if t < 0 || int(t) >= len(terrainNames) {
		return terrainNames[TerrainUnknown]
	}
	return terrainNames[t]
}

// Enterable reports whether any card could ever lead onto t.
func (t Terrain) Enterable() bool {
	switch t {
	case Grass, Sand, Water, Diamond:
		return true
	default:
		return false
	}
}

// IsGoal reports whether t is the goal terrain.
func (t Terrain) IsGoal() bool { return t == Diamond }

// ClassifyTerrain 把任意贴图/标签字符串映射为地形类别（不区分大小写的子串匹配）。
// 匹配顺序 grass、sand、water、mountain|rock、diamond；都不匹配返回 TerrainUnknown。
func ClassifyTerrain(tag string) Terrain {
	if tag == "" {
		return TerrainUnknown
	}
	t := strings.ToLower(tag)
	switch {
	case strings.Contains(t, "grass"):
		return Grass
	case strings.Contains(t, "sand"):
		return Sand
	case strings.Contains(t, "water"):
		return Water
	case strings.Contains(t, "mountain"), strings.Contains(t, "rock"):
		return Mountain
	case strings.Contains(t, "diamond"):
		return Diamond
	}
	return TerrainUnknown
}
