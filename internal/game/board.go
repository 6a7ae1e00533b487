package game

import "sort"

// Board is the set of playable hexes, each carrying an opaque terrain tag.
// A coordinate is traversable only if it is on the board.
type Board struct {
	tags    map[HexCoord]string
	terrain map[HexCoord]Terrain // 首次查询时缓存分类结果
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		tags:    make(map[HexCoord]string),
		terrain: make(map[HexCoord]Terrain),
	}
}

// NewHexagonBoard creates a board with every hex within radius of the
// origin, all tagged with tag.
func NewHexagonBoard(radius int, tag string) *Board {
	b := NewBoard()
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			c := HexCoord{q, r}
			if Distance(HexCoord{}, c) <= radius {
				b.SetTag(c, tag)
			}
		}
	}
	return b
}

// Clone returns an independent copy of b. A Board is not safe for
// concurrent use because Terrain fills its cache lazily; goroutines each
// take their own clone.
func (b *Board) Clone() *Board {
	out := NewBoard()
	if b == nil {
		return out
	}
	for c, tag := range b.tags {
		out.tags[c] = tag
	}
	for c, t := range b.terrain {
		out.terrain[c] = t
	}
	return out
}

// SetTag adds c to the board (if missing) and sets its terrain tag.
func (b *Board) SetTag(c HexCoord, tag string) {
	b.tags[c] = tag
	delete(b.terrain, c)
}

// Has returns true if c is on the board.
func (b *Board) Has(c HexCoord) bool {
	if b == nil {
		return false
	}
	_, ok := b.tags[c]
	return ok
}

// Tag returns the raw terrain tag of c, or "" if c is not on the board.
func (b *Board) Tag(c HexCoord) string {
	if b == nil {
		return ""
	}
	return b.tags[c]
}

// Terrain returns the classified terrain of c. Off-board hexes are
// TerrainUnknown.
func (b *Board) Terrain(c HexCoord) Terrain {
	if !b.Has(c) {
		return TerrainUnknown
	}
	if t, ok := b.terrain[c]; ok {
		return t
	}
	t := ClassifyTerrain(b.tags[c])
	b.terrain[c] = t
	return t
}

// Len returns the number of hexes on the board.
func (b *Board) Len() int {
	if b == nil {
		return 0
	}
	return len(b.tags)
}

// AllCoords returns every coordinate on the board, ordered by (r, q).
func (b *Board) AllCoords() []HexCoord {
	if b == nil {
		return nil
	}
	coords := make([]HexCoord, 0, len(b.tags))
	for c := range b.tags {
		coords = append(coords, c)
	}
	sortCoords(coords)
	return coords
}

// sortCoords orders coordinates by (r, q).
func sortCoords(coords []HexCoord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].R != coords[j].R {
			return coords[i].R < coords[j].R
		}
		return coords[i].Q < coords[j].Q
	})
}

// Neighbors returns all on-board neighbor coordinates of c.
func (b *Board) Neighbors(c HexCoord) []HexCoord {
	var result []HexCoord
	for _, d := range Directions {
		n := c.Add(d)
		if b.Has(n) {
			result = append(result, n)
		}
	}
	return result
}

// Bounds returns the min/max q and r over the board. ok is false for an
// empty board.
func (b *Board) Bounds() (minQ, maxQ, minR, maxR int, ok bool) {
	if b == nil {
		return 0, 0, 0, 0, false
	}
	first := true
	for c := range b.tags {
		if first {
			minQ, maxQ, minR, maxR = c.Q, c.Q, c.R, c.R
			first = false
			continue
		}
		minQ = min(minQ, c.Q)
		maxQ = max(maxQ, c.Q)
		minR = min(minR, c.R)
		maxR = max(maxR, c.R)
	}
	return minQ, maxQ, minR, maxR, !first
}

// TerrainCounts 统计各地形格子数量
func (b *Board) TerrainCounts() map[Terrain]int {
	out := make(map[Terrain]int)
	for _, c := range b.AllCoords() {
		out[b.Terrain(c)]++
	}
	return out
}
