package game

// Destination 一个可达终点：路径（含起点与终点）、消耗的卡、是否为目标格
type Destination struct {
	Path        []HexCoord
	CardID      string
	CardTerrain Terrain
	IsGoal      bool
}

// Steps returns the number of hex steps of the path.
func (d Destination) Steps() int { return len(d.Path) - 1 }

// Final returns the last hex of the path.
func (d Destination) Final() HexCoord { return d.Path[len(d.Path)-1] }

// Reachability 终点 → 走法。手牌、选牌或棋子位置一变就过期。
type Reachability map[HexCoord]Destination

// Endpoints returns the reachable hexes ordered by (r, q).
func (rc Reachability) Endpoints() []HexCoord {
	coords := make([]HexCoord, 0, len(rc))
	for c := range rc {
		coords = append(coords, c)
	}
	sortCoords(coords)
	return coords
}

type frontierNode struct {
	c     HexCoord
	depth int
}

// Reachable 计算 piece 的所有合法终点，使用棋子所属玩家的手牌与选牌。
// 每张候选卡独立做一次 BFS；同一终点保留最短路径，不论来自哪张卡。
func Reachable(b *Board, pieces []Piece, cards *CardManager, piece Piece) Reachability {
	out := make(Reachability)
	if cards == nil {
		return out
	}
	candidates := cards.candidates(piece.Owner)
	if len(candidates) == 0 {
		return out
	}

	occupied := make(map[HexCoord]bool, len(pieces))
	for _, p := range pieces {
		if p.ID != piece.ID {
			occupied[p.Pos] = true
		}
	}

	for _, card := range candidates {
		maxRange := card.Steps()
		came := map[HexCoord]HexCoord{piece.Pos: piece.Pos}
		// 用下标游标出队，避免切片头部删除
		queue := []frontierNode{{c: piece.Pos}}
		for head := 0; head < len(queue); head++ {
			cur := queue[head]
			if cur.depth >= maxRange {
				continue
			}
			for _, d := range Directions {
				nxt := cur.c.Add(d)
				if !b.Has(nxt) || occupied[nxt] {
					continue
				}
				if _, seen := came[nxt]; seen {
					continue
				}
				terr := b.Terrain(nxt)
				goal := terr.IsGoal()
				if !goal && terr != card.Terrain {
					continue
				}
				came[nxt] = cur.c
				path := tracePath(came, piece.Pos, nxt)
				if prev, ok := out[nxt]; !ok || len(path) < len(prev.Path) {
					out[nxt] = Destination{
						Path:        path,
						CardID:      card.ID,
						CardTerrain: card.Terrain,
						IsGoal:      goal,
					}
				}
				// 目标格是终点，不从它继续扩展
				if !goal && cur.depth+1 < maxRange {
					queue = append(queue, frontierNode{c: nxt, depth: cur.depth + 1})
				}
			}
		}
	}
	return out
}

// tracePath 沿前驱表回溯出 origin..dst 的路径
func tracePath(came map[HexCoord]HexCoord, origin, dst HexCoord) []HexCoord {
	var rev []HexCoord
	for c := dst; c != origin; c = came[c] {
		rev = append(rev, c)
	}
	rev = append(rev, origin)
	path := make([]HexCoord, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}
