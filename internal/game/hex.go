package game

import (
	"fmt"
	"math"
)

// HexCoord represents an axial hex coordinate (q, r).
type HexCoord struct {
	Q, R int
}

// Directions defines the 6 neighbor offsets in axial coordinates.
// Adjacency is defined by these offsets only.
var Directions = [6]HexCoord{
	{1, 0}, {1, -1}, {0, -1},
	{-1, 0}, {-1, 1}, {0, 1},
}

// Add returns c translated by d.
func (c HexCoord) Add(d HexCoord) HexCoord {
	return HexCoord{c.Q + d.Q, c.R + d.R}
}

// Sub returns the offset from o to c.
func (c HexCoord) Sub(o HexCoord) HexCoord {
	return HexCoord{c.Q - o.Q, c.R - o.R}
}

// Key returns the canonical "q,r" string for c.
func (c HexCoord) Key() string {
	return fmt.Sprintf("%d,%d", c.Q, c.R)
}

func (c HexCoord) String() string {
	return "(" + c.Key() + ")"
}

// Neighbor returns the neighbor of c in direction i (0..5).
func (c HexCoord) Neighbor(i int) HexCoord {
	return c.Add(Directions[((i%6)+6)%6])
}

// Neighbors returns all 6 neighbors of c, on the board or not.
func (c HexCoord) Neighbors() [6]HexCoord {
	var out [6]HexCoord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Distance returns the hex distance between a and b.
func Distance(a, b HexCoord) int {
	d := a.Sub(b)
	return (abs(d.Q) + abs(d.Q+d.R) + abs(d.R)) / 2
}

// RoundToHex rounds a fractional axial coordinate to the nearest hex.
// 立方坐标 x=q, z=r, y=-x-z 分别取整，误差最大的那一轴由另外两轴重新推出，
// 保证 x+y+z=0。
func RoundToHex(qf, rf float64) HexCoord {
	xf, zf := qf, rf
	yf := -xf - zf

	// 0.5 一律向上取整（-0.5 → 0），与 math.Round 的远离零取整不同
	rx := math.Floor(xf + 0.5)
	ry := math.Floor(yf + 0.5)
	rz := math.Floor(zf + 0.5)

	dx := math.Abs(rx - xf)
	dy := math.Abs(ry - yf)
	dz := math.Abs(rz - zf)

	if dx > dy && dx > dz {
		rx = -ry - rz
	} else if dy > dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return HexCoord{Q: int(rx), R: int(rz)}
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
