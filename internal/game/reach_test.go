package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardOf 用 坐标 → 标签 构造棋盘
func boardOf(tags map[HexCoord]string) *Board {
	b := NewBoard()
	for c, tag := range tags {
		b.SetTag(c, tag)
	}
	return b
}

// cardsWithHand 给 p 一手指定的牌
func cardsWithHand(p Player, hand ...Card) *CardManager {
	m := newTestCards()
	pc := m.Ensure(p)
	pc.Hand = append([]Card(nil), hand...)
	return m
}

func TestReachableLine(t *testing.T) {
	b := boardOf(map[HexCoord]string{
		{0, 0}: "grass", {1, 0}: "grass", {2, 0}: "grass",
	})
	piece := Piece{ID: 1, Owner: Player1, Pos: HexCoord{0, 0}}
	cards := cardsWithHand(Player1, Card{ID: "g2", Terrain: Grass, Range: 2})

	rc := Reachable(b, []Piece{piece}, cards, piece)
	require.Len(t, rc, 2)

	d1 := rc[HexCoord{1, 0}]
	assert.Equal(t, 1, d1.Steps())
	assert.Equal(t, "g2", d1.CardID)
	assert.Equal(t, []HexCoord{{0, 0}, {1, 0}}, d1.Path)

	d2 := rc[HexCoord{2, 0}]
	assert.Equal(t, 2, d2.Steps())
	assert.Equal(t, "g2", d2.CardID)
	assert.Equal(t, []HexCoord{{0, 0}, {1, 0}, {2, 0}}, d2.Path)
	assert.False(t, d2.IsGoal)

	assert.Equal(t, []HexCoord{{1, 0}, {2, 0}}, rc.Endpoints())
}

func TestReachableOccupiedBlocks(t *testing.T) {
	b := boardOf(map[HexCoord]string{
		{0, 0}: "grass", {1, 0}: "grass", {2, 0}: "grass", {3, 0}: "grass",
	})
	mover := Piece{ID: 1, Owner: Player1, Pos: HexCoord{0, 0}}
	blocker := Piece{ID: 2, Owner: Player2, Pos: HexCoord{1, 0}}
	cards := cardsWithHand(Player1, Card{ID: "g3", Terrain: Grass, Range: 3})

	rc := Reachable(b, []Piece{mover, blocker}, cards, mover)
	assert.Empty(t, rc, "不能穿过或停在被占的格子")
}

func TestReachableShortestPathWins(t *testing.T) {
	// (2,0) 是钻石格：草地卡要绕 3 步，水卡直走 2 步
	b := boardOf(map[HexCoord]string{
		{0, 0}:  "grass",
		{1, -1}: "grass",
		{2, -1}: "grass",
		{1, 0}:  "water",
		{2, 0}:  "diamond",
	})
	piece := Piece{ID: 1, Owner: Player1, Pos: HexCoord{0, 0}}
	grass := Card{ID: "g3", Terrain: Grass, Range: 3}
	water := Card{ID: "w2", Terrain: Water, Range: 2}
	goal := HexCoord{2, 0}

	for _, hand := range [][]Card{{grass, water}, {water, grass}} {
		rc := Reachable(b, []Piece{piece}, cardsWithHand(Player1, hand...), piece)
		d, ok := rc[goal]
		require.True(t, ok)
		assert.Equal(t, 2, d.Steps(), "hand %v", hand)
		assert.Equal(t, "w2", d.CardID, "hand %v", hand)
		assert.True(t, d.IsGoal)

		assert.Equal(t, "g3", rc[HexCoord{2, -1}].CardID)
		assert.Equal(t, "w2", rc[HexCoord{1, 0}].CardID)
	}
}

func TestReachableTerrainLaw(t *testing.T) {
	b := NewBoard()
	for _, c := range NewHexagonBoard(3, "").AllCoords() {
		switch {
		case c == HexCoord{2, -1}:
			b.SetTag(c, "diamond")
		case c.Q == 0:
			b.SetTag(c, "rock")
		case (c.Q+c.R)%2 == 0:
			b.SetTag(c, "grass")
		default:
			b.SetTag(c, "sand")
		}
	}
	piece := Piece{ID: 1, Owner: Player1, Pos: HexCoord{1, 0}}
	other := Piece{ID: 2, Owner: Player2, Pos: HexCoord{2, 0}}
	hand := []Card{
		{ID: "g2", Terrain: Grass, Range: 2},
		{ID: "s1", Terrain: Sand, Range: 1},
		{ID: "s3", Terrain: Sand, Range: 3},
	}
	cards := cardsWithHand(Player1, hand...)
	byID := map[string]Card{}
	for _, c := range hand {
		byID[c.ID] = c
	}

	rc := Reachable(b, []Piece{piece, other}, cards, piece)
	require.NotEmpty(t, rc)
	_, self := rc[piece.Pos]
	assert.False(t, self, "起点不会出现在结果里")

	for dest, d := range rc {
		card := byID[d.CardID]
		assert.NotEqual(t, other.Pos, dest)
		assert.Equal(t, piece.Pos, d.Path[0])
		assert.Equal(t, dest, d.Final())
		assert.LessOrEqual(t, d.Steps(), card.Steps())
		for i, c := range d.Path[1 : len(d.Path)-1] {
			assert.Equal(t, card.Terrain, b.Terrain(c), "dest %v step %d", dest, i+1)
		}
		last := b.Terrain(dest)
		assert.True(t, last == card.Terrain || last == Diamond, "dest %v terrain %v", dest, last)
		for i := 1; i < len(d.Path); i++ {
			assert.Equal(t, 1, Distance(d.Path[i-1], d.Path[i]))
		}
	}
}

func TestReachableSelectedCardOnly(t *testing.T) {
	b := boardOf(map[HexCoord]string{
		{0, 0}: "grass", {1, 0}: "grass", {-1, 0}: "water",
	})
	piece := Piece{ID: 1, Owner: Player1, Pos: HexCoord{0, 0}}
	cards := cardsWithHand(Player1,
		Card{ID: "g1", Terrain: Grass, Range: 1},
		Card{ID: "w1", Terrain: Water, Range: 1},
	)

	rc := Reachable(b, []Piece{piece}, cards, piece)
	assert.Len(t, rc, 2)

	cards.Select(Player1, "w1")
	rc = Reachable(b, []Piece{piece}, cards, piece)
	require.Len(t, rc, 1)
	assert.Equal(t, "w1", rc[HexCoord{-1, 0}].CardID)
}

func TestReachableRangeClampedToOne(t *testing.T) {
	b := boardOf(map[HexCoord]string{
		{0, 0}: "sand", {1, 0}: "sand", {2, 0}: "sand",
	})
	piece := Piece{ID: 1, Owner: Player1, Pos: HexCoord{0, 0}}
	cards := cardsWithHand(Player1, Card{ID: "s0", Terrain: Sand, Range: 0})

	rc := Reachable(b, []Piece{piece}, cards, piece)
	require.Len(t, rc, 1)
	assert.Contains(t, rc, HexCoord{1, 0})
}

func TestReachableDiamondIsTerminal(t *testing.T) {
	b := boardOf(map[HexCoord]string{
		{0, 0}: "grass", {1, 0}: "diamond", {2, 0}: "sand",
	})
	piece := Piece{ID: 1, Owner: Player1, Pos: HexCoord{0, 0}}
	cards := cardsWithHand(Player1, Card{ID: "s2", Terrain: Sand, Range: 2})

	rc := Reachable(b, []Piece{piece}, cards, piece)
	require.Len(t, rc, 1, "任何卡都能进钻石格，但不能穿过它")
	assert.True(t, rc[HexCoord{1, 0}].IsGoal)
}

func TestReachableMountainAndUnknownNeverEntered(t *testing.T) {
	b := boardOf(map[HexCoord]string{
		{0, 0}: "grass", {1, 0}: "mountain", {-1, 0}: "lava",
	})
	piece := Piece{ID: 1, Owner: Player1, Pos: HexCoord{0, 0}}
	cards := cardsWithHand(Player1, Card{ID: "g2", Terrain: Grass, Range: 2})
	assert.Empty(t, Reachable(b, []Piece{piece}, cards, piece))
}

func TestReachableWithoutPlayerState(t *testing.T) {
	b := boardOf(map[HexCoord]string{{0, 0}: "grass", {1, 0}: "grass"})
	piece := Piece{ID: 1, Owner: Player2, Pos: HexCoord{0, 0}}
	assert.Empty(t, Reachable(b, []Piece{piece}, newTestCards(), piece))
	assert.Empty(t, Reachable(b, []Piece{piece}, nil, piece))
	assert.Empty(t, Reachable(NewBoard(), nil, newTestCards(), piece))
}
