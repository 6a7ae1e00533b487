package mapfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexcards_go/internal/game"
)

func TestParseCells(t *testing.T) {
	src := `{
		"name": "tiny",
		"cells": [{"q":0,"r":0,"tex":"diamond"},{"q":1,"r":0},{"q":4,"r":0}],
		"pieces": {"p1": [{"q":1,"r":0}], "p2": [{"q":4,"r":0}]}
	}`
	m, err := Parse([]byte(src), ".json")
	require.NoError(t, err)

	assert.Equal(t, "tiny", m.Name)
	assert.Equal(t, 3, m.Board.Len())
	assert.Equal(t, game.Diamond, m.Board.Terrain(game.HexCoord{Q: 0, R: 0}))
	assert.Equal(t, "hello-water", m.Board.Tag(game.HexCoord{Q: 1, R: 0}), "缺省贴图按距离生成")
	assert.Equal(t, game.Sand, m.Board.Terrain(game.HexCoord{Q: 4, R: 0}))

	require.Len(t, m.Pieces, 2)
	assert.Equal(t, game.Piece{ID: 1, Owner: game.Player1, Pos: game.HexCoord{Q: 1, R: 0}}, m.Pieces[0])
	assert.Equal(t, game.Piece{ID: 2, Owner: game.Player2, Pos: game.HexCoord{Q: 4, R: 0}}, m.Pieces[1])
}

func TestParseLayoutYAML(t *testing.T) {
	src := `
name: rows
layout:
  - "gw"
  - ".Dm"
legend:
  g: {tex: hello-grass}
  w: {tex: hello-water}
  D: {tex: diamond}
`
	m, err := Parse([]byte(src), ".yml")
	require.NoError(t, err)
	assert.Equal(t, 4, m.Board.Len())

	// row 0: q = col；row 1: q = col - 1
	assert.Equal(t, game.Grass, m.Board.Terrain(game.HexCoord{Q: 0, R: 0}))
	assert.Equal(t, game.Water, m.Board.Terrain(game.HexCoord{Q: 1, R: 0}))
	assert.False(t, m.Board.Has(game.HexCoord{Q: -1, R: 1}), "'.' 是空位")
	assert.Equal(t, game.Diamond, m.Board.Terrain(game.HexCoord{Q: 0, R: 1}))
	assert.True(t, m.Board.Has(game.HexCoord{Q: 1, R: 1}))
	assert.Equal(t, game.TerrainUnknown, m.Board.Terrain(game.HexCoord{Q: 1, R: 1}), "图例里没有的符号")
}

func TestLayoutOddRowsShiftLeft(t *testing.T) {
	m := Build(Document{Layout: []string{"", "", "", "x"}})
	assert.True(t, m.Board.Has(game.HexCoord{Q: -2, R: 3}))
}

func TestParseRadiusRings(t *testing.T) {
	m, err := Parse([]byte("radius: 4\n"), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, 61, m.Board.Len())
	assert.Equal(t, "Unnamed Map", m.Name)

	counts := m.Board.TerrainCounts()
	assert.Equal(t, 7, counts[game.Water])
	assert.Equal(t, 30, counts[game.Grass])
	assert.Equal(t, 24, counts[game.Sand])
}

func TestSpawn(t *testing.T) {
	b := game.NewHexagonBoard(2, "grass")
	pieces := Spawn(b)
	require.Len(t, pieces, 2*PiecesPerSide)

	seen := map[game.HexCoord]bool{}
	for i, p := range pieces {
		assert.Equal(t, i+1, p.ID)
		assert.False(t, seen[p.Pos], "两个棋子落在同一格: %v", p.Pos)
		seen[p.Pos] = true
		if i < PiecesPerSide {
			assert.Equal(t, game.Player1, p.Owner)
			assert.LessOrEqual(t, p.Pos.R, -1)
		} else {
			assert.Equal(t, game.Player2, p.Owner)
			assert.GreaterOrEqual(t, p.Pos.R, 1)
		}
	}
	assert.Equal(t, game.HexCoord{Q: 0, R: -2}, pieces[0].Pos)
	assert.Equal(t, game.HexCoord{Q: 0, R: 2}, pieces[len(pieces)-1].Pos)
}

func TestSpawnSmallBoardDoesNotOverlap(t *testing.T) {
	b := game.NewHexagonBoard(1, "grass")
	pieces := Spawn(b)
	assert.Len(t, pieces, 7)

	var p2 int
	for _, p := range pieces {
		if p.Owner == game.Player2 {
			p2++
		}
	}
	assert.Equal(t, 2, p2)
}

func TestEmptyDocument(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		m, err := Parse(nil, ext)
		require.NoError(t, err, ext)
		assert.Zero(t, m.Board.Len())
		assert.Empty(t, m.Pieces)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("{}"), ".toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse([]byte("{"), ".json")
	assert.Error(t, err)

	_, err = Parse([]byte("layout: [unclosed"), ".yaml")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"f","radius":1}`), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "f", m.Name)
	assert.Equal(t, 7, m.Board.Len())
}

func TestDefaultMap(t *testing.T) {
	m, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, "Default", m.Name)
	assert.Equal(t, 61, m.Board.Len())
	assert.Equal(t, 2, m.Board.TerrainCounts()[game.Diamond])
	assert.Len(t, m.Pieces, 2*PiecesPerSide)
	for _, p := range m.Pieces {
		assert.NotEqual(t, game.Diamond, m.Board.Terrain(p.Pos))
	}
	assert.Contains(t, m.Summary(), "Default: 61 hexes")
	assert.Contains(t, m.Summary(), "pieces p1=5 p2=5")
}

func TestBundledMaps(t *testing.T) {
	for _, name := range []string{"default.yaml", "islands.json"} {
		m, err := Load(filepath.Join("..", "..", "maps", name))
		require.NoError(t, err, name)
		assert.NotZero(t, m.Board.Len(), name)
		assert.NotEmpty(t, m.Pieces, name)
	}
}
