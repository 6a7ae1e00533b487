package selfplay

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexcards_go/internal/game"
	"hexcards_go/internal/mapfile"
)

func sprintMap() *mapfile.Map {
	return mapfile.Build(mapfile.Document{
		Name: "sprint",
		Cells: []mapfile.Cell{
			{Q: 0, R: 0, Tex: "grass"},
			{Q: 1, R: 0, Tex: "diamond"},
			{Q: 3, R: 3, Tex: "grass"},
		},
		Pieces: &mapfile.Pieces{
			P1: []mapfile.Coord{{Q: 0, R: 0}},
			P2: []mapfile.Coord{{Q: 3, R: 3}},
		},
	})
}

func TestPlayReachesDiamond(t *testing.T) {
	res := Play(sprintMap(), 0, 5, 10)
	assert.Equal(t, game.Player1, res.Winner)
	assert.Equal(t, 1, res.Turns)
	assert.Equal(t, 1, res.Moves)
	assert.NotEmpty(t, res.SessionID)
}

func TestPlayIsDeterministicPerSeed(t *testing.T) {
	m := mapfile.Default()
	a := Play(m, 3, 77, 40)
	b := Play(m, 3, 77, 40)
	a.SessionID, b.SessionID = "", ""
	assert.Equal(t, a, b)
	assert.LessOrEqual(t, a.Turns, 41)
	assert.Positive(t, a.Moves)
}

func TestPlayStopsAtMaxTurns(t *testing.T) {
	m := mapfile.Build(mapfile.Document{
		Cells: []mapfile.Cell{{Q: 0, R: 0, Tex: "rock"}, {Q: 1, R: 0, Tex: "rock"}},
		Pieces: &mapfile.Pieces{
			P1: []mapfile.Coord{{Q: 0, R: 0}},
			P2: []mapfile.Coord{{Q: 1, R: 0}},
		},
	})
	res := Play(m, 0, 1, 6)
	assert.Equal(t, game.NoPlayer, res.Winner)
	assert.Equal(t, 7, res.Turns)
	assert.Zero(t, res.Moves)
}

func TestRunWritesOneRowPerGame(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	n, err := Run(context.Background(), sprintMap(), Config{Games: 5, Start: 2, MaxTurns: 10, Seed: 100, Workers: 2}, w)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	games := map[string]bool{}
	for _, row := range rows {
		require.Len(t, row, len(Header))
		games[row[0]] = true
		assert.Equal(t, "1", row[2])
	}
	assert.Equal(t, map[string]bool{"2": true, "3": true, "4": true}, games)
}

func TestRunWorkersShareMap(t *testing.T) {
	// 大棋盘、多 worker：地形缓存必须各自独立，-race 下不能报告竞争
	radius := 12
	m := mapfile.Build(mapfile.Document{Radius: &radius})
	pieces := append([]game.Piece(nil), m.Pieces...)

	var buf bytes.Buffer
	n, err := Run(context.Background(), m, Config{Games: 32, MaxTurns: 30, Seed: 9, Workers: 8}, csv.NewWriter(&buf))
	require.NoError(t, err)
	assert.Equal(t, 32, n)
	assert.Equal(t, 1+3*radius*(radius+1), m.Board.Len())
	assert.Equal(t, pieces, m.Pieces, "共享的 Map 不应被对局改动")
}

func TestPlayZeroSeedIsReproducible(t *testing.T) {
	m := mapfile.Default()
	a := Play(m, 0, 0, 20)
	b := Play(m, 0, 0, 20)
	assert.Equal(t, zeroSeed, a.Seed, "0 号种子被替换并记录下来")
	a.SessionID, b.SessionID = "", ""
	assert.Equal(t, a, b)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	_, err := Run(ctx, sprintMap(), Config{Games: 1000, MaxTurns: 2, Workers: 1}, csv.NewWriter(&buf))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRepair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	n, err := Repair(path)
	require.NoError(t, err)
	assert.Zero(t, n)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "game,seed,winner,turns,moves,session\n", string(data))

	full := "game,seed,winner,turns,moves,session\n0,1,1,3,4,a\n1,2,2,5,6,b\n"
	require.NoError(t, os.WriteFile(path, []byte(full+"2,3,1"), 0o644))
	n, err = Repair(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	data, _ = os.ReadFile(path)
	assert.Equal(t, full, string(data), "残缺的尾行被截掉")
}
