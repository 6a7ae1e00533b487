package game

import "fmt"

// Player 玩家编号，只有 Player1 与 Player2 两方
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

// Opponent 返回另一方；非法值返回 NoPlayer
func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

// Valid reports whether p is one of the two seats.
func (p Player) Valid() bool { return p == Player1 || p == Player2 }

func (p Player) String() string {
	if !p.Valid() {
		return "none"
	}
	return fmt.Sprintf("player %d", int(p))
}

// Piece 棋子：创建后不会被移除，只有结算走子时才会修改位置
type Piece struct {
	ID    int
	Owner Player
	Pos   HexCoord
}
