package game

import (
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Options 会话参数，零值即默认配置
type Options struct {
	Seed         int64         // 0 表示按当前时间取种子
	HandSize     int           // 每回合抽牌数/手牌上限，<=0 用 DefaultHandSize
	StepDuration time.Duration // 每格动画时长，<=0 用 DefaultStepDuration
	AutoEndTurn  bool          // 手牌用完后自动结束回合
	Logger       *log.Logger   // nil 时丢弃日志
}

// Session 一局游戏的全部状态：棋盘、棋子、牌区、回合与胜负。
// 所有状态只在 tick 与玩家操作这一条控制路径上修改。
type Session struct {
	id     string
	seed   int64
	board  *Board
	pieces []Piece
	cards  *CardManager
	anim   *Animator
	log    *log.Logger

	autoEndTurn bool

	currentPlayer Player
	turn          int
	winner        Player

	selectedPiece int // 0 表示未选中
	reach         Reachability
	previewPath   []HexCoord
}

// NewSession creates a session on board with the given pieces and starts
// turn 1 for Player1.
func NewSession(board *Board, pieces []Piece, opts Options) *Session {
	if board == nil {
		board = NewBoard()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Session{
		id:            uuid.NewString(),
		seed:          seed,
		board:         board,
		pieces:        append([]Piece(nil), pieces...),
		cards:         NewCardManager(rand.New(rand.NewSource(seed)), opts.HandSize),
		anim:          NewAnimator(opts.StepDuration),
		log:           logger,
		autoEndTurn:   opts.AutoEndTurn,
		currentPlayer: Player1,
		turn:          1,
	}
	s.log.Printf("session %s: %d hexes, %d pieces, seed %d", s.id, board.Len(), len(s.pieces), seed)
	s.StartTurn(Player1)
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Seed returns the seed the card shuffles are drawn from.
func (s *Session) Seed() int64 { return s.seed }

func (s *Session) Board() *Board { return s.board }
func (s *Session) Cards() *CardManager { return s.cards }
func (s *Session) CurrentPlayer() Player { return s.currentPlayer }
func (s *Session) Turn() int { return s.turn }
func (s *Session) Winner() Player { return s.winner }
func (s *Session) Animating() bool { return s.anim.Busy() }
func (s *Session) PreviewPath() []HexCoord { return s.previewPath }
func (s *Session) SelectedPieceID() int { return s.selectedPiece }
func (s *Session) Hand(p Player) []Card { return s.cards.Hand(p) }
func (s *Session) Discard(p Player) []Card { return s.cards.Discard(p) }
func (s *Session) ReachablePreview() Reachability { return s.reach }

// SelectedCardID returns the id of p's selected card, or "".
func (s *Session) SelectedCardID(p Player) string {
	if c, ok := s.cards.SelectedCard(p); ok {
		return c.ID
	}
	return ""
}

// Pieces returns a copy of all pieces.
func (s *Session) Pieces() []Piece {
	return append([]Piece(nil), s.pieces...)
}

// Piece looks a piece up by id.
func (s *Session) Piece(id int) (Piece, bool) {
	for _, p := range s.pieces {
		if p.ID == id {
			return p, true
		}
	}
	return Piece{}, false
}

// PieceAt returns the piece standing on c.
func (s *Session) PieceAt(c HexCoord) (Piece, bool) {
	for _, p := range s.pieces {
		if p.Pos == c {
			return p, true
		}
	}
	return Piece{}, false
}

// SelectedPiece returns the selected piece, if any.
func (s *Session) SelectedPiece() (Piece, bool) {
	if s.selectedPiece == 0 {
		return Piece{}, false
	}
	return s.Piece(s.selectedPiece)
}

// Reachable 计算某个棋子的可达终点。只有当它是当前选中的棋子时，结果才会成为预览数据。
func (s *Session) Reachable(pieceID int) Reachability {
	p, ok := s.Piece(pieceID)
	if !ok {
		return Reachability{}
	}
	rc := Reachable(s.board, s.pieces, s.cards, p)
	if pieceID == s.selectedPiece {
		s.reach = rc
	}
	return rc
}

// HasAnyMoves 当前玩家是否还有棋子能走（不影响预览缓存）
func (s *Session) HasAnyMoves() bool {
	for _, p := range s.pieces {
		if p.Owner != s.currentPlayer {
			continue
		}
		if len(Reachable(s.board, s.pieces, s.cards, p)) > 0 {
			return true
		}
	}
	return false
}

// AnimatedPosition 返回棋子用于绘制的小数坐标：动画中取插值，否则取格子坐标
func (s *Session) AnimatedPosition(pieceID int) (qf, rf float64, ok bool) {
	if id, busy := s.anim.PieceID(); busy && id == pieceID {
		return s.anim.Position()
	}
	p, ok := s.Piece(pieceID)
	if !ok {
		return 0, 0, false
	}
	return float64(p.Pos.Q), float64(p.Pos.R), true
}

// StartTurn 清空选中，确保牌区存在，清空手牌后抽满
func (s *Session) StartTurn(p Player) {
	s.clearSelection()
	s.cards.Ensure(p)
	s.cards.ResetHand(p)
	drawn := s.cards.Draw(p, s.cards.HandSize())
	s.log.Printf("turn %d: %v draws %v", s.turn, p, drawn)
}

// EndTurn 弃掉剩余手牌、换边、回合数 +1 并开始新回合。
// 已分胜负或动画进行中时拒绝，返回 false。
func (s *Session) EndTurn() bool {
	if s.winner != NoPlayer || s.anim.Busy() {
		return false
	}
	s.cards.FlushHand(s.currentPlayer)
	s.currentPlayer = s.currentPlayer.Opponent()
	s.turn++
	s.StartTurn(s.currentPlayer)
	return true
}

// ResolveMove 动画结束后的提交：消耗卡牌、移动棋子、按终点判定胜负。
// 胜负只看路径最后一格，每次结算只判定一次。
func (s *Session) ResolveMove(c Commit) bool {
	if s.anim.Busy() || len(c.Path) == 0 {
		return false
	}
	idx := -1
	for i := range s.pieces {
		if s.pieces[i].ID == c.PieceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.cards.Consume(c.Player, c.CardID)
	last := c.Final()
	s.pieces[idx].Pos = last
	s.previewPath = nil
	s.reach = nil
	s.log.Printf("turn %d: %v moves piece %d to %v using %s (%d steps)",
		s.turn, c.Player, c.PieceID, last, c.CardID, len(c.Path)-1)

	if s.winner == NoPlayer && s.board.Terrain(last).IsGoal() {
		s.winner = s.pieces[idx].Owner
		s.clearSelection()
		s.log.Printf("turn %d: %v reaches the diamond at %v and wins", s.turn, s.winner, last)
	}
	if s.autoEndTurn && s.winner == NoPlayer && s.cards.HandEmpty(s.currentPlayer) {
		s.EndTurn()
	}
	return true
}

// SelectPiece 选中/取消选中当前玩家的棋子
func (s *Session) SelectPiece(id int) bool {
	if !s.acceptsInput() {
		return false
	}
	p, ok := s.Piece(id)
	if !ok || p.Owner != s.currentPlayer {
		return false
	}
	if s.selectedPiece == id {
		s.selectedPiece = 0
	} else {
		s.selectedPiece = id
	}
	s.previewPath = nil
	s.reach = nil
	return true
}

// ClearSelection drops the piece selection and preview.
func (s *Session) ClearSelection() bool {
	if !s.acceptsInput() {
		return false
	}
	s.clearSelection()
	return true
}

func (s *Session) clearSelection() {
	s.selectedPiece = 0
	s.previewPath = nil
	s.reach = nil
}

// SelectCard 切换当前玩家的选牌，旧的可达结果随之失效
func (s *Session) SelectCard(id string) bool {
	if !s.acceptsInput() {
		return false
	}
	if _, ok := s.cards.Player(s.currentPlayer); !ok {
		return false
	}
	s.cards.Select(s.currentPlayer, id)
	s.previewPath = nil
	s.reach = nil
	return true
}

// Hover 以最新的可达结果刷新预览路径
func (s *Session) Hover(c HexCoord) {
	if !s.acceptsInput() {
		return
	}
	s.previewPath = nil
	piece, ok := s.SelectedPiece()
	if !ok || !s.board.Has(c) {
		return
	}
	if other, ok := s.PieceAt(c); ok && other.ID != piece.ID {
		return
	}
	rc := s.Reachable(piece.ID)
	if d, ok := rc[c]; ok {
		s.previewPath = d.Path
	}
}

// TryMove 把选中棋子走到 dest：dest 必须出现在最新计算的可达结果里。
// 成功时只启动动画，状态变更推迟到动画结束。
func (s *Session) TryMove(dest HexCoord) bool {
	if !s.acceptsInput() {
		return false
	}
	piece, ok := s.SelectedPiece()
	if !ok {
		return false
	}
	d, ok := s.Reachable(piece.ID)[dest]
	if !ok {
		return false
	}
	return s.anim.Start(Commit{
		PieceID: piece.ID,
		Player:  piece.Owner,
		Path:    d.Path,
		CardID:  d.CardID,
	})
}

// Tick 推进动画；动画结束时结算走子并返回 true
func (s *Session) Tick(dt time.Duration) bool {
	c, done := s.anim.Advance(dt)
	if !done {
		return false
	}
	return s.ResolveMove(c)
}

func (s *Session) acceptsInput() bool {
	return !s.anim.Busy() && s.winner == NoPlayer
}
