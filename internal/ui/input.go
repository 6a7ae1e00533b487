package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"hexcards_go/internal/assets"
	"hexcards_go/internal/game"
)

var cardKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// handleInput 处理键盘与鼠标：选牌、结束回合、取消、重开、平移、选子与走子
func (s *Screen) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.restart()
		return
	}
	s.handleCamera()

	for i, k := range cardKeys {
		if inpututil.IsKeyJustPressed(k) {
			s.pressCard(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyE) {
		if s.session.EndTurn() {
			s.audio.Play(assets.SoundEndTurn)
			s.hoverDirty = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if s.session.ClearSelection() {
			s.audio.Play(assets.SoundCancelSelectPiece)
		}
	}

	mx, my := ebiten.CursorPosition()
	c := s.layout.HexAt(float64(mx), float64(my))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.click(c)
	}
	if c != s.hover || s.hoverDirty {
		s.hover = c
		s.hoverDirty = false
		s.session.Hover(c)
	}
}

// handleCamera 右键拖动平移棋盘
func (s *Screen) handleCamera() {
	mx, my := ebiten.CursorPosition()
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		s.dragging = false
		return
	}
	if s.dragging {
		s.layout.Pan(float64(mx-s.dragX), float64(my-s.dragY))
		s.hoverDirty = true
	}
	s.dragging = true
	s.dragX, s.dragY = mx, my
}

// pressCard 按手牌序号切换选牌
func (s *Screen) pressCard(i int) {
	hand := s.session.Hand(s.session.CurrentPlayer())
	if i >= len(hand) {
		return
	}
	if s.session.SelectCard(hand[i].ID) {
		s.audio.Play(assets.SoundSelectCard)
		s.hoverDirty = true
	}
}

// click 点自己的棋子是选中/取消；已选中时点其他格尝试走子，失败则取消选中
func (s *Screen) click(c game.HexCoord) {
	if p, ok := s.session.PieceAt(c); ok && p.Owner == s.session.CurrentPlayer() {
		if !s.session.SelectPiece(p.ID) {
			return
		}
		if s.session.SelectedPieceID() == p.ID {
			s.audio.Play(assets.SoundSelectPiece)
		} else {
			s.audio.Play(assets.SoundCancelSelectPiece)
		}
		s.hoverDirty = true
		return
	}
	if s.session.SelectedPieceID() == 0 {
		return
	}
	if s.session.TryMove(c) {
		s.audio.Play(assets.SoundMove)
		return
	}
	if s.session.ClearSelection() {
		s.audio.Play(assets.SoundCancelSelectPiece)
	}
}
