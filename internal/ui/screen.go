package ui

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"hexcards_go/internal/assets"
	"hexcards_go/internal/game"
	"hexcards_go/internal/mapfile"
)

// Options 界面参数
type Options struct {
	Map       *mapfile.Map
	Session   game.Options
	Width     int
	Height    int
	TPS       int
	Tick      time.Duration // 每帧推进的游戏时间，0 表示 1s/TPS
	AssetsDir string
	Audio     *audio.Context // nil 表示没有声音
	Mute      bool
	Debug     bool
}

// Screen 实现 ebiten.Game：每次 Update 推进一帧时间并处理输入，Draw 渲染整局
type Screen struct {
	opts    Options
	mapName string
	session *game.Session
	layout  Layout

	textures *assets.Textures
	audio    *assets.AudioManager
	rain     *DiamondRain
	tick     time.Duration

	hover      game.HexCoord
	hoverDirty bool
	dragging   bool
	dragX      int
	dragY      int
	winShown   bool
}

// NewScreen 构造界面并开始第一局
func NewScreen(opts Options) (*Screen, error) {
	if opts.Map == nil {
		opts.Map = mapfile.Default()
	}
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	if opts.Tick <= 0 {
		opts.Tick = time.Second / time.Duration(opts.TPS)
	}
	s := &Screen{
		opts:    opts,
		mapName: opts.Map.Name,
		tick:    opts.Tick,
		rain:    NewDiamondRain(time.Now().UnixNano()),
	}

	names := []string{assets.DiamondSprite}
	for _, c := range opts.Map.Board.AllCoords() {
		names = append(names, opts.Map.Board.Tag(c))
	}
	var err error
	if s.textures, err = assets.LoadTextures(opts.AssetsDir, names); err != nil {
		return nil, err
	}
	if s.audio, err = assets.NewAudioManager(opts.Audio, opts.AssetsDir); err != nil {
		return nil, fmt.Errorf("初始化音频管理器失败: %w", err)
	}
	s.audio.SetMuted(opts.Mute)
	if opts.Debug {
		log.Printf("assets %q: %d textures, %d sounds", opts.AssetsDir, s.textures.Len(), s.audio.Loaded())
	}

	s.restart()
	return s, nil
}

// restart 在同一张地图上开新局
func (s *Screen) restart() {
	s.session = game.NewSession(s.opts.Map.Board, s.opts.Map.Pieces, s.opts.Session)
	s.layout = NewLayout(s.opts.Map.Board, s.opts.Width, s.opts.Height)
	s.rain.Reset()
	s.winShown = false
	s.hoverDirty = true
}

// Session exposes the running game.
func (s *Screen) Session() *game.Session { return s.session }

// Update 每帧：清理音频、推进动画、处理输入，分出胜负后播放钻石雨
func (s *Screen) Update() error {
	s.audio.Update()

	if s.session.Tick(s.tick) {
		s.hoverDirty = true
	}
	if w := s.session.Winner(); w != game.NoPlayer {
		if !s.winShown {
			s.winShown = true
			s.audio.Play(assets.SoundWin)
		}
		s.rain.Update(s.tick, s.layout.Width, s.layout.Height)
	}
	s.handleInput()
	return nil
}

// Draw 每帧渲染：背景、棋盘、HUD，胜利时叠加遮罩和钻石雨
func (s *Screen) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{0x0b, 0x0f, 0x16, 0xff})
	s.drawBoard(screen)
	s.drawHUD(screen)
	if s.session.Winner() != game.NoPlayer {
		sprite, _ := s.textures.Get(assets.DiamondSprite)
		s.rain.Draw(screen, sprite)
		s.drawWinOverlay(screen)
	}
	if s.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  hex %v  session %s",
			ebiten.ActualTPS(), ebiten.ActualFPS(), s.hover, s.session.ID()), 12, s.opts.Height-44)
	}
}

// Layout 固定逻辑分辨率，窗口缩放交给 ebiten
func (s *Screen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.opts.Width, s.opts.Height
}
