package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"hexcards_go/internal/game"
)

var (
	colorBoardFill = color.NRGBA{0x12, 0x18, 0x23, 0xff}
	colorGridLine  = color.NRGBA{0x1f, 0x2a, 0x3a, 0xff}
	colorHighlight = color.NRGBA{0xff, 0xd1, 0x66, 0xff}
	colorDiamond   = color.NRGBA{0x00, 0xe5, 0xff, 0xff}
	colorBlocked   = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	colorMountain  = color.NRGBA{0xa0, 0xa0, 0xa0, 0xff}
	colorHUD       = color.NRGBA{0xcc, 0xcc, 0xcc, 0xff}
	colorWarn      = color.NRGBA{0xfc, 0xa5, 0xa5, 0xff}
	colorPathDark  = color.NRGBA{0x00, 0x00, 0x00, 0x8c}
	colorPathLight = color.NRGBA{0xff, 0xb3, 0x47, 0xff}
	colorPathText  = color.NRGBA{0x55, 0x33, 0x00, 0xff}

	playerColors = map[game.Player]color.NRGBA{
		game.Player1: {0x3b, 0x82, 0xf6, 0xff},
		game.Player2: {0xef, 0x44, 0x44, 0xff},
	}

	// 没有贴图时按地形上色
	terrainColors = map[game.Terrain]color.NRGBA{
		game.Grass:    {0x3f, 0x8f, 0x4a, 0xff},
		game.Sand:     {0xd8, 0xc0, 0x7a, 0xff},
		game.Water:    {0x2f, 0x6f, 0xb5, 0xff},
		game.Mountain: {0x6b, 0x6b, 0x6b, 0xff},
		game.Diamond:  {0x9a, 0xf3, 0xff, 0xff},
	}
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a * 255)
	return c
}

func polygonPath(pts []Point) *vector.Path {
	var p vector.Path
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(float32(pt.X), float32(pt.Y))
		} else {
			p.LineTo(float32(pt.X), float32(pt.Y))
		}
	}
	p.Close()
	return &p
}

func colorVertices(vs []ebiten.Vertex, clr color.Color) {
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
}

// fillPolygon 用纯色填充凸多边形
func fillPolygon(dst *ebiten.Image, pts []Point, clr color.Color) {
	vs, is := polygonPath(pts).AppendVerticesAndIndicesForFilling(nil, nil)
	colorVertices(vs, clr)
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	})
}

// strokePolygon 描边闭合多边形
func strokePolygon(dst *ebiten.Image, pts []Point, width float32, clr color.Color) {
	vs, is := polygonPath(pts).AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    width,
		LineJoin: vector.LineJoinRound,
	})
	colorVertices(vs, clr)
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	})
}

// textureHex 把贴图裁成六边形画在 center 处，贴图铺满外接正方形
func textureHex(dst, tex *ebiten.Image, pts []Point, center Point, size float64) {
	vs, is := polygonPath(pts).AppendVerticesAndIndicesForFilling(nil, nil)
	b := tex.Bounds()
	tw, th := float64(b.Dx()), float64(b.Dy())
	for i := range vs {
		u := (float64(vs[i].DstX) - (center.X - size)) / (2 * size)
		v := (float64(vs[i].DstY) - (center.Y - size)) / (2 * size)
		vs[i].SrcX = float32(float64(b.Min.X) + u*tw)
		vs[i].SrcY = float32(float64(b.Min.Y) + v*th)
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = 1, 1, 1, 1
	}
	dst.DrawTriangles(vs, is, tex, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		Filter:    ebiten.FilterLinear,
	})
}

type hexStyle struct {
	stroke    color.Color
	lineWidth float32
	overlay   color.Color
}

// drawHex 画一个格子：贴图或地形底色、钻石光圈、描边和叠加色
func (s *Screen) drawHex(dst *ebiten.Image, c game.HexCoord, style hexStyle) {
	center := s.layout.Center(c)
	corners := s.layout.Corners(center, 1)
	pts := corners[:]

	if style.overlay == nil {
		board := s.session.Board()
		if tex, ok := s.textures.Get(board.Tag(c)); ok {
			textureHex(dst, tex, pts, center, s.layout.Size)
		} else if clr, ok := terrainColors[board.Terrain(c)]; ok {
			fillPolygon(dst, pts, clr)
		} else {
			fillPolygon(dst, pts, colorBoardFill)
		}
		if board.Terrain(c).IsGoal() {
			fillPolygon(dst, pts, withAlpha(colorDiamond, 0.22))
			strokePolygon(dst, pts, 4, colorDiamond)
		}
	} else {
		fillPolygon(dst, pts, style.overlay)
	}

	stroke, width := style.stroke, style.lineWidth
	if stroke == nil {
		stroke, width = colorGridLine, 1.2
	}
	strokePolygon(dst, pts, width, stroke)
}

// drawBoard 画所有格子、选中棋子的可达/受阻格、预览路径和棋子
func (s *Screen) drawBoard(dst *ebiten.Image) {
	board := s.session.Board()
	for _, c := range board.AllCoords() {
		s.drawHex(dst, c, hexStyle{})
	}

	if piece, ok := s.session.SelectedPiece(); ok && !s.session.Animating() {
		rc := s.session.ReachablePreview()
		if rc == nil {
			rc = s.session.Reachable(piece.ID)
		}
		for _, n := range board.Neighbors(piece.Pos) {
			if _, occupied := s.session.PieceAt(n); occupied {
				continue
			}
			if _, ok := rc[n]; ok {
				continue
			}
			tint := withAlpha(colorBlocked, 0.28*0.35)
			if !board.Terrain(n).Enterable() {
				tint = withAlpha(colorMountain, 0.28*0.4)
			}
			s.drawHex(dst, n, hexStyle{stroke: withAlpha(colorBlocked, 0.6), lineWidth: 1.5, overlay: tint})
		}
		for _, c := range rc.Endpoints() {
			s.drawHex(dst, c, hexStyle{
				stroke:    colorHighlight,
				lineWidth: 2,
				overlay:   withAlpha(colorHighlight, ReachAlpha(rc[c].Steps())),
			})
		}
	}

	if path := s.session.PreviewPath(); len(path) > 1 {
		s.drawPath(dst, path)
	}
	for _, p := range s.session.Pieces() {
		s.drawPiece(dst, p)
	}
}

// drawPath 预览路径：深色底线、亮色线，途经格标序号
func (s *Screen) drawPath(dst *ebiten.Image, path []game.HexCoord) {
	for i := 1; i < len(path); i++ {
		a, b := s.layout.Center(path[i-1]), s.layout.Center(path[i])
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 6, colorPathDark, true)
	}
	for i := 1; i < len(path); i++ {
		a, b := s.layout.Center(path[i-1]), s.layout.Center(path[i])
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 3, colorPathLight, true)
	}
	for i := 1; i < len(path); i++ {
		p := s.layout.Center(path[i])
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), 7, colorHighlight, true)
		drawCenteredText(dst, strconv.Itoa(i), p, colorPathText)
	}
}

// drawPiece 棋子画在动画插值位置上，选中的棋子加高亮描边
func (s *Screen) drawPiece(dst *ebiten.Image, p game.Piece) {
	qf, rf, ok := s.session.AnimatedPosition(p.ID)
	if !ok {
		return
	}
	center := s.layout.ToPixel(qf, rf)
	radius := float32(s.layout.Size * 0.45)
	x, y := float32(center.X), float32(center.Y)

	vector.DrawFilledCircle(dst, x, y, radius, playerColors[p.Owner], true)
	if p.ID == s.session.SelectedPieceID() {
		vector.StrokeCircle(dst, x, y, radius, 4, colorHighlight, true)
	} else {
		vector.StrokeCircle(dst, x, y, radius, 2, color.NRGBA{0x11, 0x11, 0x11, 0xff}, true)
	}
	drawCenteredText(dst, strconv.Itoa(p.ID), center, color.White)
}

func drawCenteredText(dst *ebiten.Image, str string, at Point, clr color.Color) {
	b := text.BoundString(basicfont.Face7x13, str)
	x := int(at.X) - b.Dx()/2 - b.Min.X
	y := int(at.Y) - b.Dy()/2 - b.Min.Y
	text.Draw(dst, str, basicfont.Face7x13, x, y, clr)
}

// handLabel 手牌简写，例如 "[1]G2 [2]S1*"，* 表示选中
func handLabel(hand []game.Card, selected string) string {
	if len(hand) == 0 {
		return "None"
	}
	parts := make([]string, len(hand))
	for i, c := range hand {
		name := strings.ToUpper(c.Terrain.String()[:1]) + strconv.Itoa(c.Range)
		parts[i] = fmt.Sprintf("[%d]%s", i+1, name)
		if c.ID == selected {
			parts[i] += "*"
		}
	}
	return strings.Join(parts, " ")
}

// drawHUD 左上角：回合、玩家、地图名、手牌，没有可走的棋时给出提示
func (s *Screen) drawHUD(dst *ebiten.Image) {
	cur := s.session.CurrentPlayer()
	lines := []string{
		fmt.Sprintf("Turn %d - Player %d", s.session.Turn(), int(cur)),
		s.mapName,
		"Cards: " + handLabel(s.session.Hand(cur), s.session.SelectedCardID(cur)),
	}
	for i, l := range lines {
		text.Draw(dst, l, basicfont.Face7x13, 12, 20+18*i, colorHUD)
	}
	if s.session.Winner() == game.NoPlayer && !s.session.Animating() && !s.session.HasAnyMoves() {
		text.Draw(dst, "No moves available", basicfont.Face7x13, 12, 20+18*len(lines), colorWarn)
	}
	text.Draw(dst, "1-3 card  Enter end turn  Esc cancel  R restart", basicfont.Face7x13,
		12, int(s.layout.Height)-12, withAlpha(colorHUD, 0.6))
}

// drawWinOverlay 半透明遮罩加居中的胜利文字
func (s *Screen) drawWinOverlay(dst *ebiten.Image) {
	w, h := float32(s.layout.Width), float32(s.layout.Height)
	vector.DrawFilledRect(dst, 0, 0, w, h, color.NRGBA{0, 0, 0, 0x8c}, false)

	title := fmt.Sprintf("Player %d Wins!", int(s.session.Winner()))
	const scale = 4
	b := text.BoundString(basicfont.Face7x13, title)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(w)/2-float64(b.Dx())*scale/2, float64(h)/2)
	text.DrawWithOptions(dst, title, basicfont.Face7x13, op)

	drawCenteredText(dst, "Press R to play again", Point{X: float64(w) / 2, Y: float64(h)/2 + 50}, color.White)
}
