package ui

import (
	"math"

	"hexcards_go/internal/game"
)

// HexSize 六边形外接圆半径（像素）
const HexSize = 48

type Point struct{ X, Y float64 }

// Layout 尖顶六边形的像素坐标换算。棋盘包围盒的中心对准屏幕中心，
// 再叠加相机平移。
type Layout struct {
	Width, Height  float64
	ShiftQ, ShiftR float64 // 棋盘包围盒中心（轴向坐标）
	CamX, CamY     float64
	Size           float64
}

// NewLayout centers board on a width×height screen.
func NewLayout(board *game.Board, width, height int) Layout {
	l := Layout{Width: float64(width), Height: float64(height), Size: HexSize}
	if minQ, maxQ, minR, maxR, ok := board.Bounds(); ok {
		l.ShiftQ = float64(minQ+maxQ) / 2
		l.ShiftR = float64(minR+maxR) / 2
	}
	return l
}

// ToPixel 轴向（可为小数）→ 屏幕像素
func (l Layout) ToPixel(qf, rf float64) Point {
	cq := qf - l.ShiftQ
	cr := rf - l.ShiftR
	return Point{
		X: l.Size*math.Sqrt(3)*(cq+cr/2) + l.Width/2 + l.CamX,
		Y: l.Size*1.5*cr + l.Height/2 + l.CamY,
	}
}

// Center returns the pixel center of hex c.
func (l Layout) Center(c game.HexCoord) Point {
	return l.ToPixel(float64(c.Q), float64(c.R))
}

// FromPixel 屏幕像素 → 小数轴向坐标，ToPixel 的逆
func (l Layout) FromPixel(x, y float64) (qf, rf float64) {
	px := x - l.Width/2 - l.CamX
	py := y - l.Height/2 - l.CamY
	qf = (math.Sqrt(3)/3*px-py/3)/l.Size + l.ShiftQ
	rf = (2.0/3*py)/l.Size + l.ShiftR
	return qf, rf
}

// HexAt returns the hex under the pixel (x, y). The hex may be off-board.
func (l Layout) HexAt(x, y float64) game.HexCoord {
	return game.RoundToHex(l.FromPixel(x, y))
}

// Corners 六个顶点，从右上 (-30°) 开始顺时针
func (l Layout) Corners(center Point, scale float64) [6]Point {
	var pts [6]Point
	r := l.Size * scale
	for i := range pts {
		a := math.Pi / 180 * float64(60*i-30)
		pts[i] = Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	return pts
}

// Pan moves the camera by (dx, dy) pixels.
func (l *Layout) Pan(dx, dy float64) {
	l.CamX += dx
	l.CamY += dy
}

// ReachAlpha 可达格的高亮透明度，路径越长越深
func ReachAlpha(steps int) float64 {
	return 0.18 + math.Min(1, float64(steps)/5)*0.32
}
