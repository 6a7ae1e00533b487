package ui

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	rainSpawnInterval = 60 * time.Millisecond
	rainMaxParticles  = 120
)

var rainFallback = color.NRGBA{0x00, 0xe5, 0xff, 0x99}

type raindrop struct {
	x, y float64
	vy   float64 // 像素/秒
	rot  float64
	vr   float64 // 弧度/秒
	size float64
}

// DiamondRain 胜利后从屏幕顶端落下的钻石粒子
type DiamondRain struct {
	rng        *rand.Rand
	drops      []raindrop
	sinceSpawn time.Duration
}

func NewDiamondRain(seed int64) *DiamondRain {
	return &DiamondRain{rng: rand.New(rand.NewSource(seed))}
}

func (r *DiamondRain) Reset() {
	r.drops = r.drops[:0]
	r.sinceSpawn = 0
}

func (r *DiamondRain) Len() int { return len(r.drops) }

func (r *DiamondRain) spawn(width float64) {
	if len(r.drops) >= rainMaxParticles {
		return
	}
	size := 24 + r.rng.Float64()*52
	r.drops = append(r.drops, raindrop{
		x:    r.rng.Float64() * width,
		y:    -size,
		vy:   60 + r.rng.Float64()*140,
		rot:  r.rng.Float64() * math.Pi * 2,
		vr:   r.rng.Float64()*0.6 - 0.3,
		size: size,
	})
}

// Update 按 dt 生成新粒子并推进已有粒子；完全离开屏幕底部的粒子被移除
func (r *DiamondRain) Update(dt time.Duration, width, height float64) {
	r.sinceSpawn += dt
	for r.sinceSpawn > rainSpawnInterval {
		r.spawn(width)
		r.sinceSpawn -= rainSpawnInterval
	}
	sec := dt.Seconds()
	alive := r.drops[:0]
	for _, d := range r.drops {
		d.y += d.vy * sec
		d.rot += d.vr * sec
		if d.y-d.size/2 > height {
			continue
		}
		alive = append(alive, d)
	}
	r.drops = alive
}

// Draw 有贴图时画贴图，否则画一个半透明菱形
func (r *DiamondRain) Draw(dst *ebiten.Image, sprite *ebiten.Image) {
	for _, d := range r.drops {
		if sprite != nil {
			w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
			op.GeoM.Scale(d.size/float64(w), d.size/float64(h))
			op.GeoM.Rotate(d.rot)
			op.GeoM.Translate(d.x, d.y)
			op.ColorScale.ScaleAlpha(0.85)
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(sprite, op)
			continue
		}
		s := d.size / 2
		sin, cos := math.Sincos(d.rot)
		pts := make([]Point, 4)
		for i, v := range [4]Point{{0, -s}, {s, 0}, {0, s}, {-s, 0}} {
			pts[i] = Point{X: d.x + v.X*cos - v.Y*sin, Y: d.y + v.X*sin + v.Y*cos}
		}
		fillPolygon(dst, pts, rainFallback)
	}
}
