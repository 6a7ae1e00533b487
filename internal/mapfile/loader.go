// Package mapfile loads board definitions from JSON or YAML files.
package mapfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"hexcards_go/internal/game"
)

// PiecesPerSide 自动布子时每方的棋子数
const PiecesPerSide = 5

var ErrUnsupportedFormat = errors.New("unsupported map format")

// Cell 显式给出的格子，Tex 为空时按环形规则生成地形
type Cell struct {
	Q   int    `json:"q" yaml:"q"`
	R   int    `json:"r" yaml:"r"`
	Tex string `json:"tex,omitempty" yaml:"tex,omitempty"`
}

// LegendEntry 布局符号对应的贴图标签
type LegendEntry struct {
	Tex string `json:"tex" yaml:"tex"`
}

type Coord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

type Pieces struct {
	P1 []Coord `json:"p1" yaml:"p1"`
	P2 []Coord `json:"p2" yaml:"p2"`
}

// Document 地图文件的原始结构。cells、layout、radius 三选一，按此顺序优先。
type Document struct {
	Name   string                 `json:"name" yaml:"name"`
	Cells  []Cell                 `json:"cells,omitempty" yaml:"cells,omitempty"`
	Layout []string               `json:"layout,omitempty" yaml:"layout,omitempty"`
	Legend map[string]LegendEntry `json:"legend,omitempty" yaml:"legend,omitempty"`
	Radius *int                   `json:"radius,omitempty" yaml:"radius,omitempty"`
	Pieces *Pieces                `json:"pieces,omitempty" yaml:"pieces,omitempty"`
}

// Map 解析完成的地图：名字、棋盘和初始棋子
type Map struct {
	Name   string
	Board  *game.Board
	Pieces []game.Piece
}

// Load reads the map file at path. The format is chosen by extension.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	m, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes data according to ext (".json", ".yaml" or ".yml").
func Parse(data []byte, ext string) (*Map, error) {
	var doc Document
	switch strings.ToLower(ext) {
	case ".json":
		if len(strings.TrimSpace(string(data))) > 0 {
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("parse json: %w", err)
			}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return Build(doc), nil
}

// Build turns a document into a board and pieces.
func Build(doc Document) *Map {
	b := game.NewBoard()
	switch {
	case len(doc.Cells) > 0:
		for _, c := range doc.Cells {
			tag := c.Tex
			if tag == "" {
				tag = ringTag(game.HexCoord{Q: c.Q, R: c.R})
			}
			b.SetTag(game.HexCoord{Q: c.Q, R: c.R}, tag)
		}
	case len(doc.Layout) > 0:
		buildLayout(b, doc.Layout, doc.Legend)
	case doc.Radius != nil:
		for _, c := range game.NewHexagonBoard(*doc.Radius, "").AllCoords() {
			b.SetTag(c, ringTag(c))
		}
	}

	name := doc.Name
	if name == "" {
		name = "Unnamed Map"
	}
	m := &Map{Name: name, Board: b}
	if doc.Pieces != nil && len(doc.Pieces.P1) > 0 && len(doc.Pieces.P2) > 0 {
		m.Pieces = placePieces(doc.Pieces.P1, doc.Pieces.P2)
	} else {
		m.Pieces = Spawn(b)
	}
	return m
}

// buildLayout 行列布局转轴向坐标：r = row，q = col - ((row + (row&1)) >> 1)
func buildLayout(b *game.Board, layout []string, legend map[string]LegendEntry) {
	for row, line := range layout {
		for col, ch := range []rune(line) {
			if ch == ' ' || ch == '.' || ch == '\t' {
				continue
			}
			c := game.HexCoord{Q: col - ((row + (row & 1)) >> 1), R: row}
			if legend == nil {
				b.SetTag(c, ringTag(c))
				continue
			}
			b.SetTag(c, legend[string(ch)].Tex)
		}
	}
}

// ringTag 按离中心的距离生成地形：≤1 水，≥4 沙，其余草地
func ringTag(c game.HexCoord) string {
	d := game.Distance(game.HexCoord{}, c)
	terrain := "grass"
	if d <= 1 {
		terrain = "water"
	} else if d >= 4 {
		terrain = "sand"
	}
	return "hello-" + terrain
}

func placePieces(p1, p2 []Coord) []game.Piece {
	pieces := make([]game.Piece, 0, len(p1)+len(p2))
	id := 1
	for _, c := range p1 {
		pieces = append(pieces, game.Piece{ID: id, Owner: game.Player1, Pos: game.HexCoord{Q: c.Q, R: c.R}})
		id++
	}
	for _, c := range p2 {
		pieces = append(pieces, game.Piece{ID: id, Owner: game.Player2, Pos: game.HexCoord{Q: c.Q, R: c.R}})
		id++
	}
	return pieces
}

// Spawn 自动布子：按 (r, q) 排序，前 PiecesPerSide 格给玩家一，
// 末尾 PiecesPerSide 格（跳过已占用的）给玩家二。
func Spawn(b *game.Board) []game.Piece {
	hexes := b.AllCoords()
	n1 := min(PiecesPerSide, len(hexes))
	var p1, p2 []Coord
	taken := make(map[game.HexCoord]bool, n1)
	for _, c := range hexes[:n1] {
		p1 = append(p1, Coord{Q: c.Q, R: c.R})
		taken[c] = true
	}
	for i := len(hexes) - 1; i >= 0 && len(p2) < PiecesPerSide; i-- {
		if taken[hexes[i]] {
			break
		}
		p2 = append(p2, Coord{Q: hexes[i].Q, R: hexes[i].R})
	}
	// 玩家二也按 (r, q) 顺序编号
	sort.Slice(p2, func(i, j int) bool {
		if p2[i].R != p2[j].R {
			return p2[i].R < p2[j].R
		}
		return p2[i].Q < p2[j].Q
	})
	return placePieces(p1, p2)
}

// Summary 一行描述：名字、格子数、地形分布、双方棋子数
func (m *Map) Summary() string {
	counts := m.Board.TerrainCounts()
	terrains := make([]game.Terrain, 0, len(counts))
	for t := range counts {
		terrains = append(terrains, t)
	}
	sort.Slice(terrains, func(i, j int) bool { return terrains[i] < terrains[j] })
	parts := make([]string, 0, len(terrains))
	for _, t := range terrains {
		parts = append(parts, fmt.Sprintf("%s=%d", t, counts[t]))
	}
	var p1, p2 int
	for _, p := range m.Pieces {
		switch p.Owner {
		case game.Player1:
			p1++
		case game.Player2:
			p2++
		}
	}
	return fmt.Sprintf("%s: %d hexes [%s], pieces p1=%d p2=%d",
		m.Name, m.Board.Len(), strings.Join(parts, " "), p1, p2)
}

// DefaultRadius 内置地图的半径
const DefaultRadius = 4

// Default returns the built-in map: a radius-4 hexagon with ring terrain,
// a diamond on each flank and spawned pieces.
func Default() *Map {
	r := DefaultRadius
	m := Build(Document{Name: "Default", Radius: &r})
	m.Board.SetTag(game.HexCoord{Q: -DefaultRadius, R: 2}, "diamond")
	m.Board.SetTag(game.HexCoord{Q: DefaultRadius, R: -2}, "diamond")
	return m
}

// Open 路径为空时返回内置地图
func Open(path string) (*Map, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
