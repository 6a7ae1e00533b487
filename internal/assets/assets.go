package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DiamondSprite 钻石雨使用的贴图名
const DiamondSprite = "diamond-sprite"

// imagePath 返回 <dir>/images/<name>.png
func imagePath(dir, name string) string {
	return filepath.Join(dir, "images", name+".png")
}

// LoadImage 从 <dir>/images 读取 PNG 图片（name 不含扩展名）
func LoadImage(dir, name string) (*ebiten.Image, error) {
	path := imagePath(dir, name)
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("加载图片 %s 失败: %w", path, err)
	}
	return img, nil
}

// Textures 按地形标签缓存的贴图。没有贴图的标签退回纯色绘制。
type Textures struct {
	images map[string]*ebiten.Image
}

// LoadTextures loads <dir>/images/<name>.png for every name that exists.
// Missing files are skipped; other errors are returned.
func LoadTextures(dir string, names []string) (*Textures, error) {
	t := &Textures{images: make(map[string]*ebiten.Image)}
	for _, name := range AvailableImages(dir, names) {
		img, err := LoadImage(dir, name)
		if err != nil {
			return nil, err
		}
		t.images[name] = img
	}
	return t, nil
}

// AvailableImages 过滤出磁盘上存在贴图文件的名字（去重，保持顺序）
func AvailableImages(dir string, names []string) []string {
	var out []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] || strings.ContainsAny(name, `/\`) {
			continue
		}
		seen[name] = true
		if fileExists(imagePath(dir, name)) {
			out = append(out, name)
		}
	}
	return out
}

// Get returns the texture for name, if one was loaded.
func (t *Textures) Get(name string) (*ebiten.Image, bool) {
	if t == nil {
		return nil, false
	}
	img, ok := t.images[name]
	return img, ok
}

func (t *Textures) Len() int {
	if t == nil {
		return 0
	}
	return len(t.images)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
