package assets

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate 音频上下文采样率
const SampleRate = 44100

// 音效名
const (
	SoundSelectPiece       = "select_piece"
	SoundCancelSelectPiece = "cancel_select_piece"
	SoundSelectCard        = "select_card"
	SoundMove              = "move"
	SoundEndTurn           = "end_turn"
	SoundWin               = "win"
)

// SoundNames lists every effect the game plays.
var SoundNames = []string{
	SoundSelectPiece,
	SoundCancelSelectPiece,
	SoundSelectCard,
	SoundMove,
	SoundEndTurn,
	SoundWin,
}

// soundPath 依次查找 <dir>/audio/<name>.wav 和 .mp3，找不到返回空串
func soundPath(dir, name string) string {
	for _, ext := range []string{".wav", ".mp3"} {
		p := filepath.Join(dir, "audio", name+ext)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

type AudioManager struct {
	ctx     *audio.Context
	buffers map[string][]byte // 解码后的 PCM，每次播放新建 Player
	muted   bool

	mu      sync.Mutex
	players []*audio.Player // 保留正在播放的 player，防止被 GC
}

// NewAudioManager 接收 main 创建好的 *audio.Context，解码 <dir>/audio 下能找到的音效。
// 缺失的文件直接跳过；ctx 为 nil 时得到一个静音的管理器。
func NewAudioManager(ctx *audio.Context, dir string) (*AudioManager, error) {
	m := &AudioManager{ctx: ctx, buffers: make(map[string][]byte)}
	if ctx == nil {
		m.muted = true
		return m, nil
	}
	for _, name := range SoundNames {
		path := soundPath(dir, name)
		if path == "" {
			continue
		}
		pcm, err := decodeFile(ctx.SampleRate(), path)
		if err != nil {
			return nil, fmt.Errorf("加载音频 %s 失败: %w", name, err)
		}
		m.buffers[name] = pcm
	}
	return m, nil
}

func decodeFile(sampleRate int, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stream io.Reader
	if filepath.Ext(path) == ".wav" {
		stream, err = wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	} else {
		stream, err = mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("解码 %s: %w", path, err)
	}
	return io.ReadAll(stream)
}

// SetMuted turns playback off or on.
func (m *AudioManager) SetMuted(muted bool) { m.muted = muted }

// Loaded returns the number of decoded effects.
func (m *AudioManager) Loaded() int { return len(m.buffers) }

// Play 播放 key 对应音效，并保存引用，防止被 GC
func (m *AudioManager) Play(key string) {
	if m == nil || m.muted || m.ctx == nil {
		return
	}
	pcm, ok := m.buffers[key]
	if !ok {
		return
	}
	p := m.ctx.NewPlayerFromBytes(pcm)
	p.Play()

	m.mu.Lock()
	m.players = append(m.players, p)
	m.mu.Unlock()
}

// Update 应每帧调用一次，清理已停止的播放器
func (m *AudioManager) Update() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	alive := m.players[:0]
	for _, p := range m.players {
		if p.IsPlaying() {
			alive = append(alive, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("audio: close player: %v", err)
		}
	}
	m.players = alive
}
