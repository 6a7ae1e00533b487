package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestAvailableImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "images", "hello-grass.png"))
	touch(t, filepath.Join(dir, "images", "diamond.png"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images", "folder.png"), 0o755))

	names := []string{"hello-grass", "", "missing", "diamond", "hello-grass", "folder", "../images/diamond"}
	assert.Equal(t, []string{"hello-grass", "diamond"}, AvailableImages(dir, names))
	assert.Empty(t, AvailableImages(filepath.Join(dir, "nope"), names))
}

func TestSoundPathPrefersWav(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "audio", "move.mp3"))
	touch(t, filepath.Join(dir, "audio", "win.mp3"))
	touch(t, filepath.Join(dir, "audio", "win.wav"))

	assert.Equal(t, filepath.Join(dir, "audio", "move.mp3"), soundPath(dir, SoundMove))
	assert.Equal(t, filepath.Join(dir, "audio", "win.wav"), soundPath(dir, SoundWin))
	assert.Empty(t, soundPath(dir, SoundEndTurn))
}

func TestNilContextIsSilent(t *testing.T) {
	m, err := NewAudioManager(nil, t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, m.Loaded())
	m.Play(SoundMove)
	m.Update()

	var none *AudioManager
	none.Play(SoundWin)
	none.Update()
}

func TestNilTextures(t *testing.T) {
	var tex *Textures
	_, ok := tex.Get("hello-grass")
	assert.False(t, ok)
	assert.Zero(t, tex.Len())
}
