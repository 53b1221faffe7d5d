package assets

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/ayusman/poseplay/internal/game"
)

func testFiles() Files {
	return Files{
		Actor:    "actor.png",
		Obstacle: "flag.png",
		Music:    "music.wav",
		GameOver: "over.wav",
	}
}

// writeAssets creates a complete asset directory, skipping the named files.
func writeAssets(t *testing.T, skip ...string) string {
	t.Helper()
	dir := t.TempDir()
	files := testFiles()
	skipped := map[string]bool{}
	for _, s := range skip {
		skipped[s] = true
	}

	for _, name := range []string{files.Actor, files.Obstacle} {
		if skipped[name] {
			continue
		}
		img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 255, 255), 64, 64, gocv.MatTypeCV8UC4)
		require.True(t, gocv.IMWrite(filepath.Join(dir, name), img))
		img.Close()
	}

	for _, name := range []string{files.Music, files.GameOver} {
		if skipped[name] {
			continue
		}
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
		require.NoError(t, wav.Encode(f, beep.Silence(441), format))
		f.Close()
	}

	return dir
}

func TestLoad(t *testing.T) {
	dir := writeAssets(t)

	b, err := Load(dir, testFiles(), game.DefaultConfig())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, image.Rect(0, 0, 40, 40), b.Actor.Bounds())
	assert.Equal(t, image.Rect(0, 0, 20, 40), b.Obstacle.Bounds())
	assert.Equal(t, "music.wav", b.Music.Name())
	assert.Equal(t, "over.wav", b.GameOver.Name())
}

func TestLoad_Missing(t *testing.T) {
	files := testFiles()

	for _, name := range []string{files.Actor, files.Obstacle, files.Music, files.GameOver} {
		t.Run(name, func(t *testing.T) {
			dir := writeAssets(t, name)

			_, err := Load(dir, files, game.DefaultConfig())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissing)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_Unreadable(t *testing.T) {
	dir := writeAssets(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "over.wav"), []byte("garbage"), 0o644))

	_, err := Load(dir, testFiles(), game.DefaultConfig())
	assert.ErrorIs(t, err, ErrMissing)
}

func TestLoad_EmptyName(t *testing.T) {
	files := testFiles()
	files.Music = ""

	_, err := Load(writeAssets(t), files, game.DefaultConfig())
	assert.ErrorIs(t, err, ErrMissing)
}

func TestDefaultFiles(t *testing.T) {
	f := DefaultFiles()
	assert.Equal(t, "girl.png", f.Actor)
	assert.Equal(t, "RedFlag.png", f.Obstacle)
	assert.Equal(t, "gameplay.mp3", f.Music)
	assert.Equal(t, "gameover.mp3", f.GameOver)
}
