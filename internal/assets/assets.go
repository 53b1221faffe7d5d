// Package assets loads the sprites and sounds the game needs at startup.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayusman/poseplay/internal/audio"
	"github.com/ayusman/poseplay/internal/game"
	"github.com/ayusman/poseplay/internal/render"
)

// ErrMissing is returned when a required asset is absent or unreadable.
var ErrMissing = errors.New("asset missing")

// Files names each asset relative to the asset directory.
type Files struct {
	Actor    string
	Obstacle string
	Music    string
	GameOver string
}

// DefaultFiles returns the stock asset file names.
func DefaultFiles() Files {
	return Files{
		Actor:    "girl.png",
		Obstacle: "RedFlag.png",
		Music:    "gameplay.mp3",
		GameOver: "gameover.mp3",
	}
}

// Bundle is a loaded set of assets. Close releases the sprite memory.
type Bundle struct {
	game.Assets
	sprites []*render.Sprite
}

// Load reads every asset from dir. Sprites are scaled to the actor and
// obstacle sizes in cfg.
func Load(dir string, files Files, cfg game.Config) (*Bundle, error) {
	b := &Bundle{}

	actor, err := b.sprite(dir, files.Actor, int(cfg.ActorWidth), int(cfg.ActorHeight))
	if err != nil {
		return nil, err
	}
	obstacle, err := b.sprite(dir, files.Obstacle, int(cfg.ObstacleWidth), int(cfg.ObstacleHeight))
	if err != nil {
		b.Close()
		return nil, err
	}
	music, err := clip(dir, files.Music)
	if err != nil {
		b.Close()
		return nil, err
	}
	gameOver, err := clip(dir, files.GameOver)
	if err != nil {
		b.Close()
		return nil, err
	}

	b.Assets = game.Assets{
		Actor:    actor,
		Obstacle: obstacle,
		Music:    music,
		GameOver: gameOver,
	}
	return b, nil
}

// Close releases all sprites.
func (b *Bundle) Close() error {
	for _, s := range b.sprites {
		s.Close()
	}
	b.sprites = nil
	return nil
}

func (b *Bundle) sprite(dir, name string, width, height int) (*render.Sprite, error) {
	path, err := locate(dir, name)
	if err != nil {
		return nil, err
	}
	s, err := render.LoadSprite(path, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissing, err)
	}
	b.sprites = append(b.sprites, s)
	return s, nil
}

func clip(dir, name string) (*audio.Clip, error) {
	path, err := locate(dir, name)
	if err != nil {
		return nil, err
	}
	c, err := audio.LoadClip(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissing, err)
	}
	return c, nil
}

func locate(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: no file name configured in %s", ErrMissing, dir)
	}
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMissing, path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrMissing, path)
	}
	return path, nil
}
