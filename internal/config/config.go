// Package config reads game settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config 运行参数。命令行参数优先于环境变量。
type Config struct {
	MapPath      string        `env:"HEXCARDS_MAP"`
	AssetsDir    string        `env:"HEXCARDS_ASSETS"         envDefault:"assets"`
	TPS          int           `env:"HEXCARDS_TPS"            envDefault:"60"`
	StepDuration time.Duration `env:"HEXCARDS_STEP_DURATION"  envDefault:"250ms"`
	HandSize     int           `env:"HEXCARDS_HAND_SIZE"      envDefault:"3"`
	AutoEndTurn  bool          `env:"HEXCARDS_AUTO_END_TURN"`
	Seed         int64         `env:"HEXCARDS_SEED"`
	Debug        bool          `env:"HEXCARDS_DEBUG"`
	Mute         bool          `env:"HEXCARDS_MUTE"`
	WindowWidth  int           `env:"HEXCARDS_WINDOW_WIDTH"   envDefault:"1280"`
	WindowHeight int           `env:"HEXCARDS_WINDOW_HEIGHT"  envDefault:"800"`
}

// Load reads the given .env files (default ".env"; missing files are
// ignored) and then parses HEXCARDS_* variables.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse reads HEXCARDS_* variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 检查取值范围
func (c Config) Validate() error {
	switch {
	case c.TPS <= 0:
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	case c.HandSize <= 0:
		return fmt.Errorf("hand size must be positive, got %d", c.HandSize)
	case c.StepDuration <= 0:
		return fmt.Errorf("step duration must be positive, got %s", c.StepDuration)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	return nil
}

// TickDuration is the simulated time of one Update call.
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TPS)
}
