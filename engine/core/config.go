package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type AppConfig struct {
	Name     string `toml:"name"`
	PosX     uint32 `toml:"x"`
	PosY     uint32 `toml:"y"`
	Width    uint32 `toml:"width"`
	Height   uint32 `toml:"height"`
	LogLevel string `toml:"log_level"`
	Headless bool   `toml:"headless"`
	// Frames to run before exiting in headless mode. 0 runs forever.
	HeadlessFrames int `toml:"headless_frames"`
}

type RenderConfig struct {
	TargetWidth  float32    `toml:"target_width"`
	TargetHeight float32    `toml:"target_height"`
	ClearColour  [4]float32 `toml:"clear_colour"`
}

type PhysicsConfig struct {
	DisplayToSimRatio float32 `toml:"display_to_sim_ratio"`
	GravityX          float32 `toml:"gravity_x"`
	GravityY          float32 `toml:"gravity_y"`
}

type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float32 `toml:"master_volume"`
	MusicVolume  float32 `toml:"music_volume"`
	EffectVolume float32 `toml:"effect_volume"`
}

type ContentConfig struct {
	Root           string `toml:"root"`
	NumberOfLevels int    `toml:"number_of_levels"`
	HotReload      bool   `toml:"hot_reload"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type Config struct {
	App     AppConfig     `toml:"app"`
	Render  RenderConfig  `toml:"render"`
	Physics PhysicsConfig `toml:"physics"`
	Audio   AudioConfig   `toml:"audio"`
	Content ContentConfig `toml:"content"`
	Storage StorageConfig `toml:"storage"`
}

func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:     "Zippy",
			PosX:     100,
			PosY:     100,
			Width:    1280,
			Height:   720,
			LogLevel: "info",
		},
		Render: RenderConfig{
			TargetWidth:  1920,
			TargetHeight: 1080,
			ClearColour:  [4]float32{0, 0.4, 0, 1},
		},
		Physics: PhysicsConfig{
			DisplayToSimRatio: 350,
			GravityY:          -9.81,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 1,
			MusicVolume:  1,
			EffectVolume: 1,
		},
		Content: ContentConfig{
			Root:           "Content",
			NumberOfLevels: 2,
		},
		Storage: StorageConfig{
			Path: "zippy-preferences.toml",
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig, so a partial file is fine.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("func LoadConfig - failed to read `%s`: %w", path, err)
		LogError("%s", err)
		return nil, err
	}
	if err := ParseConfig(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ParseConfig(b []byte, cfg *Config) error {
	if err := toml.Unmarshal(b, cfg); err != nil {
		err = fmt.Errorf("func ParseConfig - invalid config: %w", err)
		LogError("%s", err)
		return err
	}
	if cfg.Physics.DisplayToSimRatio <= 0 {
		return fmt.Errorf("func ParseConfig - display_to_sim_ratio must be positive: %w", ErrInvalidValue)
	}
	if cfg.Render.TargetWidth <= 0 || cfg.Render.TargetHeight <= 0 {
		return fmt.Errorf("func ParseConfig - target resolution must be positive: %w", ErrInvalidValue)
	}
	return nil
}
