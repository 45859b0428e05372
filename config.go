package meadow

import (
	"encoding/json"
	"os"
)

// Config carries everything the demo binary can tune without a
// rebuild. LoadConfig layers a JSON file over DefaultConfig, so a
// partial file only overrides the keys it names.
type Config struct {
	Window WindowConfig `json:"window"`
	Grass  GrassParams  `json:"grass"`
	Seed   int64        `json:"seed"`
	Debug  bool         `json:"debug"`
}

type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Meadow",
		},
		Grass: DefaultGrassParams(),
		Seed:  1,
	}
}

func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func SaveConfig(cfg Config, filename string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
