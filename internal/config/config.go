package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	AppName               = "calnote"
	EnvConfigPath         = "CALNOTE_CONFIG"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	PrevMonth string `toml:"prev_month"`
	NextMonth string `toml:"next_month"`
	Left      string `toml:"left"`
	Right     string `toml:"right"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Select    string `toml:"select"`
	Add       string `toml:"add"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
	Today     string `toml:"today"`
}

type Config struct {
	Store     string `toml:"store"`
	WeekStart string `toml:"week_start"`
	LogFile   string `toml:"log_file"`
	Keys      Keymap `toml:"keys"`
}

// ResolveConfigPath picks $CALNOTE_CONFIG, then the XDG config dir, then
// ~/.config, falling back to the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, DefaultConfigFileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", AppName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown store %q (want memory or sqlite)", c.Store)
	}
	switch c.WeekStart {
	case "sunday", "monday":
	default:
		return fmt.Errorf("unknown week_start %q (want sunday or monday)", c.WeekStart)
	}
	return nil
}

// fillDefaults restores fields an edited file left blank.
func (c *Config) fillDefaults() {
	d := Default()
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	if c.Store == "" {
		c.Store = d.Store
	}
	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	if c.WeekStart == "" {
		c.WeekStart = d.WeekStart
	}
	keys := []struct {
		v   *string
		def string
	}{
		{&c.Keys.Quit, d.Keys.Quit},
		{&c.Keys.PrevMonth, d.Keys.PrevMonth},
		{&c.Keys.NextMonth, d.Keys.NextMonth},
		{&c.Keys.Left, d.Keys.Left},
		{&c.Keys.Right, d.Keys.Right},
		{&c.Keys.Up, d.Keys.Up},
		{&c.Keys.Down, d.Keys.Down},
		{&c.Keys.Select, d.Keys.Select},
		{&c.Keys.Add, d.Keys.Add},
		{&c.Keys.Confirm, d.Keys.Confirm},
		{&c.Keys.Cancel, d.Keys.Cancel},
		{&c.Keys.Today, d.Keys.Today},
	}
	for _, k := range keys {
		if *k.v == "" {
			*k.v = k.def
		}
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		Store:     "memory",
		WeekStart: "sunday",
		Keys: Keymap{
			Quit:      "q",
			PrevMonth: "[",
			NextMonth: "]",
			Left:      "h",
			Right:     "l",
			Up:        "k",
			Down:      "j",
			Select:    " ",
			Add:       "a",
			Confirm:   "enter",
			Cancel:    "esc",
			Today:     "t",
		},
	}
}
