package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "~/.config/decor/decor.yaml"

type Battery struct {
	Source       string   `yaml:"source"`  // system, command, static
	Level        int      `yaml:"level"`   // static source only
	Command      []string `yaml:"command"` // command source only
	PollInterval int      `yaml:"poll_interval"`
}

type Display struct {
	Protocol string `yaml:"protocol"` // halfblocks, kitty, iterm2, sixel
	Scale    string `yaml:"scale"`    // fit, native
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	Port       int     `yaml:"port"`
	HostKeyDir string  `yaml:"host_key_dir"`
	Clock24h   bool    `yaml:"clock_24h"`
	Seed       uint64  `yaml:"seed"` // 0 seeds from the clock
	Battery    Battery `yaml:"battery"`
	Display    Display `yaml:"display"`
	Log        Log     `yaml:"log"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = filepath.Join(home, ".cache")
	}
	return Config{
		Port:       2222,
		HostKeyDir: filepath.Join(home, ".ssh"),
		Clock24h:   true,
		Battery: Battery{
			Source:       "system",
			Level:        100,
			PollInterval: 30,
		},
		Display: Display{
			Protocol: "halfblocks",
			Scale:    "fit",
		},
		Log: Log{
			Level: "info",
			File:  filepath.Join(cache, "decor", "decor.log"),
		},
	}
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	return expandPath(path)
}

func Load(path string) (Config, error) {
	cfg := Default()

	resolved := expandPath(path)
	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", resolved, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", resolved, err)
	}

	cfg.HostKeyDir = expandPath(cfg.HostKeyDir)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

var (
	batterySources   = []string{"system", "command", "static"}
	displayProtocols = []string{"halfblocks", "kitty", "iterm2", "sixel"}
	displayScales    = []string{"fit", "native"}
	logLevels        = []string{"debug", "info", "warn", "error"}
)

// Validate reports the first invalid setting in cfg.
func Validate(cfg Config) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range (1-65535)", cfg.Port)
	}

	if !slices.Contains(batterySources, cfg.Battery.Source) {
		return fmt.Errorf("battery.source %q must be one of %v", cfg.Battery.Source, batterySources)
	}
	if cfg.Battery.PollInterval < 1 {
		return fmt.Errorf("battery.poll_interval must be >= 1")
	}
	if cfg.Battery.Source == "static" && (cfg.Battery.Level < 0 || cfg.Battery.Level > 100) {
		return fmt.Errorf("battery.level %d out of range (0-100)", cfg.Battery.Level)
	}
	if cfg.Battery.Source == "command" && len(cfg.Battery.Command) == 0 {
		return fmt.Errorf("battery.command is required when battery.source is command")
	}

	if !slices.Contains(displayProtocols, cfg.Display.Protocol) {
		return fmt.Errorf("display.protocol %q must be one of %v", cfg.Display.Protocol, displayProtocols)
	}
	if !slices.Contains(displayScales, cfg.Display.Scale) {
		return fmt.Errorf("display.scale %q must be one of %v", cfg.Display.Scale, displayScales)
	}
	if !slices.Contains(logLevels, cfg.Log.Level) {
		return fmt.Errorf("log.level %q must be one of %v", cfg.Log.Level, logLevels)
	}

	return nil
}
