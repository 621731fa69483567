package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinytelemetry/mbtilens/internal/model"

	"github.com/spf13/viper"
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	DisplayMode string        `mapstructure:"display-mode"`
	Background  string        `mapstructure:"background"`
	ApplyColor  bool          `mapstructure:"apply-color"`
	CatalogPath string        `mapstructure:"catalog-path"`
	Fragment    string        `mapstructure:"fragment"`
	SocketPath  string        `mapstructure:"tui-socket-path"`
	Strings     model.Strings `mapstructure:"strings"`

	Mode           model.DisplayMode `mapstructure:"-"`
	BackgroundKind model.Background  `mapstructure:"-"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("MBTILENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("display-mode", string(model.DefaultDisplayMode))
	v.SetDefault("background", string(model.DefaultBackground))
	v.SetDefault("apply-color", true)
	v.SetDefault("catalog-path", "")
	v.SetDefault("fragment", "")
	v.SetDefault("tui-socket-path", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "mbtilens", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if cfg.Mode, err = model.ParseDisplayMode(cfg.DisplayMode); err != nil {
		return cfg, err
	}
	if cfg.BackgroundKind, err = model.ParseBackground(cfg.Background); err != nil {
		return cfg, err
	}
	if strings.HasPrefix(cfg.CatalogPath, "~/") {
		cfg.CatalogPath = filepath.Join(home, cfg.CatalogPath[2:])
	}
	cfg.Strings = cfg.Strings.WithDefaults()

	return cfg, nil
}
