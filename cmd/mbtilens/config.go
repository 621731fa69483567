package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tinytelemetry/mbtilens/internal/catalog"
	"github.com/tinytelemetry/mbtilens/internal/model"
	"github.com/tinytelemetry/mbtilens/internal/socketrpc"

	"github.com/spf13/viper"
)

const (
	defaultBindHost = "127.0.0.1"
	defaultAPIPort  = 3000
	defaultLogLevel = "info"
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	APIPort      int           `mapstructure:"api-port"`
	APIAddr      string        `mapstructure:"api-addr"`
	DisplayMode  string        `mapstructure:"display-mode"`
	Background   string        `mapstructure:"background"`
	ApplyColor   bool          `mapstructure:"apply-color"`
	CatalogPath  string        `mapstructure:"catalog-path"`
	WatchCatalog bool          `mapstructure:"watch-catalog"`
	LogLevel     string        `mapstructure:"log-level"`
	SocketPath   string        `mapstructure:"socket-path"`
	SocketServe  bool          `mapstructure:"socket-enabled"`
	Strings      model.Strings `mapstructure:"strings"`

	Mode       model.DisplayMode `mapstructure:"-"`
	ConfigPath string            `mapstructure:"-"` // not from config file
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("MBTILENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-port", defaultAPIPort)
	v.SetDefault("display-mode", string(model.DefaultDisplayMode))
	v.SetDefault("background", string(model.DefaultBackground))
	v.SetDefault("apply-color", true)
	v.SetDefault("catalog-path", "")
	v.SetDefault("watch-catalog", false)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("socket-enabled", true)
	v.SetDefault("socket-path", socketrpc.DefaultSocketPath())

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
	cfg.ConfigPath = v.ConfigFileUsed()
	if _, err := os.Stat(cfg.ConfigPath); err != nil {
		cfg.ConfigPath = ""
	}

	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}
	cfg.Mode, err = model.ParseDisplayMode(cfg.DisplayMode)
	if err != nil {
		return cfg, err
	}
	if _, err := model.ParseBackground(cfg.Background); err != nil {
		return cfg, err
	}
	cfg.Strings = cfg.Strings.WithDefaults()

	// Expand ~ in catalog-path
	if strings.HasPrefix(cfg.CatalogPath, "~/") {
		cfg.CatalogPath = filepath.Join(home, cfg.CatalogPath[2:])
	}

	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(defaultBindHost, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}

// buildCatalog returns the built-in catalog with the configured override
// file, if any, merged on top.
func buildCatalog(cfg appConfig) (*catalog.Catalog, error) {
	base := catalog.Default()
	if cfg.CatalogPath == "" {
		return base, nil
	}
	c, err := catalog.LoadFile(cfg.CatalogPath, base)
	if err != nil {
		return nil, err
	}
	return c, nil
}
