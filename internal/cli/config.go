package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configName = ".adminctl"

// Config est la configuration d'adminctl (.adminctl.yaml + ADMINCTL_*)
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	List    ListConfig    `mapstructure:"list"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`

	path string
}

type APIConfig struct {
	URL     string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ListConfig struct {
	PageSize int           `mapstructure:"page_size"`
	Debounce time.Duration `mapstructure:"debounce"`
}

type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig lit le fichier de configuration, l'environnement puis les flags
// globaux déjà parsés
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ADMINCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, flag := range map[string]string{"api.base_url": "api-url", "api.token": "token"} {
			if f := flags.Lookup(flag); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	path, err := readConfigFile(v, cfgFile)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.path = path

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("output.colors", true)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("list.page_size", 10)
	v.SetDefault("list.debounce", 500*time.Millisecond)
}

func readConfigFile(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
			return cfgFile, nil
		}
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("reading config: %w", err)
		}
		return cfgFile, nil
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/adminctl")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return "", fmt.Errorf("reading config: %w", err)
		}
		return defaultConfigPath(), nil
	}
	return v.ConfigFileUsed(), nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configName + ".yaml"
	}
	return filepath.Join(home, ".config", "adminctl", configName+".yaml")
}

func validate(cfg *Config) error {
	if cfg.API.URL == "" {
		return errors.New("api.base_url is required")
	}
	if cfg.List.PageSize < 1 {
		return fmt.Errorf("invalid list.page_size: %d (must be positive)", cfg.List.PageSize)
	}
	if cfg.List.Debounce < 0 {
		return fmt.Errorf("invalid list.debounce: %s (must not be negative)", cfg.List.Debounce)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}
	return nil
}

// SaveToken écrit le jeton dans le fichier de configuration en conservant
// les autres clés
func SaveToken(cfg *Config, token string) error {
	v := viper.New()
	v.SetConfigFile(cfg.path)
	v.SetConfigType("yaml")
	if _, err := os.Stat(cfg.path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	v.Set("api.base_url", cfg.API.URL)
	v.Set("api.token", token)

	if err := os.MkdirAll(filepath.Dir(cfg.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := v.WriteConfigAs(cfg.path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Chmod(cfg.path, 0o600); err != nil {
		return fmt.Errorf("securing config: %w", err)
	}
	cfg.API.Token = token
	return nil
}

// Path retourne le fichier de configuration lu ou à écrire
func (c *Config) Path() string {
	return c.path
}
