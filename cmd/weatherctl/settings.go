package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weathervista/internal/proxyclient"
)

type settings struct {
	ProxyURL    string
	Storage     string
	StoragePath string
	RedisURL    string
	Fahrenheit  bool
	Timeout     time.Duration
	Verbose     bool
}

// setupFlags declares the persistent flags and binds each to its viper key.
func setupFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to a config file (default $XDG_CONFIG_HOME/weathervista/config.yaml)")
	flags.String("proxy", proxyclient.DefaultURL, "Gateway weather endpoint URL")
	flags.String("storage", "file", "History backend: file, redis or memory")
	flags.String("storage-path", "", "History file for the file backend")
	flags.String("redis-url", "redis://localhost:6379/0", "Redis URL for the redis backend")
	flags.Bool("fahrenheit", false, "Show temperatures in Fahrenheit")
	flags.Duration("timeout", 15*time.Second, "Gateway request timeout")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	for key, flag := range map[string]string{
		"proxy_url":    "proxy",
		"storage":      "storage",
		"storage_path": "storage-path",
		"redis_url":    "redis-url",
		"fahrenheit":   "fahrenheit",
		"timeout":      "timeout",
		"verbose":      "verbose",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	v.SetEnvPrefix("WEATHERVISTA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// loadSettings reads the optional config file, then resolves every key.
// Precedence: flag, environment, config file, default.
func loadSettings(cmd *cobra.Command, v *viper.Viper) (settings, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "weathervista"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, err
		}
	}

	return settings{
		ProxyURL:    v.GetString("proxy_url"),
		Storage:     v.GetString("storage"),
		StoragePath: v.GetString("storage_path"),
		RedisURL:    v.GetString("redis_url"),
		Fahrenheit:  v.GetBool("fahrenheit"),
		Timeout:     v.GetDuration("timeout"),
		Verbose:     v.GetBool("verbose"),
	}, nil
}
