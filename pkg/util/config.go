package util

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ReadConfig loads configPath (yaml, toml or json) into v. Environment variables prefixed
// with COMPASS_ override file values, e.g. COMPASS_SERVER_PORT for server.port.
func ReadConfig(v *viper.Viper, configPath string) error {
	dir, file := filepath.Split(configPath)
	ext := filepath.Ext(file)
	if dir == "" {
		dir = "."
	}

	v.SetConfigName(strings.TrimSuffix(file, ext))
	v.SetConfigType(strings.TrimPrefix(ext, "."))
	v.AddConfigPath(dir)

	v.SetEnvPrefix("COMPASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
