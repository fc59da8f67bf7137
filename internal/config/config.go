package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	LogLevel           string   `mapstructure:"log_level"`
	Platform           string   `mapstructure:"platform"`
	MachineIDPaths     []string `mapstructure:"machine_id_paths"`
	GetpropPath        string   `mapstructure:"getprop_path"`
	SystemProfilerPath string   `mapstructure:"system_profiler_path"`
	MetricsFile        string   `mapstructure:"metrics_file"`
	AuditLogFile       string   `mapstructure:"audit_log_file"`
}

// Load reads the configuration from path (json, yaml or toml by extension) and the
// DEVICEKEY_* environment. A missing file at DefaultConfigPath is not an error.
// Invalid values are replaced by defaults and reported as warnings.
func Load(path string) (*Config, []string, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !(path == DefaultConfigPath && errors.Is(err, os.ErrNotExist)) {
				return nil, nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("decode config: %w", err)
	}

	warnings := Validate(&cfg)
	return &cfg, warnings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("platform", "")
	v.SetDefault("machine_id_paths", DefaultMachineIDPaths)
	v.SetDefault("getprop_path", DefaultGetpropPath)
	v.SetDefault("system_profiler_path", DefaultSystemProfilerPath)
	v.SetDefault("metrics_file", "")
	v.SetDefault("audit_log_file", "")
}
