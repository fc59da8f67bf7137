package config

import (
	"fmt"
	"strings"

	"github.com/container-registry/devicekey/internal/platform"
	"github.com/rs/zerolog"
)

// Validate replaces invalid values with their defaults and returns a warning for each.
func Validate(cfg *Config) []string {
	var warnings []string

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil || cfg.LogLevel == "" {
		warnings = append(warnings, fmt.Sprintf("invalid log_level %q, using default %s", cfg.LogLevel, DefaultLogLevel))
		cfg.LogLevel = DefaultLogLevel
	}

	if _, err := platform.Parse(cfg.Platform); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v, detecting platform instead", err))
		cfg.Platform = ""
	}

	paths := make([]string, 0, len(cfg.MachineIDPaths))
	for _, p := range cfg.MachineIDPaths {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		warnings = append(warnings, "no machine_id_paths configured, using defaults")
		paths = append([]string(nil), DefaultMachineIDPaths...)
	}
	cfg.MachineIDPaths = paths

	if cfg.GetpropPath == "" {
		cfg.GetpropPath = DefaultGetpropPath
	}
	if cfg.SystemProfilerPath == "" {
		cfg.SystemProfilerPath = DefaultSystemProfilerPath
	}

	return warnings
}

// PlatformTag returns the configured platform override, or the detected platform.
func (c *Config) PlatformTag() platform.Tag {
	tag, err := platform.Parse(c.Platform)
	if err != nil {
		return platform.Detect()
	}
	return tag
}
