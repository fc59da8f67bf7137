package config

// Environment variables prefixed with EnvPrefix override file values, e.g. DEVICEKEY_LOG_LEVEL.
const EnvPrefix string = "DEVICEKEY"

// Default config path, used if the user does not provide one. A missing default file is not an error.
const DefaultConfigPath string = "devicekey.json"

const DefaultLogLevel string = "info"

const DefaultGetpropPath string = "/system/bin/getprop"
const DefaultSystemProfilerPath string = "/usr/sbin/system_profiler"

// DefaultMachineIDPaths are tried in order; Fedora only ships the second one.
var DefaultMachineIDPaths = []string{"/var/lib/dbus/machine-id", "/etc/machine-id"}
