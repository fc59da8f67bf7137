package identity

import (
	"context"
	"strings"
)

const (
	dbusMachineIDPath = "/var/lib/dbus/machine-id"
	machineIDPath     = "/etc/machine-id"
)

// MachineIDFetcher reads the systemd/dbus machine ID from the first readable path.
type MachineIDFetcher struct {
	paths    []string
	readFile func(string) ([]byte, error)
}

// NewMachineIDFetcher creates a MachineIDFetcher for the given paths,
// defaulting to the dbus and /etc locations.
func NewMachineIDFetcher(paths ...string) *MachineIDFetcher {
	src := Sources{MachineIDPaths: paths}.withDefaults()
	return &MachineIDFetcher{paths: src.MachineIDPaths, readFile: src.ReadFile}
}

func (f *MachineIDFetcher) Source() string { return "machine-id" }

func (f *MachineIDFetcher) FetchRawIdentifier(_ context.Context) (string, error) {
	for _, path := range f.paths {
		data, err := f.readFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}
	return "", unavailable("no readable machine-id in %s", strings.Join(f.paths, ", "))
}
