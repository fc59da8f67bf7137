package identity

import (
	"context"
	"strings"
)

const (
	cryptographyKeyPath = `SOFTWARE\Microsoft\Cryptography`
	machineGUIDValue    = "MachineGuid"
)

// RegistryFetcher reads HKLM\SOFTWARE\Microsoft\Cryptography\MachineGuid.
type RegistryFetcher struct {
	read func() (string, error)
}

func (f *RegistryFetcher) Source() string { return "registry" }

func (f *RegistryFetcher) FetchRawIdentifier(_ context.Context) (string, error) {
	guid, err := f.read()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(guid), nil
}

// VolumeSerialFetcher reports the serial number of the C: volume as printed by `vol`.
type VolumeSerialFetcher struct {
	run CommandRunner
}

func (f *VolumeSerialFetcher) Source() string { return "volume-serial" }

func (f *VolumeSerialFetcher) FetchRawIdentifier(ctx context.Context) (string, error) {
	// vol is a cmd.exe builtin, not an executable.
	out, err := f.run(ctx, "cmd", "/c", "vol", "c:")
	if err != nil {
		return "", unavailable("vol c: %v", err)
	}
	return parseVolumeSerial(string(out))
}

// parseVolumeSerial returns the last whitespace separated token of the vol output,
// which is the "XXXX-XXXX" serial number.
func parseVolumeSerial(output string) (string, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return "", ErrParseFailed
	}
	return fields[len(fields)-1], nil
}
