//go:build windows

package identity

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

func readMachineGUID() (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, cryptographyKeyPath, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", fmt.Errorf("%w: open registry key %s: %v", ErrComponentUnavailable, cryptographyKeyPath, err)
	}
	defer key.Close()

	guid, _, err := key.GetStringValue(machineGUIDValue)
	if err != nil {
		return "", fmt.Errorf("%w: read registry value %s: %v", ErrComponentUnavailable, machineGUIDValue, err)
	}
	return guid, nil
}
