//go:build !windows

package identity

// The registry only exists on Windows; an xbox/windows override elsewhere
// goes straight to the volume serial lookup.
func readMachineGUID() (string, error) {
	return "", unavailable("registry not available on this OS")
}
