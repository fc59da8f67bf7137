package identity

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"howett.net/plist"
)

const systemProfilerPath = "/usr/sbin/system_profiler"

// SystemProfilerFetcher reads the hardware UUID (or serial number) reported by
// system_profiler on macOS and iOS.
type SystemProfilerFetcher struct {
	path string
	run  CommandRunner
}

func (f *SystemProfilerFetcher) Source() string { return "system-profiler" }

func (f *SystemProfilerFetcher) FetchRawIdentifier(ctx context.Context) (string, error) {
	out, err := f.run(ctx, f.path, "SPHardwareDataType", "-detaillevel", "full", "-xml")
	if err != nil {
		return "", unavailable("%s: %v", f.path, err)
	}
	if len(out) == 0 {
		return "", unavailable("%s: empty output", f.path)
	}
	return parseHardwareProfile(out)
}

type hardwareDataType struct {
	Items []map[string]any `plist:"_items"`
}

// parseHardwareProfile picks the first key containing "uuid" (e.g. platform_UUID),
// else the first key containing "serial" and "number" (e.g. serial_number).
func parseHardwareProfile(data []byte) (string, error) {
	var report []hardwareDataType
	if _, err := plist.Unmarshal(data, &report); err != nil {
		return "", fmt.Errorf("%w: decode plist: %v", ErrParseFailed, err)
	}
	if len(report) == 0 || len(report[0].Items) == 0 {
		return "", fmt.Errorf("%w: no hardware items", ErrParseFailed)
	}
	items := report[0].Items[0]

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if v, ok := firstStringValue(items, keys, func(k string) bool {
		return strings.Contains(k, "uuid")
	}); ok {
		return v, nil
	}
	if v, ok := firstStringValue(items, keys, func(k string) bool {
		return strings.Contains(k, "serial") && strings.Contains(k, "number")
	}); ok {
		return v, nil
	}
	return "", ErrComponentUnavailable
}

func firstStringValue(items map[string]any, keys []string, match func(lowerKey string) bool) (string, bool) {
	for _, k := range keys {
		if !match(strings.ToLower(k)) {
			continue
		}
		if s, ok := items[k].(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}
