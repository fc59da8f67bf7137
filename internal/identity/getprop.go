package identity

import (
	"bufio"
	"context"
	"strings"
)

const getpropPath = "/system/bin/getprop"

// Serials are no longer readable on recent Android releases, so the identifier
// is assembled from a fixed set of product and locale properties.
// net.hostname is empty from Android 10 onwards.
var androidProperties = map[string]struct{}{
	"ro.product.board":        {},
	"ro.product.brand":        {},
	"ro.product.device":       {},
	"ro.product.locale":       {},
	"ro.product.manufacturer": {},
	"ro.product.model":        {},
	"ro.product.platform":     {},
	"persist.sys.timezone":    {},
	"persist.sys.locale":      {},
	"net.hostname":            {},
}

// GetpropFetcher builds an identifier from the Android system property dump.
type GetpropFetcher struct {
	path string
	run  CommandRunner
}

func (f *GetpropFetcher) Source() string { return "getprop" }

func (f *GetpropFetcher) FetchRawIdentifier(ctx context.Context) (string, error) {
	out, err := f.run(ctx, f.path)
	if err != nil {
		return "", unavailable("%s: %v", f.path, err)
	}
	return parseGetprop(string(out)), nil
}

// parseGetprop concatenates, in dump order, the values of allow-listed properties.
// Lines look like "[ro.product.model]: [Pixel 7]"; brackets and whitespace are dropped.
func parseGetprop(dump string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(dump))
	for scanner.Scan() {
		line := stripProperty(scanner.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if _, allowed := androidProperties[key]; allowed {
			b.WriteString(value)
		}
	}
	return b.String()
}

func stripProperty(line string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ' ', '\t', '\r', '\n', '\v', '\f':
			return -1
		}
		return r
	}, line)
}
