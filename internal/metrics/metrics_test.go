package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveResolution(t *testing.T) {
	before := testutil.ToFloat64(resolutions.WithLabelValues("linux", "machine-id"))

	ObserveResolution("linux", "machine-id")
	ObserveResolution("linux", "machine-id")

	after := testutil.ToFloat64(resolutions.WithLabelValues("linux", "machine-id"))
	require.Equal(t, before+2, after)
}

func TestWriteTextfile(t *testing.T) {
	ObserveResolution("osx", "fallback")

	path := filepath.Join(t.TempDir(), "devicekey.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "devicekey_resolutions_total")
	require.Contains(t, string(data), `platform="osx"`)
	require.Contains(t, string(data), `source="fallback"`)
}
