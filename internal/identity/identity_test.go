package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/container-registry/devicekey/internal/platform"
	"github.com/stretchr/testify/require"
)

func TestFirstAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first non-empty value", func(t *testing.T) {
		first := NewMockFetcher("first", "")
		second := NewMockFetcher("second", "value-2")
		third := NewMockFetcher("third", "value-3")

		raw, source, err := FirstAvailable(ctx, first, second, third)
		require.NoError(t, err)
		require.Equal(t, "value-2", raw)
		require.Equal(t, "second", source)
		require.Equal(t, 1, first.Calls)
		require.Equal(t, 1, second.Calls)
		require.Equal(t, 0, third.Calls, "chain must short-circuit")
	})

	t.Run("errors are treated as no value", func(t *testing.T) {
		failing := NewMockFetcher("failing", "ignored")
		failing.Err = errors.New("permission denied")
		ok := NewMockFetcher("ok", "value")

		raw, source, err := FirstAvailable(ctx, failing, ok)
		require.NoError(t, err)
		require.Equal(t, "value", raw)
		require.Equal(t, "ok", source)
	})

	t.Run("whitespace only is treated as no value", func(t *testing.T) {
		_, _, err := FirstAvailable(ctx, NewMockFetcher("blank", " \n"))
		require.ErrorIs(t, err, ErrComponentUnavailable)
	})

	t.Run("all failing reports unavailable", func(t *testing.T) {
		a := NewMockFetcher("a", "")
		b := NewMockFetcher("b", "")
		b.Err = ErrParseFailed

		_, _, err := FirstAvailable(ctx, a, b)
		require.ErrorIs(t, err, ErrComponentUnavailable)
		require.ErrorIs(t, err, ErrParseFailed)
	})

	t.Run("no fetchers reports unavailable", func(t *testing.T) {
		_, _, err := FirstAvailable(ctx)
		require.ErrorIs(t, err, ErrComponentUnavailable)
	})
}

func TestFetchersFor(t *testing.T) {
	src := Sources{
		Run:             StaticRunner(nil),
		ReadFile:        func(string) ([]byte, error) { return nil, errors.New("missing") },
		ReadMachineGUID: func() (string, error) { return "", ErrComponentUnavailable },
	}

	tests := []struct {
		tag     platform.Tag
		sources []string
	}{
		{tag: platform.Windows, sources: []string{"registry", "volume-serial"}},
		{tag: platform.Xbox, sources: []string{"registry", "volume-serial"}},
		{tag: platform.Android, sources: []string{"getprop"}},
		{tag: platform.Linux, sources: []string{"machine-id"}},
		{tag: platform.OSX, sources: []string{"system-profiler"}},
		{tag: platform.IOS, sources: []string{"system-profiler"}},
		{tag: platform.Other, sources: nil},
		{tag: platform.Tag("beos"), sources: nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			fetchers := FetchersFor(tt.tag, src)
			var got []string
			for _, f := range fetchers {
				got = append(got, f.Source())
			}
			require.Equal(t, tt.sources, got)
		})
	}
}

func TestFetchersFor_WindowsFallsBackToVolumeSerial(t *testing.T) {
	src := Sources{
		ReadMachineGUID: func() (string, error) { return "", ErrComponentUnavailable },
		Run: StaticRunner(map[string]string{
			"cmd": " Volume in drive C has no label.\r\n Volume Serial Number is 1A2B-3C4D\r\n",
		}),
	}

	raw, source, err := FirstAvailable(context.Background(), FetchersFor(platform.Windows, src)...)
	require.NoError(t, err)
	require.Equal(t, "1A2B-3C4D", raw)
	require.Equal(t, "volume-serial", source)
}

func TestDefaultSources(t *testing.T) {
	src := DefaultSources()
	require.Equal(t, []string{"/var/lib/dbus/machine-id", "/etc/machine-id"}, src.MachineIDPaths)
	require.Equal(t, "/system/bin/getprop", src.GetpropPath)
	require.Equal(t, "/usr/sbin/system_profiler", src.SystemProfilerPath)
	require.NotNil(t, src.Run)
	require.NotNil(t, src.ReadFile)
	require.NotNil(t, src.ReadMachineGUID)
}
