package identity

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFallbackSynthesizer_Synthesize(t *testing.T) {
	memory := func(context.Context) (uint64, error) { return 8 * 1024 * 1024 * 1024, nil }
	name := func(context.Context) (string, error) { return "kitchen-box", nil }
	failingMemory := func(context.Context) (uint64, error) { return 0, errors.New("no /proc") }
	failingName := func(context.Context) (string, error) { return "", errors.New("no uts") }

	tests := []struct {
		name            string
		synth           *FallbackSynthesizer
		includeHostname bool
		want            string
	}{
		{
			name:            "memory and hostname",
			synth:           &FallbackSynthesizer{Memory: memory, Hostname: name},
			includeHostname: true,
			want:            "8192MB_kitchen-box",
		},
		{
			name:            "android omits hostname",
			synth:           &FallbackSynthesizer{Memory: memory, Hostname: name},
			includeHostname: false,
			want:            "8192MB",
		},
		{
			name:            "failing memory leaves empty component",
			synth:           &FallbackSynthesizer{Memory: failingMemory, Hostname: name},
			includeHostname: true,
			want:            "_kitchen-box",
		},
		{
			name:            "everything failing still yields a string",
			synth:           &FallbackSynthesizer{Memory: failingMemory, Hostname: failingName},
			includeHostname: true,
			want:            "_",
		},
		{
			name:            "nil readers",
			synth:           &FallbackSynthesizer{},
			includeHostname: false,
			want:            "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.synth.Synthesize(context.Background(), tt.includeHostname))
		})
	}
}

func TestFallbackSynthesizer_Deterministic(t *testing.T) {
	s := NewFallbackSynthesizer()

	v1 := s.Synthesize(context.Background(), true)
	v2 := s.Synthesize(context.Background(), true)
	require.Equal(t, v1, v2)
}

func TestHostname_MatchesOS(t *testing.T) {
	want, err := os.Hostname()
	require.NoError(t, err)

	got, err := hostname(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFallbackSynthesizer_DefaultHostnameComponent(t *testing.T) {
	want, err := os.Hostname()
	require.NoError(t, err)

	s := NewFallbackSynthesizer()
	s.Memory = func(context.Context) (uint64, error) { return 0, errors.New("no /proc") }

	require.Equal(t, "_"+want, s.Synthesize(context.Background(), true))
}
