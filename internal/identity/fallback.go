package identity

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/mem"
)

const fallbackSeparator = "_"

// MemoryReader reports the total amount of system memory in bytes.
type MemoryReader func(ctx context.Context) (uint64, error)

// HostnameReader reports the network name of the host.
type HostnameReader func(ctx context.Context) (string, error)

// FallbackSynthesizer builds a deterministic stand-in identifier from system
// facts when no platform source produced one.
type FallbackSynthesizer struct {
	Memory   MemoryReader
	Hostname HostnameReader
}

// NewFallbackSynthesizer creates a FallbackSynthesizer backed by gopsutil memory
// statistics and the OS hostname.
func NewFallbackSynthesizer() *FallbackSynthesizer {
	return &FallbackSynthesizer{
		Memory:   totalMemory,
		Hostname: hostname,
	}
}

// Synthesize joins the total memory and, when includeHostname is set, the
// hostname. Components that cannot be read are left empty.
func (s *FallbackSynthesizer) Synthesize(ctx context.Context, includeHostname bool) string {
	components := []string{s.memoryComponent(ctx)}
	if includeHostname {
		components = append(components, s.hostnameComponent(ctx))
	}
	return strings.Join(components, fallbackSeparator)
}

func (s *FallbackSynthesizer) memoryComponent(ctx context.Context) string {
	if s.Memory == nil {
		return ""
	}
	total, err := s.Memory(ctx)
	if err != nil || total == 0 {
		return ""
	}
	return fmt.Sprintf("%dMB", total/(1024*1024))
}

func (s *FallbackSynthesizer) hostnameComponent(ctx context.Context) string {
	if s.Hostname == nil {
		return ""
	}
	name, err := s.Hostname(ctx)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

func totalMemory(ctx context.Context) (uint64, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return v.Total, nil
}

// hostname reads only the network name. host.InfoWithContext fails as a whole
// when any unrelated host fact is unreadable.
func hostname(context.Context) (string, error) {
	return os.Hostname()
}
