package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/container-registry/devicekey/internal/platform"
)

var (
	ErrComponentUnavailable = errors.New("identity component unavailable")
	ErrParseFailed          = errors.New("failed to parse identity source")
)

// Fetcher looks up a raw device identifier from a single OS source.
// An error or an empty value both mean the source has nothing to offer.
type Fetcher interface {
	// Source names the lookup, e.g. "machine-id" or "registry".
	Source() string

	// FetchRawIdentifier performs the lookup once.
	FetchRawIdentifier(ctx context.Context) (string, error)
}

// CommandRunner executes an external program and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands through os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Sources groups the OS collaborators the fetchers read from.
type Sources struct {
	MachineIDPaths     []string
	GetpropPath        string
	SystemProfilerPath string

	Run             CommandRunner
	ReadFile        func(path string) ([]byte, error)
	ReadMachineGUID func() (string, error)
}

// DefaultSources returns the well-known locations and the real OS accessors.
func DefaultSources() Sources {
	return Sources{
		MachineIDPaths:     []string{dbusMachineIDPath, machineIDPath},
		GetpropPath:        getpropPath,
		SystemProfilerPath: systemProfilerPath,
		Run:                ExecRunner,
		ReadFile:           os.ReadFile,
		ReadMachineGUID:    readMachineGUID,
	}
}

func (s Sources) withDefaults() Sources {
	d := DefaultSources()
	if len(s.MachineIDPaths) == 0 {
		s.MachineIDPaths = d.MachineIDPaths
	}
	if s.GetpropPath == "" {
		s.GetpropPath = d.GetpropPath
	}
	if s.SystemProfilerPath == "" {
		s.SystemProfilerPath = d.SystemProfilerPath
	}
	if s.Run == nil {
		s.Run = d.Run
	}
	if s.ReadFile == nil {
		s.ReadFile = d.ReadFile
	}
	if s.ReadMachineGUID == nil {
		s.ReadMachineGUID = d.ReadMachineGUID
	}
	return s
}

// FetchersFor returns the lookups to attempt, in order, for the given platform.
// Platforms without a known source get no fetchers.
func FetchersFor(tag platform.Tag, src Sources) []Fetcher {
	src = src.withDefaults()

	switch tag {
	case platform.Windows, platform.Xbox:
		return []Fetcher{
			&RegistryFetcher{read: src.ReadMachineGUID},
			&VolumeSerialFetcher{run: src.Run},
		}
	case platform.Android:
		return []Fetcher{&GetpropFetcher{path: src.GetpropPath, run: src.Run}}
	case platform.Linux:
		return []Fetcher{&MachineIDFetcher{paths: src.MachineIDPaths, readFile: src.ReadFile}}
	case platform.OSX, platform.IOS:
		return []Fetcher{&SystemProfilerFetcher{path: src.SystemProfilerPath, run: src.Run}}
	default:
		return nil
	}
}

// FirstAvailable tries each fetcher once, in order, and returns the first
// non-empty identifier together with the name of its source.
func FirstAvailable(ctx context.Context, fetchers ...Fetcher) (string, string, error) {
	var errs []error
	for _, f := range fetchers {
		raw, err := f.FetchRawIdentifier(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Source(), err))
			continue
		}
		if strings.TrimSpace(raw) == "" {
			errs = append(errs, fmt.Errorf("%s: empty value", f.Source()))
			continue
		}
		return raw, f.Source(), nil
	}

	if len(errs) == 0 {
		return "", "", ErrComponentUnavailable
	}
	return "", "", fmt.Errorf("%w: %w", ErrComponentUnavailable, errors.Join(errs...))
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrComponentUnavailable, fmt.Sprintf(format, args...))
}
