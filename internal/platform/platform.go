package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// Tag identifies the platform family the identifier lookup is specialised for.
type Tag string

const (
	Windows Tag = "windows"
	Xbox    Tag = "xbox"
	Android Tag = "android"
	Linux   Tag = "linux"
	OSX     Tag = "osx"
	IOS     Tag = "ios"
	Other   Tag = "other"
)

var tags = []Tag{Windows, Xbox, Android, Linux, OSX, IOS, Other}

// All returns every known platform tag.
func All() []Tag {
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}

// Detect reports the tag of the running platform.
// Xbox cannot be told apart from Windows at runtime and is only reachable through Parse.
func Detect() Tag {
	return fromGOOS(runtime.GOOS)
}

func fromGOOS(goos string) Tag {
	switch goos {
	case "windows":
		return Windows
	case "android":
		return Android
	case "linux":
		return Linux
	case "darwin":
		return OSX
	case "ios":
		return IOS
	default:
		return Other
	}
}

// Parse converts a platform name into a Tag. An empty name detects the running platform.
func Parse(name string) (Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Detect(), nil
	}
	if name == "darwin" || name == "macos" {
		return OSX, nil
	}
	for _, t := range tags {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
}

func (t Tag) IsAndroid() bool {
	return t == Android
}

func (t Tag) String() string {
	return string(t)
}
