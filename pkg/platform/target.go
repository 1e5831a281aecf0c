// Package platform describes the target a view tree is materialized on and
// which rendering backends that target provides.
//
// A Target is a plain value carried by the injected view context. Capability
// checks compare the target's version against the first release that shipped
// the declarative backend:
//
//	t, err := platform.ParseTarget("ios", "12.4")
//	if err == nil && !t.DeclarativeAvailable() {
//	    // only the native path exists
//	}
package platform

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Name identifies an operating system family.
type Name string

const (
	MacOS   Name = "macos"
	IOS     Name = "ios"
	TVOS    Name = "tvos"
	WatchOS Name = "watchos"
	// Linux has no declarative backend; every view takes the native path.
	Linux Name = "linux"
)

// declarativeSince is the first release of each OS family that ships the
// declarative backend. Families missing from the table never have it.
var declarativeSince = map[Name]string{
	MacOS:   "v10.15.0",
	IOS:     "v13.0.0",
	TVOS:    "v13.0.0",
	WatchOS: "v6.0.0",
}

var knownNames = map[Name]bool{
	MacOS: true, IOS: true, TVOS: true, WatchOS: true, Linux: true,
}

// Target is an OS family at a specific release.
type Target struct {
	Name Name
	// Version is a canonical semantic version such as "v14.0.0".
	Version string
}

// ParseTarget validates name and version and returns the canonical target.
// Versions may omit the leading "v" and trailing components ("14", "13.2").
func ParseTarget(name, version string) (Target, error) {
	n := Name(strings.ToLower(strings.TrimSpace(name)))
	if !knownNames[n] {
		return Target{}, fmt.Errorf("unknown platform %q", name)
	}
	v, err := CanonicalVersion(version)
	if err != nil {
		return Target{}, err
	}
	return Target{Name: n, Version: v}, nil
}

// CanonicalVersion normalizes an OS release string to "vMAJOR.MINOR.PATCH".
func CanonicalVersion(version string) (string, error) {
	v := strings.TrimSpace(version)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid platform version %q", version)
	}
	return semver.Canonical(v), nil
}

// AtLeast reports whether the target's version is at or above version.
// An invalid version never matches.
func (t Target) AtLeast(version string) bool {
	v, err := CanonicalVersion(version)
	if err != nil || !semver.IsValid(t.Version) {
		return false
	}
	return semver.Compare(t.Version, v) >= 0
}

// DeclarativeAvailable reports whether the declarative backend exists on the
// target.
func (t Target) DeclarativeAvailable() bool {
	since, ok := declarativeSince[t.Name]
	if !ok {
		return false
	}
	return t.AtLeast(since)
}

func (t Target) String() string {
	if t.Version == "" {
		return string(t.Name)
	}
	return string(t.Name) + " " + strings.TrimPrefix(t.Version, "v")
}
