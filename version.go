package cpm

import "runtime/debug"

var (
	// Version is overridden at build time with
	// -ldflags "-X github.com/frantjc/cpm.Version=...".
	Version = "0.0.0"
	// Prerelease is overridden the same way as Version.
	Prerelease = ""
)

// SemVer returns the semantic version of cpm, including
// the VCS revision it was built from when known.
func SemVer() string {
	semver := Version

	if Prerelease != "" {
		semver = semver + "-" + Prerelease
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range buildInfo.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
				return semver + "+" + setting.Value[:7]
			}
		}
	}

	return semver
}
