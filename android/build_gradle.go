package android

import (
	"github.com/frantjc/cpm/internal/cpmregexp"
)

const (
	BuildGradleName = "build.gradle"
)

// BuildGradle holds the scalar declarations recognized in an app
// module's build.gradle. The script is not parsed as Groovy; each field
// is the first match of its keyword-anchored pattern, or "".
type BuildGradle struct {
	VersionCode       string `json:"versionCode"`
	ApplicationID     string `json:"applicationId"`
	MinSDKVersion     string `json:"minSdkVersion"`
	TargetSDKVersion  string `json:"targetSdkVersion"`
	CompileSDKVersion string `json:"compileSdkVersion"`
	// KeyAlias is reported as part of signing, not the build script.
	KeyAlias string `json:"-"`
}

func ParseBuildGradle(b []byte) *BuildGradle {
	return &BuildGradle{
		VersionCode:       cpmregexp.FindFirst(cpmregexp.VersionCode, b),
		ApplicationID:     cpmregexp.FindFirst(cpmregexp.ApplicationID, b),
		MinSDKVersion:     cpmregexp.FindFirst(cpmregexp.MinSDKVersion, b),
		TargetSDKVersion:  cpmregexp.FindFirst(cpmregexp.TargetSDKVersion, b),
		CompileSDKVersion: cpmregexp.FindFirst(cpmregexp.CompileSDKVersion, b),
		KeyAlias:          cpmregexp.FindFirst(cpmregexp.KeyAlias, b),
	}
}
