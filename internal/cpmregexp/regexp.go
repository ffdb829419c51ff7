package cpmregexp

import "regexp"

// Declarations recognized in a Gradle build script. Each captures
// its value in the first submatch and only the first occurrence in
// the script is ever consulted.
var (
	VersionCode       = regexp.MustCompile(`versionCode\s+(\d+)`)
	ApplicationID     = regexp.MustCompile(`applicationId\s+["']([^"']+)["']`)
	MinSDKVersion     = regexp.MustCompile(`minSdkVersion\s+(\d+)`)
	TargetSDKVersion  = regexp.MustCompile(`targetSdkVersion\s+(\d+)`)
	CompileSDKVersion = regexp.MustCompile(`compileSdkVersion\s+(\d+)`)
	KeyAlias          = regexp.MustCompile(`keyAlias\s+["']([^"']+)["']`)
)
