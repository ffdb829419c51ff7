package cpmblob

import "path"

const (
	PlatformsPrefix = "platforms/"
)

func ConfigXMLKey() string {
	return "config.xml"
}

func AndroidManifestKey() string {
	return path.Join("platforms", "android", "app", "src", "main", "AndroidManifest.xml")
}

func BuildGradleKey() string {
	return path.Join("platforms", "android", "app", "build.gradle")
}

func KeystoreKey() string {
	return "package.keystore"
}
