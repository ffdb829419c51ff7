package cpm

import (
	"github.com/frantjc/cpm/android"
	"github.com/frantjc/cpm/cordova"
	"github.com/opencontainers/go-digest"
)

const (
	// RedactedSecret stands in for signing passwords, which are never read.
	RedactedSecret = "***"
)

// ProjectDescriptorSet is the configuration of a Cordova project as
// read from its descriptor files. It is built fresh on every Load.
type ProjectDescriptorSet struct {
	Basic             cordova.WidgetConfig     `json:"basic"`
	PlatformManifest  android.ManifestConfig   `json:"platformManifest"`
	BuildScript       android.BuildGradle      `json:"buildScript"`
	Permissions       map[string]string        `json:"permissions"`
	Signing           SigningStatus            `json:"signing"`
	Icons             map[string]string        `json:"icons"`
	MemoryPageSupport android.MemoryPageStatus `json:"memoryPageSupport"`
	ConfigDigest      digest.Digest            `json:"configDigest"`
	Sections          map[string]SectionStatus `json:"sections"`
}

type SigningStatus struct {
	KeystoreFile   string `json:"keystoreFile"`
	KeystoreExists bool   `json:"keystoreExists"`
	KeyAlias       string `json:"keyAlias"`
	StorePassword  string `json:"storePassword"`
	KeyPassword    string `json:"keyPassword"`
}

// SectionStatus reports whether the descriptor behind a section of
// a ProjectDescriptorSet was read, and why not if it was not.
type SectionStatus struct {
	Present bool   `json:"present"`
	Error   string `json:"error,omitempty"`
}

// Names of the sections reported in ProjectDescriptorSet.Sections.
const (
	SectionBasic            = "basic"
	SectionPlatformManifest = "platformManifest"
	SectionBuildScript      = "buildScript"
)

// Section is the outcome of reading one descriptor: either a Value
// or the Err that prevented reading it.
type Section[T any] struct {
	Value T
	Err   error
}

func (s Section[T]) OK() bool {
	return s.Err == nil
}

func (s Section[T]) Status() SectionStatus {
	if s.Err != nil {
		return SectionStatus{Error: s.Err.Error()}
	}

	return SectionStatus{Present: true}
}

// ValueOr returns the Value if the Section was read, else dflt.
func (s Section[T]) ValueOr(dflt T) T {
	if s.Err != nil {
		return dflt
	}

	return s.Value
}
