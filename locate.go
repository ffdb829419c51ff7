package cpm

import (
	"context"
	"path/filepath"

	"github.com/frantjc/cpm/internal/cpmblob"
	"gocloud.dev/blob"
)

// Descriptors holds the path of each descriptor file of a
// project, relative to its root, and whether it is present.
type Descriptors struct {
	ConfigXML       Descriptor `json:"configXml"`
	AndroidManifest Descriptor `json:"androidManifest"`
	BuildGradle     Descriptor `json:"buildGradle"`
	Keystore        Descriptor `json:"keystore"`
}

type Descriptor struct {
	Path    string `json:"path"`
	Present bool   `json:"present"`
}

// Locate resolves the expected descriptor paths relative to
// the root of bucket and reports which of them are present.
func Locate(ctx context.Context, bucket *blob.Bucket) *Descriptors {
	locate := func(key string) Descriptor {
		return Descriptor{
			Path:    filepath.FromSlash(key),
			Present: cpmblob.Exists(ctx, bucket, key),
		}
	}

	return &Descriptors{
		ConfigXML:       locate(cpmblob.ConfigXMLKey()),
		AndroidManifest: locate(cpmblob.AndroidManifestKey()),
		BuildGradle:     locate(cpmblob.BuildGradleKey()),
		Keystore:        locate(cpmblob.KeystoreKey()),
	}
}
