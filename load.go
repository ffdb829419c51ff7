package cpm

import (
	"context"
	"errors"
	"fmt"

	"github.com/frantjc/cpm/android"
	"github.com/frantjc/cpm/cordova"
	"github.com/frantjc/cpm/internal/cpmblob"
	"github.com/go-logr/logr"
	"github.com/opencontainers/go-digest"
	"gocloud.dev/blob"
	"golang.org/x/sync/errgroup"
)

// Load reads the descriptors of the Cordova project at root. The
// project is valid if and only if it has a parseable config.xml;
// otherwise Load fails with ErrInvalidProject. Every other descriptor
// that is missing or malformed only degrades its own sections.
func Load(ctx context.Context, root string) (*ProjectDescriptorSet, error) {
	bucket, err := cpmblob.OpenProject(root)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrInvalidProject, root, err)
	}
	defer bucket.Close()

	return LoadBucket(ctx, bucket)
}

// LoadBucket is Load against a bucket rooted at a project directory.
func LoadBucket(ctx context.Context, bucket *blob.Bucket) (*ProjectDescriptorSet, error) {
	var (
		log         = logr.FromContextOrDiscard(ctx)
		descriptors = Locate(ctx, bucket)
	)

	if !descriptors.ConfigXML.Present {
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidProject, ErrDescriptorNotFound, cpmblob.ConfigXMLKey())
	}

	var (
		eg, egctx    = errgroup.WithContext(ctx)
		config       Section[*cordova.ConfigXML]
		configDigest digest.Digest
		manifest     Section[*android.ManifestConfig]
		buildGradle  Section[*android.BuildGradle]
	)

	eg.Go(func() error {
		var b []byte
		b, config = readConfigXML(egctx, bucket)
		if config.OK() {
			configDigest = digest.FromBytes(b)
		}
		return nil
	})

	eg.Go(func() error {
		manifest = readAndroidManifest(egctx, bucket)
		return nil
	})

	eg.Go(func() error {
		buildGradle = readBuildGradle(egctx, bucket)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if !config.OK() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProject, config.Err)
	}

	for name, err := range map[string]error{
		SectionPlatformManifest: manifest.Err,
		SectionBuildScript:      buildGradle.Err,
	} {
		if err != nil {
			log.V(1).Info("section degraded to default", "section", name, "cause", err.Error())
		}
	}

	var (
		manifestConfig = manifest.ValueOr(&android.ManifestConfig{Permissions: []string{}})
		buildConfig    = buildGradle.ValueOr(&android.BuildGradle{})
	)

	return &ProjectDescriptorSet{
		Basic:             *config.Value.Widget(),
		PlatformManifest:  *manifestConfig,
		BuildScript:       *buildConfig,
		Permissions:       android.PermissionKeys(manifestConfig.Permissions),
		Signing:           signingStatus(descriptors.Keystore.Present, buildConfig),
		Icons:             config.Value.Icons(),
		MemoryPageSupport: memoryPageStatus(manifest),
		ConfigDigest:      configDigest,
		Sections: map[string]SectionStatus{
			SectionBasic:            config.Status(),
			SectionPlatformManifest: manifest.Status(),
			SectionBuildScript:      buildGradle.Status(),
		},
	}, nil
}

func readDescriptor(ctx context.Context, bucket *blob.Bucket, key string) ([]byte, error) {
	b, err := bucket.ReadAll(ctx, key)
	if cpmblob.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrDescriptorNotFound, key)
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	return b, nil
}

func readConfigXML(ctx context.Context, bucket *blob.Bucket) ([]byte, Section[*cordova.ConfigXML]) {
	key := cpmblob.ConfigXMLKey()

	b, err := readDescriptor(ctx, bucket, key)
	if err != nil {
		return nil, Section[*cordova.ConfigXML]{Err: err}
	}

	config, err := cordova.ParseConfigXML(b)
	if err != nil {
		return nil, Section[*cordova.ConfigXML]{Err: fmt.Errorf("%w: %s: %w", ErrDescriptorMalformed, key, err)}
	}

	return b, Section[*cordova.ConfigXML]{Value: config}
}

func readAndroidManifest(ctx context.Context, bucket *blob.Bucket) Section[*android.ManifestConfig] {
	key := cpmblob.AndroidManifestKey()

	b, err := readDescriptor(ctx, bucket, key)
	if err != nil {
		return Section[*android.ManifestConfig]{Err: err}
	}

	manifest, err := android.ParseManifest(b)
	if err != nil {
		return Section[*android.ManifestConfig]{Err: fmt.Errorf("%w: %s: %w", ErrDescriptorMalformed, key, err)}
	}

	return Section[*android.ManifestConfig]{Value: manifest}
}

func readBuildGradle(ctx context.Context, bucket *blob.Bucket) Section[*android.BuildGradle] {
	b, err := readDescriptor(ctx, bucket, cpmblob.BuildGradleKey())
	if err != nil {
		return Section[*android.BuildGradle]{Err: err}
	}

	return Section[*android.BuildGradle]{Value: android.ParseBuildGradle(b)}
}

func signingStatus(keystoreExists bool, buildGradle *android.BuildGradle) SigningStatus {
	return SigningStatus{
		KeystoreFile:   cpmblob.KeystoreKey(),
		KeystoreExists: keystoreExists,
		KeyAlias:       buildGradle.KeyAlias,
		StorePassword:  RedactedSecret,
		KeyPassword:    RedactedSecret,
	}
}

func memoryPageStatus(manifest Section[*android.ManifestConfig]) android.MemoryPageStatus {
	switch {
	case manifest.OK():
		return android.ClassifyMemoryPage(manifest.Value.ExtractNativeLibs)
	case errors.Is(manifest.Err, ErrDescriptorNotFound):
		return android.MemoryPageStatus{Status: android.MemoryPageUnknown}
	default:
		return android.MemoryPageStatus{Status: android.MemoryPageParseFailed}
	}
}
