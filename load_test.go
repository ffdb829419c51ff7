package cpm_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/frantjc/cpm"
	"github.com/frantjc/cpm/android"
	"github.com/frantjc/cpm/cordova"
	"github.com/frantjc/cpm/internal/cpmblob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

const (
	testProject = "testdata/project"
)

func newBucket(t *testing.T, files map[string]string) *blob.Bucket {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() {
		_ = bucket.Close()
	})

	for key, content := range files {
		require.NoError(t, bucket.WriteAll(context.Background(), key, []byte(content), nil))
	}

	return bucket
}

func copyProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(testProject)))

	return dir
}

func TestLoad(t *testing.T) {
	t.Parallel()

	project, err := cpm.Load(context.Background(), testProject)
	require.NoError(t, err)

	assert.Equal(t, cordova.WidgetConfig{
		ID:          "com.example.app",
		Version:     "1.2.3",
		VersionCode: "10203",
		Name:        "Example",
		Description: "An example Cordova application.",
		Author:      "Example Team",
		AuthorEmail: "dev@example.com",
		AuthorURL:   "https://example.com",
		Content:     "main.html",
		Orientation: "landscape",
	}, project.Basic)

	assert.Equal(t, "com.example.app", project.PlatformManifest.PackageName)
	assert.Equal(t, "1.2.3", project.PlatformManifest.VersionName)
	assert.Len(t, project.PlatformManifest.Permissions, 4)

	assert.Equal(t, android.BuildGradle{
		VersionCode:       "10203",
		ApplicationID:     "com.example.app",
		MinSDKVersion:     "24",
		TargetSDKVersion:  "34",
		CompileSDKVersion: "34",
		KeyAlias:          "release",
	}, project.BuildScript)

	assert.Equal(t, map[string]string{
		"internet":     "android.permission.INTERNET",
		"camera":       "com.example.vendor.CAMERA",
		"record_audio": "android.permission.RECORD_AUDIO",
	}, project.Permissions)

	assert.Equal(t, cpm.SigningStatus{
		KeystoreFile:   "package.keystore",
		KeystoreExists: true,
		KeyAlias:       "release",
		StorePassword:  cpm.RedactedSecret,
		KeyPassword:    cpm.RedactedSecret,
	}, project.Signing)

	assert.Equal(t, map[string]string{
		"36x36": "res/icon/android/ldpi.png",
		"48x48": "res/icon/android/mdpi-alt.png",
	}, project.Icons)

	assert.Equal(t, android.MemoryPageStatus{
		Status:            android.MemoryPageEnabled,
		ExtractNativeLibs: "false",
	}, project.MemoryPageSupport)

	assert.NotEmpty(t, project.ConfigDigest)

	for _, section := range []string{cpm.SectionBasic, cpm.SectionPlatformManifest, cpm.SectionBuildScript} {
		assert.Equal(t, cpm.SectionStatus{Present: true}, project.Sections[section], section)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	const config = `<widget id="com.example.app" version="1.0.0"><name>Demo</name></widget>`

	for _, content := range []string{config, config + "\n", "<?xml version='1.0' encoding='utf-8'?>\n" + config + "\n<!-- end -->\n"} {
		project, err := cpm.LoadBucket(context.Background(), newBucket(t, map[string]string{
			cpmblob.ConfigXMLKey(): content,
		}))
		require.NoError(t, err)

		assert.Equal(t, "com.example.app", project.Basic.ID)
		assert.Equal(t, "1.0.0", project.Basic.Version)
		assert.Equal(t, "Demo", project.Basic.Name)
		assert.Equal(t, "portrait", project.Basic.Orientation)
		assert.Equal(t, "index.html", project.Basic.Content)
	}
}

func TestLoadNoAndroidManifest(t *testing.T) {
	t.Parallel()

	project, err := cpm.LoadBucket(context.Background(), newBucket(t, map[string]string{
		cpmblob.ConfigXMLKey(): `<widget id="com.example.app" version="1.0.0"/>`,
	}))
	require.NoError(t, err)

	assert.Empty(t, project.Permissions)
	assert.Equal(t, android.MemoryPageStatus{Status: android.MemoryPageUnknown}, project.MemoryPageSupport)
	assert.Equal(t, android.ManifestConfig{Permissions: []string{}}, project.PlatformManifest)
	assert.Equal(t, android.BuildGradle{}, project.BuildScript)
	assert.False(t, project.Sections[cpm.SectionPlatformManifest].Present)
	assert.NotEmpty(t, project.Sections[cpm.SectionPlatformManifest].Error)
	assert.False(t, project.Sections[cpm.SectionBuildScript].Present)
}

func TestLoadMalformedAndroidManifest(t *testing.T) {
	t.Parallel()

	for name, manifest := range map[string]string{
		"Malformed":     `<manifest><application></manifest>`,
		"NoApplication": `<manifest package="com.example.app"><uses-permission xmlns:android="http://schemas.android.com/apk/res/android" android:name="android.permission.CAMERA"/></manifest>`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			project, err := cpm.LoadBucket(context.Background(), newBucket(t, map[string]string{
				cpmblob.ConfigXMLKey():       `<widget id="com.example.app" version="1.0.0"/>`,
				cpmblob.AndroidManifestKey(): manifest,
			}))
			require.NoError(t, err)

			assert.Empty(t, project.Permissions)
			assert.Empty(t, project.PlatformManifest.PackageName)
			assert.Equal(t, android.MemoryPageStatus{Status: android.MemoryPageParseFailed}, project.MemoryPageSupport)
			assert.Contains(t, project.Sections[cpm.SectionPlatformManifest].Error, cpm.ErrDescriptorMalformed.Error())
		})
	}
}

func TestLoadMemoryPageDisabled(t *testing.T) {
	t.Parallel()

	for extractNativeLibs, expected := range map[string]android.MemoryPageStatus{
		`android:extractNativeLibs="true"`: {Status: android.MemoryPageDisabled, ExtractNativeLibs: "true"},
		``:                                 {Status: android.MemoryPageDisabled, ExtractNativeLibs: "true"},
	} {
		project, err := cpm.LoadBucket(context.Background(), newBucket(t, map[string]string{
			cpmblob.ConfigXMLKey():       `<widget/>`,
			cpmblob.AndroidManifestKey(): `<manifest xmlns:android="http://schemas.android.com/apk/res/android"><application ` + extractNativeLibs + `/></manifest>`,
		}))
		require.NoError(t, err)

		assert.Equal(t, expected, project.MemoryPageSupport)
	}
}

func TestLoadNoKeystore(t *testing.T) {
	t.Parallel()

	project, err := cpm.LoadBucket(context.Background(), newBucket(t, map[string]string{
		cpmblob.ConfigXMLKey(): `<widget/>`,
	}))
	require.NoError(t, err)

	assert.Equal(t, cpm.SigningStatus{
		KeystoreFile:   "package.keystore",
		KeystoreExists: false,
		StorePassword:  cpm.RedactedSecret,
		KeyPassword:    cpm.RedactedSecret,
	}, project.Signing)
}

func TestLoadInvalidProject(t *testing.T) {
	t.Parallel()

	_, err := cpm.LoadBucket(context.Background(), newBucket(t, map[string]string{
		cpmblob.AndroidManifestKey(): `<manifest><application/></manifest>`,
	}))
	assert.ErrorIs(t, err, cpm.ErrInvalidProject)
	assert.ErrorIs(t, err, cpm.ErrDescriptorNotFound)

	_, err = cpm.LoadBucket(context.Background(), newBucket(t, map[string]string{
		cpmblob.ConfigXMLKey(): `<widget><name>Demo</widget>`,
	}))
	assert.ErrorIs(t, err, cpm.ErrInvalidProject)
	assert.ErrorIs(t, err, cpm.ErrDescriptorMalformed)

	_, err = cpm.Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, cpm.ErrInvalidProject)
}

func TestLoadIsNotCached(t *testing.T) {
	t.Parallel()

	var (
		ctx    = context.Background()
		bucket = newBucket(t, map[string]string{
			cpmblob.ConfigXMLKey(): `<widget><name>Before</name></widget>`,
		})
	)

	before, err := cpm.LoadBucket(ctx, bucket)
	require.NoError(t, err)

	require.NoError(t, bucket.WriteAll(ctx, cpmblob.ConfigXMLKey(), []byte(`<widget><name>After</name></widget>`), nil))

	after, err := cpm.LoadBucket(ctx, bucket)
	require.NoError(t, err)

	assert.Equal(t, "Before", before.Basic.Name)
	assert.Equal(t, "After", after.Basic.Name)
	assert.NotEqual(t, before.ConfigDigest, after.ConfigDigest)
}
