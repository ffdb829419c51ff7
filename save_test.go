package cpm_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/frantjc/cpm"
	"github.com/frantjc/cpm/cordova"
	"github.com/frantjc/cpm/internal/cpmblob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveNoop(t *testing.T) {
	t.Parallel()

	var (
		ctx  = context.Background()
		dir  = copyProject(t)
		name = filepath.Join(dir, cordova.ConfigXMLName)
	)

	before, err := os.ReadFile(name)
	require.NoError(t, err)

	_, err = cpm.Load(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, cpm.Save(ctx, dir, map[string]string{}))

	after, err := os.ReadFile(name)
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestSaveIsolation(t *testing.T) {
	t.Parallel()

	for field, value := range map[string]string{
		cordova.FieldID:          "com.example.other",
		cordova.FieldVersion:     "2.0.0",
		cordova.FieldVersionCode: "20000",
		cordova.FieldName:        "Other",
		cordova.FieldDescription: "Another description.",
		cordova.FieldAuthor:      "Someone Else",
		cordova.FieldContent:     "other.html",
		cordova.FieldOrientation: "portrait",
	} {
		t.Run(field, func(t *testing.T) {
			t.Parallel()

			var (
				ctx = context.Background()
				dir = copyProject(t)
			)

			before, err := cpm.Load(ctx, dir)
			require.NoError(t, err)

			require.NoError(t, cpm.Save(ctx, dir, map[string]string{field: value}))

			after, err := cpm.Load(ctx, dir)
			require.NoError(t, err)

			expected := before.Basic
			switch field {
			case cordova.FieldID:
				expected.ID = value
			case cordova.FieldVersion:
				expected.Version = value
			case cordova.FieldVersionCode:
				expected.VersionCode = value
			case cordova.FieldName:
				expected.Name = value
			case cordova.FieldDescription:
				expected.Description = value
			case cordova.FieldAuthor:
				expected.Author = value
			case cordova.FieldContent:
				expected.Content = value
			case cordova.FieldOrientation:
				expected.Orientation = value
			}

			assert.Equal(t, expected, after.Basic)
			assert.Equal(t, before.Icons, after.Icons)
			assert.Equal(t, before.PlatformManifest, after.PlatformManifest)
			assert.Equal(t, before.BuildScript, after.BuildScript)
			assert.Equal(t, before.Permissions, after.Permissions)
			assert.Equal(t, before.Signing, after.Signing)
			assert.Equal(t, before.MemoryPageSupport, after.MemoryPageSupport)
			assert.NotEqual(t, before.ConfigDigest, after.ConfigDigest)
		})
	}
}

func TestSaveOrientationCreatesPlatform(t *testing.T) {
	t.Parallel()

	var (
		ctx    = context.Background()
		bucket = newBucket(t, map[string]string{
			cpmblob.ConfigXMLKey(): `<?xml version='1.0' encoding='utf-8'?>
<widget id="com.example.app" version="1.0.0"><name>Demo</name></widget>`,
		})
	)

	require.NoError(t, cpm.SaveBucket(ctx, bucket, map[string]string{cordova.FieldOrientation: "landscape"}))

	b, err := bucket.ReadAll(ctx, cpmblob.ConfigXMLKey())
	require.NoError(t, err)

	assert.Equal(t, `<?xml version='1.0' encoding='utf-8'?>
<widget id="com.example.app" version="1.0.0"><name>Demo</name><platform name="android"><preference name="Orientation" value="landscape"/></platform></widget>`, string(b))
}

func TestSaveProjectNotLoaded(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, cpm.Save(context.Background(), "", map[string]string{cordova.FieldName: "Demo"}), cpm.ErrProjectNotLoaded)
}

func TestSaveDescriptorErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	err := cpm.SaveBucket(ctx, newBucket(t, nil), map[string]string{cordova.FieldName: "Demo"})
	assert.ErrorIs(t, err, cpm.ErrDescriptorNotFound)

	err = cpm.SaveBucket(ctx, newBucket(t, map[string]string{
		cpmblob.ConfigXMLKey(): `<widget><name>Demo</widget>`,
	}), map[string]string{cordova.FieldName: "Demo"})
	assert.ErrorIs(t, err, cpm.ErrDescriptorMalformed)

	err = cpm.Save(ctx, filepath.Join(t.TempDir(), "missing"), map[string]string{cordova.FieldName: "Demo"})
	assert.ErrorIs(t, err, cpm.ErrDescriptorNotFound)
}

func TestSaveIfMatch(t *testing.T) {
	t.Parallel()

	var (
		ctx    = context.Background()
		bucket = newBucket(t, map[string]string{
			cpmblob.ConfigXMLKey(): `<widget><name>Demo</name></widget>`,
		})
	)

	project, err := cpm.LoadBucket(ctx, bucket)
	require.NoError(t, err)

	require.NoError(t, cpm.SaveBucket(ctx, bucket, map[string]string{cordova.FieldName: "First"}, cpm.WithIfMatch(project.ConfigDigest)))

	err = cpm.SaveBucket(ctx, bucket, map[string]string{cordova.FieldName: "Second"}, cpm.WithIfMatch(project.ConfigDigest))
	assert.ErrorIs(t, err, cpm.ErrDescriptorChanged)

	project, err = cpm.LoadBucket(ctx, bucket)
	require.NoError(t, err)
	assert.Equal(t, "First", project.Basic.Name)
}

func TestSaveWriteFailed(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	var (
		ctx  = context.Background()
		dir  = copyProject(t)
		name = filepath.Join(dir, cordova.ConfigXMLName)
	)

	before, err := os.ReadFile(name)
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() {
		_ = os.Chmod(dir, 0o755)
	})

	err = cpm.Save(ctx, dir, map[string]string{cordova.FieldName: "Other"})
	assert.ErrorIs(t, err, cpm.ErrWriteFailed)

	after, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSaveKeepsFileMode(t *testing.T) {
	t.Parallel()

	var (
		ctx  = context.Background()
		dir  = copyProject(t)
		name = filepath.Join(dir, cordova.ConfigXMLName)
	)

	require.NoError(t, os.Chmod(name, 0o600))

	require.NoError(t, cpm.Save(ctx, dir, map[string]string{cordova.FieldName: "Other"}))

	fi, err := os.Stat(name)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	project, err := cpm.Load(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "Other", project.Basic.Name)
}
