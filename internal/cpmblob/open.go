package cpmblob

import (
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
)

// OpenProject opens a bucket rooted at the project directory dir.
// It fails if dir does not exist. Writes are staged in a temporary
// file next to their destination and renamed into place on Close,
// and no metadata sidecar files are written.
func OpenProject(dir string) (*blob.Bucket, error) {
	return fileblob.OpenBucket(dir, &fileblob.Options{
		NoTempDir: true,
		Metadata:  fileblob.MetadataDontWrite,
	})
}
