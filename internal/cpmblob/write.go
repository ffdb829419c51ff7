package cpmblob

import (
	"context"

	"gocloud.dev/blob"
)

// Write replaces the object at key with p. If any part of the write
// fails, the write is aborted and the previous object is left as-is.
func Write(ctx context.Context, bucket *blob.Bucket, key string, p []byte, contentType string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return err
	}

	if _, err = w.Write(p); err != nil {
		cancel()
		_ = w.Close()
		return err
	}

	return w.Close()
}
