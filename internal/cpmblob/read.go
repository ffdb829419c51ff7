package cpmblob

import (
	"context"
	"errors"
	"io"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

func IsNotFound(err error) bool {
	return gcerrors.Code(err) == gcerrors.NotFound
}

func Exists(ctx context.Context, bucket *blob.Bucket, key string) bool {
	exists, _ := bucket.Exists(ctx, key)
	return exists
}

// HasPrefix reports whether any object exists under prefix.
func HasPrefix(ctx context.Context, bucket *blob.Bucket, prefix string) (bool, error) {
	if _, err := bucket.List(&blob.ListOptions{Prefix: prefix}).Next(ctx); errors.Is(err, io.EOF) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, nil
}
