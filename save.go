package cpm

import (
	"context"
	"fmt"

	"github.com/frantjc/cpm/cordova"
	"github.com/frantjc/cpm/internal/cpmblob"
	"github.com/go-logr/logr"
	"github.com/opencontainers/go-digest"
	"gocloud.dev/blob"
)

type SaveOpts struct {
	// IfMatch, if set, is the digest config.xml must have
	// for the save to proceed.
	IfMatch digest.Digest
}

type SaveOpt func(*SaveOpts)

func WithIfMatch(dig digest.Digest) SaveOpt {
	return func(o *SaveOpts) {
		o.IfMatch = dig
	}
}

// Save writes updates into config.xml of the project at root. Keys
// of updates are the cordova.Field* names; others are ignored.
// Elements that an update addresses are created if missing, and
// every other node of the document is left as it was. On any
// failure config.xml is left in its prior state.
func Save(ctx context.Context, root string, updates map[string]string, opts ...SaveOpt) error {
	if root == "" {
		return ErrProjectNotLoaded
	}

	bucket, err := cpmblob.OpenProject(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDescriptorNotFound, cordova.ConfigXMLName, err)
	}
	defer bucket.Close()

	restoreMode := cpmblob.KeepMode(root, cpmblob.ConfigXMLKey())

	if err = SaveBucket(ctx, bucket, updates, opts...); err != nil {
		return err
	}

	if err = restoreMode(); err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "restoring file mode", "file", cordova.ConfigXMLName)
	}

	return nil
}

// SaveBucket is Save against a bucket rooted at a project directory.
func SaveBucket(ctx context.Context, bucket *blob.Bucket, updates map[string]string, opts ...SaveOpt) error {
	var (
		log = logr.FromContextOrDiscard(ctx)
		o   = &SaveOpts{}
	)

	for _, opt := range opts {
		opt(o)
	}

	b, config := readConfigXML(ctx, bucket)
	if !config.OK() {
		return config.Err
	}

	if o.IfMatch != "" {
		if dig := digest.FromBytes(b); dig != o.IfMatch {
			return fmt.Errorf("%w: %s is %s, not %s", ErrDescriptorChanged, cordova.ConfigXMLName, dig, o.IfMatch)
		}
	}

	for field := range updates {
		if !cordova.IsField(field) {
			log.V(1).Info("ignoring unknown field", "field", field)
		}
	}

	applied := config.Value.Update(updates)
	if len(applied) == 0 {
		return nil
	}

	out, err := config.Value.Bytes()
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWriteFailed, cordova.ConfigXMLName, err)
	}

	if err = cpmblob.Write(ctx, bucket, cpmblob.ConfigXMLKey(), out, "application/xml"); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, cordova.ConfigXMLName, err)
	}

	log.V(1).Info("saved", "file", cordova.ConfigXMLName, "fields", applied)

	return nil
}
