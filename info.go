package cpm

import (
	"context"
	"fmt"

	"github.com/frantjc/cpm/internal/cpmblob"
)

type ProjectInfo struct {
	ProjectPath     string       `json:"projectPath"`
	ConfigExists    bool         `json:"configExists"`
	PlatformsExists bool         `json:"platformsExists"`
	Descriptors     *Descriptors `json:"descriptors,omitempty"`
}

// Info reports whether the project at root has a config.xml and a
// platforms tree. A platforms directory containing no files is
// reported as absent.
func Info(ctx context.Context, root string) (*ProjectInfo, error) {
	if root == "" {
		return nil, ErrProjectNotLoaded
	}

	info := &ProjectInfo{ProjectPath: root}

	bucket, err := cpmblob.OpenProject(root)
	if err != nil {
		return info, nil
	}
	defer bucket.Close()

	info.Descriptors = Locate(ctx, bucket)
	info.ConfigExists = info.Descriptors.ConfigXML.Present

	if info.PlatformsExists, err = cpmblob.HasPrefix(ctx, bucket, cpmblob.PlatformsPrefix); err != nil {
		return nil, fmt.Errorf("list %s: %w", cpmblob.PlatformsPrefix, err)
	}

	return info, nil
}
