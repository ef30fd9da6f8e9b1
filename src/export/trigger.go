package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrFilename is returned for download names that are empty or not a plain file name.
	ErrFilename = errors.New("export: invalid download filename")
	// ErrObjectURL is returned when an anchor points at an unknown or revoked URL.
	ErrObjectURL = errors.New("export: unknown object url")
)

// DirTrigger "downloads" anchors into a directory, resolving their hrefs
// through Blobs.
type DirTrigger struct {
	Dir   string
	Blobs BlobStore
}

func (t *DirTrigger) Click(ctx context.Context, a Anchor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := a.Download
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrFilename, name)
	}
	b, ok := t.Blobs.Open(a.Href)
	if !ok {
		return fmt.Errorf("%w: %s", ErrObjectURL, a.Href)
	}
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	path := filepath.Join(t.Dir, name)
	if err := os.WriteFile(path, b.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
