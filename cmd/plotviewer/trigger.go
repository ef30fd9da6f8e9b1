package main

import (
	"context"
	"fmt"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/tsenart/vegeta/src/export"
	"github.com/tsenart/vegeta/src/logger"
)

// saveDialogTrigger downloads anchors by asking the user where to save them.
// The blob is copied before Click returns since its URL is revoked right after.
type saveDialogTrigger struct {
	blobs export.BlobStore
	show  func(name string, data []byte)
}

func newSaveDialogTrigger(w fyne.Window, blobs export.BlobStore) *saveDialogTrigger {
	return &saveDialogTrigger{
		blobs: blobs,
		show: func(name string, data []byte) {
			fyne.Do(func() {
				fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
					if err != nil || wc == nil {
						return
					}
					defer wc.Close()
					if _, err := wc.Write(data); err != nil {
						logger.Errorf("save %s: %v", wc.URI(), err)
						dialog.ShowError(err, w)
					}
				}, w)
				fs.SetFileName(name)
				fs.Show()
			})
		},
	}
}

func (t *saveDialogTrigger) Click(ctx context.Context, a export.Anchor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, ok := t.blobs.Open(a.Href)
	if !ok {
		return fmt.Errorf("%w: %s", export.ErrObjectURL, a.Href)
	}
	data := make([]byte, len(b.Data))
	copy(data, b.Data)
	t.show(a.Download, data)
	return nil
}
