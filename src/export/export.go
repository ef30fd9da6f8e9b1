// Package export saves rendered charts as PNG files.
//
// The flow mirrors a browser download: the chart surface is encoded to a PNG
// blob, the blob gets a temporary object URL, an anchor pointing at that URL
// is clicked to start the download, and the URL is revoked. Each step goes
// through an injected capability so the flow runs headless, in a desktop
// window or against a directory.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tsenart/vegeta/src/logger"
)

// DefaultFilename is used when ExportPNG is given an empty filename.
const DefaultFilename = "vegeta-plot.png"

// Surface is a rendered drawing surface whose pixels can be encoded as PNG.
type Surface interface {
	EncodePNG(w io.Writer) error
}

// Chart is anything owning a rendered surface. Canvas returns nil while
// nothing has been drawn.
type Chart interface {
	Canvas() Surface
}

// Anchor is a download link: Href is an object URL, Download the file name.
type Anchor struct {
	Href     string
	Download string
}

// Trigger starts the download an anchor describes.
type Trigger interface {
	Click(ctx context.Context, a Anchor) error
}

// Exporter runs PNG exports in the background.
type Exporter struct {
	ctx     context.Context
	blobs   BlobStore
	trigger Trigger
	onError func(error)
	wg      sync.WaitGroup
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithContext sets the context handed to the Trigger. Defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(e *Exporter) { e.ctx = ctx }
}

// OnError registers fn to receive export failures. Failures are logged either way.
func OnError(fn func(error)) Option {
	return func(e *Exporter) { e.onError = fn }
}

// New returns an Exporter storing blobs in blobs and downloading through trigger.
func New(blobs BlobStore, trigger Trigger, opts ...Option) *Exporter {
	e := &Exporter{ctx: context.Background(), blobs: blobs, trigger: trigger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportPNG schedules a PNG download of c's canvas under filename, or
// DefaultFilename when empty, and returns without waiting for it.
// A chart without a canvas is silently ignored.
func (e *Exporter) ExportPNG(c Chart, filename string) {
	if c == nil {
		return
	}
	s := c.Canvas()
	if s == nil {
		logger.Debugf("export: no canvas to export")
		return
	}
	if filename == "" {
		filename = DefaultFilename
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := e.export(s, filename); err != nil {
			logger.Warnf("export %s: %v", filename, err)
			if e.onError != nil {
				e.onError(err)
			}
		}
	}()
}

// Wait blocks until every scheduled export has finished.
func (e *Exporter) Wait() { e.wg.Wait() }

func (e *Exporter) export(s Surface, filename string) error {
	defer logger.TimeTrack(time.Now(), "export "+filename)

	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	// The URL only exists once the blob does, and never outlives the click.
	url, err := e.blobs.CreateObjectURL(Blob{Type: "image/png", Data: buf.Bytes()})
	if err != nil {
		return fmt.Errorf("create object url: %w", err)
	}
	defer e.blobs.RevokeObjectURL(url)

	if err := e.trigger.Click(e.ctx, Anchor{Href: url, Download: filename}); err != nil {
		return fmt.Errorf("download: %w", err)
	}
	logger.Infof("exported %s (%d bytes)", filename, buf.Len())
	return nil
}
