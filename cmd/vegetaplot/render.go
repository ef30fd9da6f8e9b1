package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tsenart/vegeta/src/config"
	"github.com/tsenart/vegeta/src/dataset"
	"github.com/tsenart/vegeta/src/export"
	"github.com/tsenart/vegeta/src/logger"
	"github.com/tsenart/vegeta/src/plot"
)

type renderOpts struct {
	configFile string
	parquet    string
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Render an input file (.json, .yaml, .csv, .jsonl) to a PNG chart",
		Long: `Render reads latency series from the input file, draws them as an
overlaid line chart and saves the chart as a PNG in --out-dir.

Settings come from --config (or ./vegetaplot.yaml), VEGETAPLOT_* environment
variables and flags, flags taking precedence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], cfg, opts)
		},
	}

	d := config.Defaults()
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Path to a YAML config file (optional)")
	cmd.Flags().StringVar(&opts.parquet, "parquet", "", "Also write the pivoted chart data to this Parquet file")
	cmd.Flags().String("out-dir", d.OutDir, "Directory the PNG is saved to")
	cmd.Flags().String("filename", d.Filename, "PNG file name (default "+export.DefaultFilename+")")
	cmd.Flags().String("title", d.Title, "Chart title")
	cmd.Flags().Int("width", d.Width, "Chart width in pixels (min 800)")
	cmd.Flags().Int("downsample", d.Downsample, "Max points per series, 0 disables downsampling")
	cmd.Flags().Bool("log-scale", d.LogScale, "Plot latency on a logarithmic axis")
	cmd.Flags().String("log-level", d.LogLevel, "Log level (debug, info, warn, error)")

	return cmd
}

func runRender(ctx context.Context, input string, cfg config.Config, opts renderOpts) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger.SetLogLevel(cfg.LogLevel)

	in, err := dataset.Load(input)
	if err != nil {
		return err
	}

	title := cfg.Title
	if in.Title != "" && cfg.Title == config.Defaults().Title {
		title = in.Title
	}

	ch := plot.New(plot.Title(title), plot.Size(cfg.Width), plot.DownsampleTo(cfg.Downsample), plot.LogScale(cfg.LogScale))
	for _, s := range in.Series {
		ch.Add(s)
	}
	// A failed render still leaves a notice canvas worth saving.
	if err := ch.Render(); err != nil {
		logger.Warnf("render %s: %v", input, err)
	}

	if opts.parquet != "" {
		if err := writeParquet(opts.parquet, ch); err != nil {
			return err
		}
	}

	var (
		mu       sync.Mutex
		failures []error
	)
	blobs := export.NewMemoryBlobs()
	e := export.New(blobs, &export.DirTrigger{Dir: cfg.OutDir, Blobs: blobs},
		export.WithContext(ctx),
		export.OnError(func(err error) {
			mu.Lock()
			failures = append(failures, err)
			mu.Unlock()
		}),
	)
	e.ExportPNG(ch, cfg.Filename)
	e.Wait()

	if len(failures) > 0 {
		return errors.Join(failures...)
	}

	name := cfg.Filename
	if name == "" {
		name = export.DefaultFilename
	}
	logger.Infof("wrote %s", filepath.Join(cfg.OutDir, name))
	return nil
}

func writeParquet(path string, ch *plot.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	labels, cols := ch.Columns()
	if err := plot.WriteParquet(f, labels, cols); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
