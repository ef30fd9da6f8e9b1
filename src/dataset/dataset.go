// Package dataset loads plot input files.
//
// JSON and YAML inputs share one layout:
//
//	title: 500QPS vs 1000QPS
//	series:
//	  - attack: 500QPS
//	    label: OK
//	    points: [[0.001, 12.5], [0.002, 11.9]]
//
// CSV inputs carry one point per line under an attack,label,x,y header.
//
// JSON lines inputs (.jsonl, .ndjson) are raw vegeta results as written by
// `vegeta encode --to json`, split into OK and ERROR series per attack.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tsenart/vegeta/src/plot"
)

var (
	// ErrFormat is returned for unsupported input extensions.
	ErrFormat = errors.New("dataset: unsupported input format")
	// ErrNonFinite is returned for NaN or infinite point coordinates.
	ErrNonFinite = errors.New("non-finite value")
)

// Input is a decoded plot input.
type Input struct {
	Title  string
	Series []plot.Series
}

type rawSeries struct {
	Attack string      `json:"attack" yaml:"attack"`
	Label  string      `json:"label" yaml:"label"`
	Points [][]float64 `json:"points" yaml:"points"`
}

type rawInput struct {
	Title  string      `json:"title" yaml:"title"`
	Series []rawSeries `json:"series" yaml:"series"`
}

// Load reads the file at path, picking the decoder by extension.
func Load(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return DecodeJSON(f)
	case ".yaml", ".yml":
		return DecodeYAML(f)
	case ".csv":
		return DecodeCSV(f)
	case ".jsonl", ".ndjson":
		return DecodeResults(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
}

// DecodeJSON decodes the JSON layout.
func DecodeJSON(r io.Reader) (*Input, error) {
	var raw rawInput
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("dataset: decode json: %w", err)
	}
	return raw.input()
}

// DecodeYAML decodes the YAML layout.
func DecodeYAML(r io.Reader) (*Input, error) {
	var raw rawInput
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset: decode yaml: %w", err)
	}
	return raw.input()
}

func (raw rawInput) input() (*Input, error) {
	in := &Input{Title: raw.Title, Series: make([]plot.Series, 0, len(raw.Series))}
	for i, rs := range raw.Series {
		s := plot.Series{Attack: rs.Attack, Label: rs.Label, Points: make([]plot.Point, 0, len(rs.Points))}
		for j, p := range rs.Points {
			if len(p) != 2 {
				return nil, fmt.Errorf("dataset: series %d point %d: want [x, y], got %d values", i, j, len(p))
			}
			pt, err := point(p[0], p[1])
			if err != nil {
				return nil, fmt.Errorf("dataset: series %d point %d: %w", i, j, err)
			}
			s.Points = append(s.Points, pt)
		}
		in.Series = append(in.Series, s)
	}
	return in, nil
}

// DecodeCSV decodes attack,label,x,y lines. Series keep first-seen order.
func DecodeCSV(r io.Reader) (*Input, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Input{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("dataset: read csv header: %w", err)
	}
	if !strings.EqualFold(strings.Join(header, ","), "attack,label,x,y") {
		return nil, fmt.Errorf("dataset: csv header %q, want attack,label,x,y", strings.Join(header, ","))
	}

	in := &Input{}
	index := map[[2]string]int{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("dataset: read csv: %w", err)
		}

		x, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: x: %w", line, err)
		}
		y, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: y: %w", line, err)
		}

		pt, err := point(x, y)
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: %w", line, err)
		}

		key := [2]string{rec[0], rec[1]}
		i, ok := index[key]
		if !ok {
			i = len(in.Series)
			index[key] = i
			in.Series = append(in.Series, plot.Series{Attack: rec[0], Label: rec[1]})
		}
		in.Series[i].Points = append(in.Series[i].Points, pt)
	}
	return in, nil
}

func point(x, y float64) (plot.Point, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return plot.Point{}, fmt.Errorf("x: %w: %v", ErrNonFinite, x)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return plot.Point{}, fmt.Errorf("y: %w: %v", ErrNonFinite, y)
	}
	return plot.Point{X: x, Y: y}, nil
}
