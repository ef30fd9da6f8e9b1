package dataset

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tsenart/vegeta/src/plot"
)

// result holds the fields of a vegeta result the plot needs.
type result struct {
	Attack    string    `json:"attack"`
	Seq       uint64    `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Latency   int64     `json:"latency"` // nanoseconds
	Error     string    `json:"error"`
}

// DecodeResults decodes vegeta results, one JSON object per line. Each
// attack is split into series by plot.ErrorLabel. X is the time elapsed since
// the attack's first request (lowest seq) in seconds, at millisecond
// precision, and Y the latency in milliseconds.
func DecodeResults(r io.Reader) (*Input, error) {
	var attacks []string
	grouped := map[string][]result{}

	br := bufio.NewReader(r)
	for line := 1; ; line++ {
		b, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset: read results: %w", err)
		}
		if b = bytes.TrimSpace(b); len(b) > 0 {
			var res result
			if uerr := json.Unmarshal(b, &res); uerr != nil {
				return nil, fmt.Errorf("dataset: line %d: decode result: %w", line, uerr)
			}
			if _, ok := grouped[res.Attack]; !ok {
				attacks = append(attacks, res.Attack)
			}
			grouped[res.Attack] = append(grouped[res.Attack], res)
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	in := &Input{}
	index := map[[2]string]int{}
	for _, attack := range attacks {
		results := grouped[attack]
		sort.SliceStable(results, func(i, j int) bool { return results[i].Seq < results[j].Seq })

		began := results[0].Timestamp
		for _, res := range results {
			elapsed := res.Timestamp.Sub(began)
			if elapsed < 0 {
				return nil, fmt.Errorf("dataset: attack %q seq %d: timestamp %s precedes the first request", attack, res.Seq, res.Timestamp.Format(time.RFC3339Nano))
			}

			label := plot.ErrorLabel(res.Error)
			key := [2]string{attack, label}
			i, ok := index[key]
			if !ok {
				i = len(in.Series)
				index[key] = i
				in.Series = append(in.Series, plot.Series{Attack: attack, Label: label})
			}
			in.Series[i].Points = append(in.Series[i].Points, plot.Point{
				X: elapsed.Truncate(time.Millisecond).Seconds(),
				Y: float64(res.Latency) / 1e6,
			})
		}
	}
	return in, nil
}
