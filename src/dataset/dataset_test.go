package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsenart/vegeta/src/plot"
)

var want = &Input{
	Title: "smoke",
	Series: []plot.Series{
		{Attack: "500QPS", Label: "OK", Points: []plot.Point{{X: 0, Y: 12.5}, {X: 1, Y: 11}}},
		{Attack: "500QPS", Label: "ERROR", Points: []plot.Point{{X: 0.5, Y: 30000}}},
	},
}

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_JSON(t *testing.T) {
	p := write(t, "in.json", `{"title":"smoke","series":[
		{"attack":"500QPS","label":"OK","points":[[0,12.5],[1,11]]},
		{"attack":"500QPS","label":"ERROR","points":[[0.5,30000]]}]}`)

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_YAML(t *testing.T) {
	p := write(t, "in.yml", `title: smoke
series:
  - attack: 500QPS
    label: OK
    points: [[0, 12.5], [1, 11]]
  - attack: 500QPS
    label: ERROR
    points: [[0.5, 30000]]
`)

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_CSV(t *testing.T) {
	p := write(t, "in.CSV", "attack,label,x,y\n500QPS,OK,0,12.5\n500QPS,ERROR,0.5,30000\n500QPS,OK,1,11\n")

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, want.Series, got.Series)
	assert.Empty(t, got.Title)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(write(t, "in.txt", "x"))
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(write(t, "bad.json", `{"series":[{"points":[[1,2,3]]}]}`))
	assert.ErrorContains(t, err, "want [x, y]")
}

func TestDecodeCSV_Errors(t *testing.T) {
	cases := map[string]string{
		"header": "a,b,c,d\n",
		"x":      "attack,label,x,y\na,OK,zero,1\n",
		"y":      "attack,label,x,y\na,OK,0,one\n",
		"fields": "attack,label,x,y\na,OK,0\n",
	}
	for name, in := range cases {
		_, err := DecodeCSV(strings.NewReader(in))
		assert.Error(t, err, name)
	}

	got, err := DecodeCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got.Series)
}

const resultLines = `{"attack":"500QPS","seq":1,"code":200,"timestamp":"2024-05-01T10:00:00.5004Z","latency":11000000,"bytes_out":0,"bytes_in":10,"error":"","body":null}
{"attack":"500QPS","seq":0,"code":200,"timestamp":"2024-05-01T10:00:00Z","latency":12500000,"bytes_out":0,"bytes_in":10,"error":"","body":null}

{"attack":"500QPS","seq":2,"code":0,"timestamp":"2024-05-01T10:00:01Z","latency":30000000000,"bytes_out":0,"bytes_in":0,"error":"timeout","body":null}
{"attack":"1000QPS","seq":0,"code":200,"timestamp":"2024-05-01T11:00:00Z","latency":900000,"bytes_out":0,"bytes_in":10,"error":"","body":null}`

func TestLoad_Results(t *testing.T) {
	got, err := Load(write(t, "results.jsonl", resultLines))
	require.NoError(t, err)

	assert.Empty(t, got.Title)
	assert.Equal(t, []plot.Series{
		{Attack: "500QPS", Label: "OK", Points: []plot.Point{{X: 0, Y: 12.5}, {X: 0.5, Y: 11}}},
		{Attack: "500QPS", Label: "ERROR", Points: []plot.Point{{X: 1, Y: 30000}}},
		{Attack: "1000QPS", Label: "OK", Points: []plot.Point{{X: 0, Y: 0.9}}},
	}, got.Series)
}

func TestDecodeResults_Errors(t *testing.T) {
	_, err := DecodeResults(strings.NewReader("{\"seq\":0}\nnot json\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = DecodeResults(strings.NewReader(
		`{"seq":0,"timestamp":"2024-05-01T10:00:01Z"}` + "\n" +
			`{"seq":1,"timestamp":"2024-05-01T10:00:00Z"}`))
	assert.ErrorContains(t, err, "precedes the first request")

	got, err := DecodeResults(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got.Series)
}

func TestDecode_RejectsNonFinite(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("attack,label,x,y\na,OK,0,1\na,OK,1,Inf\n"))
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.ErrorContains(t, err, "line 3")

	_, err = DecodeCSV(strings.NewReader("attack,label,x,y\na,OK,NaN,1\n"))
	assert.ErrorIs(t, err, ErrNonFinite)

	_, err = DecodeYAML(strings.NewReader("series:\n  - attack: a\n    label: OK\n    points: [[0, 1], [1, .inf]]\n"))
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.ErrorContains(t, err, "series 0 point 1")
}
