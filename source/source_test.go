package source_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/xxformat/source"
)

// writeTemp creates a temporary file with content and
// returns its path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(
		tb,
		os.WriteFile(pa, []byte(content), 0o600),
	)

	return pa
}

func TestFromStrings(t *testing.T) {
	t.Parallel()

	ba := source.FromStrings([]string{"a", "b"})

	assert.Equal(t, source.Strings, ba.Mode)
	assert.Equal(t, []string{"input"}, ba.Columns)
	assert.Equal(
		t,
		[]source.Record{{"input": "a"}, {"input": "b"}},
		ba.Records,
	)
}

func TestReadLines_strips_comments_and_blanks(t *testing.T) {
	t.Parallel()

	got, err := source.ReadLines(strings.NewReader(
		"alpha\n# full comment\n\n  beta  # trailing\r\n   \ngamma",
	))

	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, got)
}

func TestReadCSV_normalizes_header(t *testing.T) {
	t.Parallel()

	ba, err := source.ReadCSV(strings.NewReader(
		"\ufeff country code , capital_city\nDE,Berlin\nFR,Paris\n",
	))

	require.NoError(t, err)
	assert.Equal(t, source.CSV, ba.Mode)
	assert.Equal(
		t,
		[]string{"country_code", "capital_city"},
		ba.Columns,
	)
	assert.Equal(
		t,
		[]source.Record{
			{"country_code": "DE", "capital_city": "Berlin"},
			{"country_code": "FR", "capital_city": "Paris"},
		},
		ba.Records,
	)
}

func TestReadCSV_ragged_rows(t *testing.T) {
	t.Parallel()

	ba, err := source.ReadCSV(strings.NewReader(
		"a,b\n1\n2,3,4\n",
	))

	require.NoError(t, err)
	assert.Equal(
		t,
		[]source.Record{
			{"a": "1", "b": ""},
			{"a": "2", "b": "3"},
		},
		ba.Records,
	)
}

func TestReadCSV_empty(t *testing.T) {
	t.Parallel()

	ba, err := source.ReadCSV(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, ba.Columns)
	assert.Empty(t, ba.Records)
}

func TestReadCSV_malformed(t *testing.T) {
	t.Parallel()

	_, err := source.ReadCSV(strings.NewReader("a\n\"open\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading csv")
}

func TestReadJSON(t *testing.T) {
	t.Parallel()

	ba, err := source.ReadJSON(strings.NewReader(`[
		{"name": "x", "count": 12345678901234567890, "ok": true},
		{"name": null, "tags": ["a"]}
	]`))

	require.NoError(t, err)
	assert.Equal(t, source.JSON, ba.Mode)
	assert.Equal(
		t,
		[]string{"count", "name", "ok", "tags"},
		ba.Columns,
	)
	assert.Equal(
		t,
		[]source.Record{
			{
				"name":  "x",
				"count": "12345678901234567890",
				"ok":    "true",
				"tags":  "",
			},
			{
				"name":  "",
				"count": "",
				"ok":    "",
				"tags":  `["a"]`,
			},
		},
		ba.Records,
	)
}

func TestReadJSON_not_an_array(t *testing.T) {
	t.Parallel()

	_, err := source.ReadJSON(strings.NewReader(`{"a": 1}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading json")
}

func TestLoad_without_path_uses_strings(t *testing.T) {
	t.Parallel()

	ba, err := source.Load("", []string{"only"})

	require.NoError(t, err)
	assert.Equal(t, []source.Record{{"input": "only"}}, ba.Records)
}

func TestLoad_line_file_appends_to_strings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := writeTemp(t, dir, "words.txt", "b\n# skip\nc\n")

	ba, err := source.Load(pa, []string{"a"})

	require.NoError(t, err)
	assert.Equal(t, source.Strings, ba.Mode)
	assert.Equal(
		t,
		[]source.Record{
			{"input": "a"},
			{"input": "b"},
			{"input": "c"},
		},
		ba.Records,
	)
}

func TestLoad_csv_by_extension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := writeTemp(
		t, dir, "capitals.CSV",
		"country_code,capital_city\nDE,Berlin\n",
	)

	ba, err := source.Load(pa, []string{"ignored"})

	require.NoError(t, err)
	assert.Equal(t, source.CSV, ba.Mode)
	assert.Len(t, ba.Records, 1)
}

func TestLoad_json_by_extension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := writeTemp(t, dir, "rows.json", `[{"k": "v"}]`)

	ba, err := source.Load(pa, nil)

	require.NoError(t, err)
	assert.Equal(t, source.JSON, ba.Mode)
	assert.Equal(t, []source.Record{{"k": "v"}}, ba.Records)
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := source.Load("/nonexistent/words.txt", nil)

	require.ErrorIs(t, err, source.ErrReadFile)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "/nonexistent/words.txt")
}

func TestBatch_default_templates(t *testing.T) {
	t.Parallel()

	str := source.FromStrings(nil)
	assert.Equal(t, "{input}", str.DefaultInputTemplate())
	assert.Equal(
		t,
		"{#input} => {hash}",
		str.DefaultOutputTemplate("hash"),
	)

	tab := source.Batch{
		Mode:    source.CSV,
		Columns: []string{"country_code", "capital_city"},
	}
	assert.Equal(
		t,
		"{country_code},{capital_city}",
		tab.DefaultInputTemplate(),
	)
	assert.Equal(
		t,
		"{hash},{country_code},{capital_city}",
		tab.DefaultOutputTemplate("hash"),
	)

	empty := source.Batch{Mode: source.CSV}
	assert.Equal(t, "{hash}", empty.DefaultOutputTemplate("hash"))
}

func TestRecord_Clone(t *testing.T) {
	t.Parallel()

	orig := source.Record{"a": "1"}
	cl := orig.Clone()
	cl["a"] = "2"

	assert.Equal(t, "1", orig["a"])
}

func FuzzReadLines(f *testing.F) {
	f.Add("a\nb")
	f.Add("# only comment")
	f.Add("\r\n\r\n")
	f.Add("")

	f.Fuzz(func(t *testing.T, content string) {
		lines, err := source.ReadLines(strings.NewReader(content))
		require.NoError(t, err)

		for _, line := range lines {
			assert.NotEmpty(t, line)
			assert.NotContains(t, line, "#")
		}
	})
}
