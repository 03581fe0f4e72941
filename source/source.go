package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// InputField is the field holding a free string, and the
// field the hash input is stored under.
const InputField = "input"

const (
	commentMarker = "#"
	utf8BOM       = "\ufeff"
)

// ErrReadFile marks failures to read the source file.
var ErrReadFile = errors.New("cannot read source file")

// Record maps field names to values.
type Record map[string]string

// Clone returns a shallow copy of rc.
func (rc Record) Clone() Record {
	out := make(Record, len(rc))
	for key, val := range rc {
		out[key] = val
	}

	return out
}

// Mode tells how records were produced.
type Mode int

// Source modes.
const (
	Strings Mode = iota
	CSV
	JSON
)

func (mo Mode) String() string {
	switch mo {
	case Strings:
		return "strings"
	case CSV:
		return "csv"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("Mode(%d)", int(mo))
	}
}

// Batch is the full set of records read from one source.
type Batch struct {
	Mode    Mode
	Columns []string
	Records []Record
}

// DefaultInputTemplate returns the hash input template
// used when none is configured: the free string, or every
// column joined by commas.
func (ba Batch) DefaultInputTemplate() string {
	if ba.Mode == Strings {
		return "{" + InputField + "}"
	}

	return placeholders(ba.Columns)
}

// DefaultOutputTemplate returns the per-record template
// used when none is configured.
func (ba Batch) DefaultOutputTemplate(hashField string) string {
	if ba.Mode == Strings {
		return "{#" + InputField + "} => {" + hashField + "}"
	}

	if len(ba.Columns) == 0 {
		return "{" + hashField + "}"
	}

	return "{" + hashField + "}," + placeholders(ba.Columns)
}

func placeholders(columns []string) string {
	parts := make([]string, len(columns))
	for idx, col := range columns {
		parts[idx] = "{" + col + "}"
	}

	return strings.Join(parts, ",")
}

// FromStrings builds one record per string.
func FromStrings(strs []string) Batch {
	ba := Batch{
		Mode:    Strings,
		Columns: []string{InputField},
		Records: make([]Record, 0, len(strs)),
	}

	for _, st := range strs {
		ba.Records = append(ba.Records, Record{InputField: st})
	}

	return ba
}

// Load reads path and returns its records. A ".csv" or
// ".json" extension selects the matching reader; any other
// file is read as one string per line and appended to
// strs. With an empty path only strs are used.
func Load(path string, strs []string) (Batch, error) {
	const errCtx = "loading records"

	if path == "" {
		return FromStrings(strs), nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Batch{}, fmt.Errorf(
			"%s: %w %s: %w", errCtx, ErrReadFile, path, err,
		)
	}

	var ba Batch

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		ba, err = ReadCSV(bytes.NewReader(content))
	case ".json":
		ba, err = ReadJSON(bytes.NewReader(content))
	default:
		var lines []string

		lines, err = ReadLines(bytes.NewReader(content))
		ba = FromStrings(append(append([]string(nil), strs...), lines...))
	}

	if err != nil {
		return Batch{}, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return ba, nil
}

// ReadLines returns the non-blank lines of r. Text from the
// first "#" on a line is a comment; surrounding whitespace
// is trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	const errCtx = "reading lines"

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var lines []string

	for _, line := range strings.Split(string(content), "\n") {
		line, _, _ = strings.Cut(line, commentMarker)

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// NormalizeColumn trims a header name and replaces inner
// spaces with underscores.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// ReadCSV reads a comma-separated file whose first row is
// the header. Short rows are padded with empty values and
// cells beyond the header are dropped.
func ReadCSV(r io.Reader) (Batch, error) {
	const errCtx = "reading csv"

	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1

	rows, err := rd.ReadAll()
	if err != nil {
		return Batch{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	ba := Batch{Mode: CSV}

	if len(rows) == 0 {
		return ba, nil
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	for _, name := range header {
		ba.Columns = append(ba.Columns, NormalizeColumn(name))
	}

	ba.Records = make([]Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		rc := make(Record, len(ba.Columns))

		for idx, col := range ba.Columns {
			if idx < len(row) {
				rc[col] = row[idx]
			} else {
				rc[col] = ""
			}
		}

		ba.Records = append(ba.Records, rc)
	}

	return ba, nil
}

// ReadJSON reads an array of flat objects. Strings are
// kept as-is, numbers keep their literal text, null becomes
// empty and nested values are re-encoded as JSON. Columns
// are the sorted union of all keys; a record lacking one
// gets an empty value.
func ReadJSON(r io.Reader) (Batch, error) {
	const errCtx = "reading json"

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var objs []map[string]interface{}

	if err := dec.Decode(&objs); err != nil {
		return Batch{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	ba := Batch{
		Mode:    JSON,
		Records: make([]Record, 0, len(objs)),
	}

	seen := make(map[string]struct{})

	for _, obj := range objs {
		rc := make(Record, len(obj))

		for key, val := range obj {
			col := NormalizeColumn(key)

			str, err := jsonString(val)
			if err != nil {
				return Batch{}, fmt.Errorf(
					"%s: field %q: %w", errCtx, key, err,
				)
			}

			rc[col] = str

			if _, ok := seen[col]; !ok {
				seen[col] = struct{}{}
				ba.Columns = append(ba.Columns, col)
			}
		}

		ba.Records = append(ba.Records, rc)
	}

	sort.Strings(ba.Columns)

	for _, rc := range ba.Records {
		for _, col := range ba.Columns {
			if _, ok := rc[col]; !ok {
				rc[col] = ""
			}
		}
	}

	return ba, nil
}

func jsonString(val interface{}) (string, error) {
	switch typed := val.(type) {
	case nil:
		return "", nil
	case string:
		return typed, nil
	case json.Number:
		return typed.String(), nil
	case bool:
		return strconv.FormatBool(typed), nil
	default:
		buf, err := json.Marshal(typed)
		if err != nil {
			return "", err
		}

		return string(buf), nil
	}
}
