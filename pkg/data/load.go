package data

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Format identifies a tabular data encoding.
type Format string

// Supported data formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the data format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported data file extension: %q (must be .csv, .json, .yaml or .yml)", filepath.Ext(path))
}

// Load reads rows from a file, choosing the decoder by extension.
func Load(path string) ([]Datum, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f, format)
}

// Parse decodes rows from an in-memory buffer.
func Parse(b []byte, format Format) ([]Datum, error) {
	return Decode(bytes.NewReader(b), format)
}

// Decode reads rows in the given format.
func Decode(r io.Reader, format Format) ([]Datum, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(r)
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown data format: %q", format)
}

// decodeCSV treats the first record as the header. Numeric cells become
// float64 and empty cells nil.
func decodeCSV(r io.Reader) ([]Datum, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "parse csv")
	}
	if len(records) == 0 {
		return []Datum{}, nil
	}
	header := records[0]
	for _, name := range header {
		if err := errors.ValidateFieldName(name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "csv header")
		}
	}
	rows := make([]Datum, 0, len(records)-1)
	for _, rec := range records[1:] {
		d := make(Datum, len(header))
		for i, name := range header {
			if i >= len(rec) {
				d[name] = nil
				continue
			}
			d[name] = parseCell(rec[i])
		}
		rows = append(rows, d)
	}
	return rows, nil
}

func parseCell(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func decodeJSON(r io.Reader) ([]Datum, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "parse json (expected an array of objects)")
	}
	return fromMaps(raw), nil
}

func decodeYAML(r io.Reader) ([]Datum, error) {
	var raw []map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return []Datum{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "parse yaml (expected a sequence of mappings)")
	}
	return fromMaps(raw), nil
}

func fromMaps(raw []map[string]any) []Datum {
	rows := make([]Datum, len(raw))
	for i, m := range raw {
		rows[i] = Datum(m)
	}
	return rows
}
