package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"genwell/internal/errors"
)

// Load reads a dataset file, dispatching on the file extension.
// CSV is the canonical GenWell export format; workbook exports are parsed
// through excelize.
func Load(path string, schema Schema, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path, schema, logger)
	case ".xlsx", ".xls":
		return LoadXLSX(path, schema, logger)
	default:
		return nil, errors.NewLoadError(fmt.Sprintf("unsupported dataset format %q", filepath.Ext(path)), nil)
	}
}

// LoadCSV reads a comma-separated dataset with one header row.
// A missing or unreadable file, or a header that cannot be parsed, is a load
// error; a header that parses but lacks a declared column is a schema error.
func LoadCSV(path string, schema Schema, logger *slog.Logger) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError("open dataset file", err).WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Survey exports occasionally carry ragged comment rows; resolve columns
	// by header name, not by position count.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewLoadError("read dataset header", err).WithContext("path", path)
	}

	index, err := resolveHeader(schema, header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Schema: schema, Source: path}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewLoadError("read dataset row", err).WithContext("path", path)
		}
		ds.Records = append(ds.Records, recordFromRow(schema, index, row))
	}

	logger.Info("loaded dataset",
		slog.String("path", path),
		slog.Int("records", ds.Len()),
		slog.Int("columns", len(schema.Columns)))

	return ds, nil
}

// resolveHeader maps each declared schema column to its index in the file
// header. Header comparison trims whitespace but is otherwise exact.
func resolveHeader(schema Schema, header []string) (map[Field]int, error) {
	position := make(map[string]int, len(header))
	for i, name := range header {
		position[strings.TrimSpace(name)] = i
	}

	index := make(map[Field]int, len(schema.Columns))
	var missing []string
	for _, col := range schema.Columns {
		i, ok := position[col.Header]
		if !ok {
			missing = append(missing, col.Header)
			continue
		}
		index[col.Field] = i
	}

	if len(missing) > 0 {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("dataset is missing declared columns: %s", strings.Join(missing, ", ")), nil)
	}

	return index, nil
}

// recordFromRow extracts the schema columns from one data row. Cells beyond
// the row's length read as empty, which the cleaner treats as missing.
func recordFromRow(schema Schema, index map[Field]int, row []string) Record {
	record := make(Record, len(schema.Columns))
	for _, col := range schema.Columns {
		i := index[col.Field]
		if i < len(row) {
			record[col.Field] = strings.TrimSpace(row[i])
		} else {
			record[col.Field] = ""
		}
	}
	return record
}
