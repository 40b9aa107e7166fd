package dataset

import (
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"genwell/internal/errors"
)

// maxHeaderScanRows bounds how deep into a sheet we look for the header row.
// Workbook exports sometimes put a title or notes above the actual table.
const maxHeaderScanRows = 10

// LoadXLSX reads a dataset from a workbook export. The sheet containing the
// survey table is found by scanning each sheet's leading rows for the
// declared age column header.
func LoadXLSX(path string, schema Schema, logger *slog.Logger) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewLoadError("open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	ageHeader := headerFor(schema, FieldAge)

	var rows [][]string
	var headerRow int
	var sheetName string
	found := false

	for _, name := range f.GetSheetList() {
		sheetRows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		for i, row := range sheetRows {
			if i >= maxHeaderScanRows {
				break
			}
			if rowContainsHeader(row, ageHeader) {
				rows = sheetRows
				headerRow = i
				sheetName = name
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	if !found {
		return nil, errors.NewLoadError("could not find survey table in workbook", nil).
			WithContext("path", path)
	}

	logger.Info("found survey table in workbook",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("header_row", headerRow))

	index, err := resolveHeader(schema, rows[headerRow])
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Schema: schema, Source: path}

	for i := headerRow + 1; i < len(rows); i++ {
		if rowIsEmpty(rows[i]) {
			continue
		}
		ds.Records = append(ds.Records, recordFromRow(schema, index, rows[i]))
	}

	logger.Info("loaded dataset",
		slog.String("path", path),
		slog.Int("records", ds.Len()),
		slog.Int("columns", len(schema.Columns)))

	return ds, nil
}

func headerFor(schema Schema, field Field) string {
	for _, col := range schema.Columns {
		if col.Field == field {
			return col.Header
		}
	}
	return ""
}

func rowContainsHeader(row []string, header string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) == header {
			return true
		}
	}
	return false
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
