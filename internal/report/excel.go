package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"genwell/internal/cleaning"
	"genwell/internal/errors"
	"genwell/internal/stats"
)

const cleanedSheet = "Cleaned Data"

// WorkbookWriter assembles the analysis workbook: the cleaned records, the
// population benchmarks, one sheet per grouping with an embedded column
// chart, and the health correlation matrix.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Write builds the workbook and saves it to path
func (w *WorkbookWriter) Write(ctx context.Context, path string, rows []cleaning.Row,
	benchmarks []stats.Benchmark, aggregates []*stats.Aggregate, corr stats.CorrelationMatrix) error {

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeCleanedData(f, rows); err != nil {
		return err
	}
	if err := w.writeBenchmarks(f, benchmarks); err != nil {
		return err
	}
	for _, agg := range aggregates {
		if agg.Empty() {
			w.logger.WarnContext(ctx, "skipping workbook sheet: aggregate is empty",
				slog.String("aggregate", agg.Name))
			continue
		}
		if err := w.writeAggregate(f, agg); err != nil {
			return err
		}
	}
	if err := w.writeCorrelations(f, corr); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.NewRenderError("remove default sheet", err)
	}
	index, err := f.GetSheetIndex(cleanedSheet)
	if err == nil && index >= 0 {
		f.SetActiveSheet(index)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewRenderError("save workbook", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "wrote analysis workbook",
		slog.String("path", path),
		slog.Int("records", len(rows)),
		slog.Int("aggregates", len(aggregates)))
	return nil
}

func (w *WorkbookWriter) writeCleanedData(f *excelize.File, rows []cleaning.Row) error {
	if _, err := f.NewSheet(cleanedSheet); err != nil {
		return errors.NewRenderError("create sheet", err).WithContext("sheet", cleanedSheet)
	}

	headers := []interface{}{
		"Participant ID", "Age", "Loneliness", "Hours Alone", "Hours Alone Bin",
		"Conversations", "Physical Health", "Mental Health", "Volunteering",
	}
	if err := f.SetSheetRow(cleanedSheet, "A1", &headers); err != nil {
		return errors.NewRenderError("write header row", err).WithContext("sheet", cleanedSheet)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			r.ParticipantID, r.Age, r.Loneliness, r.HoursAlone, r.HoursAloneBin,
			cleaning.FrequencyLabel(r.Conversations),
			cleaning.HealthLabel(r.PhysicalHealth),
			cleaning.HealthLabel(r.MentalHealth),
			cleaning.FrequencyLabel(r.Volunteering),
		}
		if err := f.SetSheetRow(cleanedSheet, cell, &values); err != nil {
			return errors.NewRenderError("write data row", err).WithContext("sheet", cleanedSheet)
		}
	}
	return nil
}

func (w *WorkbookWriter) writeBenchmarks(f *excelize.File, benchmarks []stats.Benchmark) error {
	const sheet = "Benchmarks"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewRenderError("create sheet", err).WithContext("sheet", sheet)
	}

	headers := []interface{}{"Variable", "Mean", "Median", "Count"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return errors.NewRenderError("write header row", err).WithContext("sheet", sheet)
	}

	for i, b := range benchmarks {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{b.Variable, b.Mean, b.Median, b.Count}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return errors.NewRenderError("write benchmark row", err).WithContext("sheet", sheet)
		}
	}
	return nil
}

func (w *WorkbookWriter) writeAggregate(f *excelize.File, agg *stats.Aggregate) error {
	sheet := sheetName(agg.Name)
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewRenderError("create sheet", err).WithContext("sheet", sheet)
	}

	headers := []interface{}{agg.GroupLabel, "Count", "Mean", "Median", "Std Dev", "Min", "Max"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return errors.NewRenderError("write header row", err).WithContext("sheet", sheet)
	}

	for i, g := range agg.Groups {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{g.Key, g.Count, g.Mean, g.Median, g.StdDev, g.Min, g.Max}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return errors.NewRenderError("write group row", err).WithContext("sheet", sheet)
		}
	}

	lastRow := len(agg.Groups) + 1
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$C$1", sheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, lastRow),
			Values:     fmt.Sprintf("'%s'!$C$2:$C$%d", sheet, lastRow),
		}},
		Title:     []excelize.RichTextRun{{Text: agg.ValueLabel + " by " + agg.GroupLabel}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: 520, Height: 320},
	}
	if err := f.AddChart(sheet, "I2", chart); err != nil {
		return errors.NewRenderError("embed chart", err).WithContext("sheet", sheet)
	}
	return nil
}

func (w *WorkbookWriter) writeCorrelations(f *excelize.File, corr stats.CorrelationMatrix) error {
	const sheet = "Correlations"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewRenderError("create sheet", err).WithContext("sheet", sheet)
	}

	header := make([]interface{}, 0, len(corr.Labels)+1)
	header = append(header, "")
	for _, label := range corr.Labels {
		header = append(header, label)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.NewRenderError("write header row", err).WithContext("sheet", sheet)
	}

	for i, label := range corr.Labels {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := make([]interface{}, 0, len(corr.Labels)+1)
		row = append(row, label)
		for _, v := range corr.Values[i] {
			row = append(row, v)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.NewRenderError("write correlation row", err).WithContext("sheet", sheet)
		}
	}
	return nil
}

// sheetName turns an aggregate name into a workbook sheet title. Excel caps
// sheet names at 31 characters.
func sheetName(name string) string {
	out := []rune(strings.ReplaceAll(name, "_", " "))
	upper := true
	for i, r := range out {
		if upper && r >= 'a' && r <= 'z' {
			out[i] = r - 'a' + 'A'
		}
		upper = r == ' '
	}
	if len(out) > 31 {
		out = out[:31]
	}
	return string(out)
}
