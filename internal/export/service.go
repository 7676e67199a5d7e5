// Package export renders a parameter set as an XLSX workbook for download.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/taperedworks/enquiry-tracker/internal/params"
)

const (
	parametersSheet   = "Parameters"
	fullResponseSheet = "Full Response"
)

// Service produces XLSX bytes for extracted parameter sets.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ParametersXLSX writes the parameter set as a one-row table on a "Parameters" sheet,
// headers in canonical order. A non-empty fullResponse gets its own sheet so the raw
// analysis travels with the export.
func (s *Service) ParametersXLSX(set params.Set, fullResponse string) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	index, err := f.NewSheet(parametersSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, entry := range set.Ordered() {
		headerCell, _ := excelize.CoordinatesToCellName(i+1, 1)
		valueCell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(parametersSheet, headerCell, entry.Name); err != nil {
			return nil, fmt.Errorf("write header %q: %w", entry.Name, err)
		}
		if err := f.SetCellValue(parametersSheet, valueCell, entry.Value); err != nil {
			return nil, fmt.Errorf("write value %q: %w", entry.Name, err)
		}
	}

	if fullResponse != "" {
		if _, err := f.NewSheet(fullResponseSheet); err != nil {
			return nil, fmt.Errorf("create response sheet: %w", err)
		}
		if err := f.SetCellValue(fullResponseSheet, "A1", "Response"); err != nil {
			return nil, fmt.Errorf("write response header: %w", err)
		}
		if err := f.SetCellValue(fullResponseSheet, "A2", fullResponse); err != nil {
			return nil, fmt.Errorf("write response: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"bytes", buf.Len(),
		"full_response", fullResponse != "",
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
