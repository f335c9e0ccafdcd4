// Package export renders stored parse results as XLSX workbooks for the
// accounting side.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mlaurent/restodoc/constants"
	"github.com/mlaurent/restodoc/internal/entity"
	"github.com/mlaurent/restodoc/internal/repository"
)

// Service is a tiny façade over the job repository that produces XLSX bytes.
type Service struct {
	jobs   repository.ParseJobRepository
	logger *slog.Logger
}

func NewService(jobs repository.ParseJobRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{jobs: jobs, logger: logger}
}

const (
	sheetFamilies = "Familles"
	sheetItems    = "Articles"
)

// ExportResultsXLSX renders every successfully parsed job into one workbook:
// a sheet of Z-report family aggregates and a sheet of extracted line items.
func (s *Service) ExportResultsXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	jobs, err := s.jobs.ListByStatus(ctx, constants.JobStatusParseOK, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	f := excelize.NewFile()
	for _, sheet := range []string{sheetFamilies, sheetItems} {
		if index, _ := f.GetSheetIndex(sheet); index == -1 {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
		}
	}

	writeRow(f, sheetFamilies, 1, []any{
		"Closure Date", "Family", "Articles", "Total Sales",
	})
	writeRow(f, sheetItems, 1, []any{
		"Document", "Supplier", "Item", "Quantity", "Unit", "Unit Price", "Total Price",
	})

	famRow, itemRow := 2, 2
	for _, job := range jobs {
		if len(job.ResultJSON) == 0 {
			continue
		}
		var result entity.ParseResult
		if err := json.Unmarshal(job.ResultJSON, &result); err != nil {
			s.logger.Warn("export.skip_corrupt_result", "job_id", job.ID, "error", err)
			continue
		}

		if result.ZReport != nil {
			for _, fam := range constants.AllFamilies() {
				agg, ok := result.ZReport.Families[fam]
				if !ok || (agg.ArticleCount == 0 && agg.TotalSales == 0) {
					continue
				}
				writeRow(f, sheetFamilies, famRow, []any{
					result.ZReport.ClosureDate, string(fam), agg.ArticleCount, agg.TotalSales,
				})
				famRow++
			}
		}

		if result.Invoices != nil {
			for _, seg := range result.Invoices.Segments {
				for _, item := range seg.Items {
					writeRow(f, sheetItems, itemRow, []any{
						result.DocumentID.String(), seg.Segment.HeaderLabel,
						item.Name, item.Quantity, item.Unit, item.UnitPrice, item.TotalPrice,
					})
					itemRow++
				}
			}
		}
		if result.PriceSheet != nil {
			for _, item := range result.PriceSheet.Items {
				writeRow(f, sheetItems, itemRow, []any{
					result.DocumentID.String(), "",
					item.Name, item.Quantity, item.Unit, item.UnitPrice, item.TotalPrice,
				})
				itemRow++
			}
		}
	}

	// drop the default sheet excelize creates
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}
	if index, _ := f.GetSheetIndex(sheetFamilies); index != -1 {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.xlsx.ok",
		"jobs", len(jobs),
		"family_rows", famRow-2,
		"item_rows", itemRow-2,
		"elapsed", time.Since(start),
	)
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
